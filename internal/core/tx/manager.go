// Package tx provides transaction management abstractions so storage
// adapters can be written against an interface rather than a driver.
package tx

import (
	"context"
)

// Manager runs fn inside a transaction. If fn returns an error the
// transaction is rolled back, otherwise it is committed. Nested calls
// reuse the transaction already in ctx.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transactions.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
