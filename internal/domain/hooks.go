// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"errors"
)

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	AfterCreate       HookEvent = "after_create"
	AfterUpdate       HookEvent = "after_update"
	AfterStatusChange HookEvent = "after_status_change"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
// Registration is expected during wiring, before the registry is shared.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes every hook for the event. Unlike a before-hook chain, all
// hooks run even if one fails; the failures are joined.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	var errs []error
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, entity); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OnAfterCreate registers a hook to run after create.
func (r *HookRegistry[T]) OnAfterCreate(hook Hook[T]) {
	r.On(AfterCreate, hook)
}

// OnAfterUpdate registers a hook to run after update.
func (r *HookRegistry[T]) OnAfterUpdate(hook Hook[T]) {
	r.On(AfterUpdate, hook)
}

// OnAfterStatusChange registers a hook to run after an activation change.
func (r *HookRegistry[T]) OnAfterStatusChange(hook Hook[T]) {
	r.On(AfterStatusChange, hook)
}
