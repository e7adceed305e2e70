// Package storage selects the snapshot backend named by the configuration.
package storage

import (
	"context"
	"fmt"

	"procurement/internal/config"
	"procurement/internal/domain/acquisition"
	"procurement/internal/infrastructure/storage/file"
	"procurement/internal/infrastructure/storage/postgres"
	"procurement/internal/infrastructure/storage/sqlite"
)

// Backend is a snapshot store that can also report readiness and release
// its resources.
type Backend interface {
	acquisition.Storage
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Backend = (*file.Store)(nil)
	_ Backend = (*sqlite.Store)(nil)
	_ Backend = (*postgres.Store)(nil)
)

// Open returns the backend for cfg.StorageDriver.
func Open(ctx context.Context, cfg config.Config) (Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverFile:
		return file.NewStore(cfg.DataFile), nil

	case config.DriverSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
		if err != nil {
			return nil, err
		}
		store, err := postgres.NewStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		pool.LogStats(ctx)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
