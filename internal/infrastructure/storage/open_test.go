package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/internal/config"
	"procurement/internal/domain/acquisition"
	"procurement/internal/infrastructure/storage/file"
	"procurement/internal/infrastructure/storage/sqlite"
)

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	b, err := Open(context.Background(), config.Config{StorageDriver: config.DriverFile, DataFile: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	require.IsType(t, &file.Store{}, b)
	_, err = b.Load(context.Background())
	assert.ErrorIs(t, err, acquisition.ErrNoSnapshot)
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	b, err := Open(context.Background(), config.Config{StorageDriver: config.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	require.IsType(t, &sqlite.Store{}, b)
	assert.NoError(t, b.Ping(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{StorageDriver: "redis"})
	assert.ErrorContains(t, err, "unknown storage driver")
}
