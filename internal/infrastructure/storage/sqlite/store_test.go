package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/internal/core/types"
	"procurement/internal/domain/acquisition"
	"procurement/internal/domain/catalog"
	"procurement/internal/domain/history"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_EmptyDatabase(t *testing.T) {
	s := openStore(t)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, acquisition.ErrNoSnapshot)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	snap := acquisition.Snapshot{
		Catalogs: catalog.Default(),
		Acquisitions: []acquisition.Acquisition{{
			ID:              1,
			Budget:          types.MustMoney("1000"),
			Quantity:        types.MustMoney("10"),
			UnitValue:       types.MustMoney("10"),
			TotalValue:      types.MustMoney("100"),
			AcquisitionDate: "2024-03-01",
			Provider:        "Acme",
			Active:          true,
		}},
		Histories: []history.Entry{{
			ID: 1, AcquisitionID: 1, Action: history.ActionCreated,
			Summary:   "Record created with provider Acme",
			Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}},
	}
	require.NoError(t, s.Save(ctx, snap))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Catalogs, got.Catalogs)
	require.Len(t, got.Acquisitions, 1)
	assert.True(t, got.Acquisitions[0].TotalValue.Equal(types.MustMoney("100")))
	assert.Equal(t, snap.Histories, got.Histories)
}

func TestStore_LargeBucketIsCompressed(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	var snap acquisition.Snapshot
	snap.Catalogs = catalog.Default()
	for i := range 500 {
		snap.Acquisitions = append(snap.Acquisitions, acquisition.Acquisition{
			ID:       int64(i + 1),
			Provider: fmt.Sprintf("Provider %d", i),
			Budget:   types.MustMoney("1"), Quantity: types.MustMoney("1"),
			UnitValue: types.MustMoney("1"), TotalValue: types.MustMoney("1"),
		})
	}
	require.NoError(t, s.Save(ctx, snap))

	var algo string
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT algo FROM state WHERE bucket = ?`, bucketAcquisitions).Scan(&algo))
	assert.Equal(t, "zstd", algo)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Acquisitions, 500)
	assert.Equal(t, "Provider 499", got.Acquisitions[499].Provider)
}
