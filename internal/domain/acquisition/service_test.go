package acquisition

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/internal/core/apperror"
	"procurement/internal/core/types"
	"procurement/internal/domain/catalog"
	"procurement/internal/domain/history"
	"procurement/pkg/logger"
)

// memoryStorage keeps the last saved snapshot in memory.
type memoryStorage struct {
	mu    sync.Mutex
	snap  *Snapshot
	saves int
	err   error
}

func (m *memoryStorage) Load(context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	return m.snap.Clone(), nil
}

func (m *memoryStorage) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.err != nil {
		return m.err
	}
	c := snap.Clone()
	m.snap = &c
	return nil
}

type countingObserver struct {
	ok, failed int
}

func (o *countingObserver) ObserveSave(err error) {
	if err != nil {
		o.failed++
		return
	}
	o.ok++
}

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, storage Storage, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{
		WithLogger(logger.Nop()),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	return NewService(context.Background(), storage, opts...)
}

func sampleInput(provider string) Input {
	return Input{
		Budget:          types.MustMoney("1000"),
		Unit:            "Dirección de Compras",
		Type:            "Bienes",
		Quantity:        types.MustMoney("10"),
		UnitValue:       types.MustMoney("10"),
		AcquisitionDate: "2024-03-01",
		Provider:        provider,
		Documentation:   "OC-001",
	}
}

func TestService_CreateAssignsIDAndTotal(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &memoryStorage{})

	a, err := svc.Create(ctx, sampleInput("Acme"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.True(t, a.Active)
	assert.True(t, a.TotalValue.Equal(types.MustMoney("100")))

	entries, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, history.ActionCreated, entries[0].Action)
	assert.Equal(t, "Record created with provider Acme", entries[0].Summary)
	assert.Equal(t, fixedNow, entries[0].Timestamp)
}

func TestService_IDsIncreaseStrictly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	var last int64
	for range 5 {
		a, err := svc.Create(ctx, sampleInput("Acme"))
		require.NoError(t, err)
		assert.Greater(t, a.ID, last)
		last = a.ID
	}
	assert.Len(t, svc.List(ctx), 5)
	assert.Len(t, svc.Snapshot().Histories, 5)
}

func TestService_UpdateKeepsIDAndActive(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	_, err := svc.Create(ctx, sampleInput("Acme"))
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, 1, StatusPayload{Active: false})
	require.NoError(t, err)

	in := sampleInput("Globex")
	in.Quantity = types.MustMoney("3")
	in.UnitValue = types.MustMoney("2.5")

	a, err := svc.Update(ctx, 1, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.False(t, a.Active)
	assert.Equal(t, "Globex", a.Provider)
	assert.True(t, a.TotalValue.Equal(types.MustMoney("7.5")))

	entries, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, history.ActionUpdated, entries[2].Action)
	assert.Equal(t, "Acquisition fields updated", entries[2].Summary)
}

func TestService_UpdateUnknown(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Update(context.Background(), 42, sampleInput("Acme"))
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, svc.Snapshot().Histories)
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	_, err := svc.Create(ctx, sampleInput("Acme"))
	require.NoError(t, err)

	t.Run("unknown id reports not found before checking payload", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, 999, StatusPayload{Active: "yes"})
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("non boolean is invalid input", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, 1, StatusPayload{Active: "yes"})
		assert.True(t, apperror.IsInvalidInput(err))
	})

	t.Run("missing flag is invalid input", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, 1, StatusPayload{})
		assert.True(t, apperror.IsInvalidInput(err))
	})

	entries, err := svc.History(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "rejected requests must not append history")

	a, err := svc.SetStatus(ctx, 1, StatusPayload{Active: false})
	require.NoError(t, err)
	assert.False(t, a.Active)

	entries, err = svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, history.ActionStatusChanged, entries[1].Action)
	assert.Equal(t, "Status changed to INACTIVE", entries[1].Summary)
}

func TestService_SearchByState(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	_, err := svc.Create(ctx, sampleInput("Acme"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sampleInput("Globex"))
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, 2, StatusPayload{Active: false})
	require.NoError(t, err)

	active := svc.Search(ctx, Criteria{State: ParseState("activo")})
	require.Len(t, active, 1)
	assert.Equal(t, int64(1), active[0].ID)

	inactive := svc.Search(ctx, Criteria{State: StateInactive})
	require.Len(t, inactive, 1)
	assert.Equal(t, int64(2), inactive[0].ID)
}

func TestService_HistoryUnknown(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.History(context.Background(), 5)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	storage := &memoryStorage{}
	svc := newTestService(t, storage)

	_, err := svc.Create(ctx, sampleInput("Acme"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sampleInput("Globex"))
	require.NoError(t, err)
	assert.Equal(t, 2, storage.saves)

	reloaded := newTestService(t, storage)
	assert.Equal(t, svc.List(ctx), reloaded.List(ctx))
	assert.Len(t, reloaded.Snapshot().Histories, 2)

	a, err := reloaded.Create(ctx, sampleInput("Initech"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), a.ID)
}

func TestService_SaveFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	storage := &memoryStorage{err: errors.New("disk full")}
	obs := &countingObserver{}
	svc := newTestService(t, storage, WithSaveObserver(obs))

	a, err := svc.Create(ctx, sampleInput("Acme"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Len(t, svc.List(ctx), 1)
	assert.Equal(t, 1, obs.failed)

	err = svc.Close(ctx)
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
}

func TestService_CloseWritesOnlyUnsavedChanges(t *testing.T) {
	ctx := context.Background()

	t.Run("unreadable state without mutations", func(t *testing.T) {
		storage := &failingLoadStorage{}
		svc := newTestService(t, storage)

		require.NoError(t, svc.Close(ctx))
		assert.Zero(t, storage.saves)
	})

	t.Run("state already saved", func(t *testing.T) {
		storage := &memoryStorage{}
		svc := newTestService(t, storage)
		_, err := svc.Create(ctx, sampleInput("Acme"))
		require.NoError(t, err)

		require.NoError(t, svc.Close(ctx))
		assert.Equal(t, 1, storage.saves)
	})

	t.Run("failed save is retried", func(t *testing.T) {
		storage := &memoryStorage{err: errors.New("disk full")}
		svc := newTestService(t, storage)
		_, err := svc.Create(ctx, sampleInput("Acme"))
		require.NoError(t, err)

		storage.mu.Lock()
		storage.err = nil
		storage.mu.Unlock()

		require.NoError(t, svc.Close(ctx))
		assert.Equal(t, 2, storage.saves)
		require.NotNil(t, storage.snap)
		assert.Len(t, storage.snap.Acquisitions, 1)

		require.NoError(t, svc.Close(ctx))
		assert.Equal(t, 2, storage.saves)
	})
}

func TestService_PanicReleasesLock(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	in := sampleInput("Acme")
	in.Quantity = types.MustMoney("1e2000000000")
	in.UnitValue = types.MustMoney("1e2000000000")
	assert.Panics(t, func() { _, _ = svc.Create(ctx, in) })

	done := make(chan int, 1)
	go func() { done <- svc.Count(ctx) }()
	select {
	case n := <-done:
		assert.Zero(t, n)
	case <-time.After(2 * time.Second):
		t.Fatal("service lock still held after panic")
	}

	_, err := svc.Create(ctx, sampleInput("Acme"))
	require.NoError(t, err)
}

func TestService_UnreadableStateStartsWithDefaults(t *testing.T) {
	storage := &failingLoadStorage{}
	svc := newTestService(t, storage)

	assert.Empty(t, svc.List(context.Background()))
	assert.Equal(t, catalog.Default(), svc.Catalogs(context.Background()))
}

type failingLoadStorage struct{ memoryStorage }

func (f *failingLoadStorage) Load(context.Context) (Snapshot, error) {
	return Snapshot{}, errors.New("corrupt")
}

func TestService_HooksRunAfterMutation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	var created []int64
	svc.Hooks().OnAfterCreate(func(_ context.Context, a *Acquisition) error {
		created = append(created, a.ID)
		return errors.New("ignored")
	})

	_, err := svc.Create(ctx, sampleInput("Acme"))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, created)
}

func TestService_AllIsRestartable(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	for range 3 {
		_, err := svc.Create(ctx, sampleInput("Acme"))
		require.NoError(t, err)
	}

	seq := svc.All(ctx)
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, 3, count())
	assert.Equal(t, 3, count())
}

func TestService_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &memoryStorage{})

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			_, err := svc.Create(ctx, sampleInput("Acme"))
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, a := range svc.List(ctx) {
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
	}
	assert.Len(t, seen, 20)
	assert.Len(t, svc.Snapshot().Histories, 20)
}
