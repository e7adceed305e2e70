package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"procurement/internal/domain/acquisition"
)

var _ acquisition.Storage = (*Store)(nil)

// Store keeps the acquisition snapshot in relational tables. Every Save
// replaces the table contents inside one transaction.
type Store struct {
	pool      *Pool
	txManager *TxManager
	inserter  *BatchInserter
	executor  *BatchExecutor
}

// NewStore creates the schema if needed and returns a store on pool.
func NewStore(ctx context.Context, pool *Pool) (*Store, error) {
	txm := NewTxManager(pool)
	if err := Migrate(ctx, pool); err != nil {
		return nil, err
	}
	return &Store{
		pool:      pool,
		txManager: txm,
		inserter:  NewBatchInserter(txm),
		executor:  NewBatchExecutor(txm),
	}, nil
}

// Load reads the last saved snapshot.
func (s *Store) Load(ctx context.Context) (acquisition.Snapshot, error) {
	var snap acquisition.Snapshot
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		q := s.txManager.GetQuerier(ctx)

		var savedAt time.Time
		query, args, err := selectSavedAt().ToSql()
		if err != nil {
			return fmt.Errorf("build saved_at query: %w", err)
		}
		if err := pgxscan.Get(ctx, q, &savedAt, query, args...); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return acquisition.ErrNoSnapshot
			}
			return fmt.Errorf("select saved_at: %w", err)
		}

		var items []catalogItemRow
		if err := selectInto(ctx, q, &items, selectCatalogItems()); err != nil {
			return err
		}
		snap.Catalogs = catalogsFromRows(items)

		var acqRows []acquisitionRow
		if err := selectInto(ctx, q, &acqRows, selectAcquisitions()); err != nil {
			return err
		}
		snap.Acquisitions = make([]acquisition.Acquisition, 0, len(acqRows))
		for _, r := range acqRows {
			a, err := r.toDomain()
			if err != nil {
				return err
			}
			snap.Acquisitions = append(snap.Acquisitions, a)
		}

		var histRows []historyRow
		if err := selectInto(ctx, q, &histRows, selectHistory()); err != nil {
			return err
		}
		for _, r := range histRows {
			snap.Histories = append(snap.Histories, r.toDomain())
		}
		return nil
	})
	return snap, err
}

// Save replaces the stored snapshot with snap.
func (s *Store) Save(ctx context.Context, snap acquisition.Snapshot) error {
	acqRows := make([]acquisitionRow, 0, len(snap.Acquisitions))
	for i, a := range snap.Acquisitions {
		acqRows = append(acqRows, toAcquisitionRow(a, i))
	}
	histRows := make([]historyRow, 0, len(snap.Histories))
	for _, e := range snap.Histories {
		histRows = append(histRows, toHistoryRow(e))
	}

	metaSQL, metaArgs, err := upsertSavedAt().ToSql()
	if err != nil {
		return fmt.Errorf("build snapshot meta upsert: %w", err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.executor.ExecuteBatch(ctx, []BatchQuery{
			{SQL: truncateAll()},
			{SQL: metaSQL, Args: metaArgs},
		}); err != nil {
			return err
		}
		if _, err := s.inserter.CopyFromSlice(ctx, tableCatalogItems, catalogItemColumns, copyRows(catalogRows(snap.Catalogs))); err != nil {
			return fmt.Errorf("copy catalog items: %w", err)
		}
		if _, err := s.inserter.CopyFromSlice(ctx, tableAcquisitions, acquisitionColumns, copyRows(acqRows)); err != nil {
			return fmt.Errorf("copy acquisitions: %w", err)
		}
		if _, err := s.inserter.CopyFromSlice(ctx, tableHistory, historyColumns, copyRows(histRows)); err != nil {
			return fmt.Errorf("copy history: %w", err)
		}
		return nil
	})
}

// Ping checks connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

type sqlizer interface {
	ToSql() (string, []any, error)
}

func selectInto(ctx context.Context, q Querier, dst any, b sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}
	if err := pgxscan.Select(ctx, q, dst, query, args...); err != nil {
		return fmt.Errorf("select: %w", err)
	}
	return nil
}
