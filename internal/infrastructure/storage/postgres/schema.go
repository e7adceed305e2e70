package postgres

import (
	"context"
	"fmt"
)

const (
	tableAcquisitions = "acquisitions"
	tableHistory      = "acquisition_history"
	tableCatalogItems = "catalog_items"
	tableSnapshotMeta = "snapshot_meta"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS acquisitions (
		id               BIGINT PRIMARY KEY,
		budget           NUMERIC NOT NULL,
		unit             TEXT NOT NULL,
		type             TEXT NOT NULL,
		quantity         NUMERIC NOT NULL,
		unit_value       NUMERIC NOT NULL,
		total_value      NUMERIC NOT NULL,
		acquisition_date TEXT NOT NULL,
		provider         TEXT NOT NULL,
		documentation    TEXT NOT NULL DEFAULT '',
		active           BOOLEAN NOT NULL,
		position         INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS acquisition_history (
		id             INTEGER PRIMARY KEY,
		acquisition_id BIGINT NOT NULL,
		action         TEXT NOT NULL,
		summary        TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS acquisition_history_acquisition_idx
		ON acquisition_history (acquisition_id, id)`,
	`CREATE TABLE IF NOT EXISTS catalog_items (
		kind     TEXT NOT NULL,
		position INTEGER NOT NULL,
		value    TEXT NOT NULL,
		PRIMARY KEY (kind, position)
	)`,
	`CREATE TABLE IF NOT EXISTS snapshot_meta (
		singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
		saved_at  TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
