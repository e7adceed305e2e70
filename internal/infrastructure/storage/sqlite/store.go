// Package sqlite persists the acquisition snapshot to a SQLite file, one
// JSON payload per bucket.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"procurement/internal/domain/acquisition"
	"procurement/internal/infrastructure/storage/codec"
)

var _ acquisition.Storage = (*Store)(nil)

const (
	bucketCatalogs     = "catalogs"
	bucketAcquisitions = "acquisitions"
	bucketHistories    = "histories"
)

var buckets = []string{bucketCatalogs, bucketAcquisitions, bucketHistories}

// Store is a snapshotting SQLite-backed storage. Large buckets are
// compressed with zstd.
type Store struct {
	db    *sql.DB
	codec *codec.Codec
	path  string
}

// NewStore opens (creating if needed) the database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "procurement.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket  TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		algo    TEXT NOT NULL DEFAULT 'none'
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	c, err := codec.New(codec.DefaultThreshold)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, codec: c, path: path}, nil
}

// Load reads every bucket. An empty table means nothing was saved yet.
func (s *Store) Load(ctx context.Context) (acquisition.Snapshot, error) {
	var snap acquisition.Snapshot

	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload, algo FROM state`)
	if err != nil {
		return snap, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	found := 0
	for rows.Next() {
		var (
			bucket  string
			payload []byte
			algo    string
		)
		if err := rows.Scan(&bucket, &payload, &algo); err != nil {
			return snap, fmt.Errorf("scan: %w", err)
		}
		data, err := s.codec.Decode(payload, codec.Algo(algo))
		if err != nil {
			return snap, fmt.Errorf("decode %s: %w", bucket, err)
		}

		var target any
		switch bucket {
		case bucketCatalogs:
			target = &snap.Catalogs
		case bucketAcquisitions:
			target = &snap.Acquisitions
		case bucketHistories:
			target = &snap.Histories
		default:
			continue
		}
		if err := json.Unmarshal(data, target); err != nil {
			return snap, fmt.Errorf("decode %s: %w", bucket, err)
		}
		found++
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate state: %w", err)
	}
	if found == 0 {
		return snap, acquisition.ErrNoSnapshot
	}
	return snap, nil
}

// Save upserts every bucket in one transaction.
func (s *Store) Save(ctx context.Context, snap acquisition.Snapshot) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, bucket := range buckets {
		var data []byte
		switch bucket {
		case bucketCatalogs:
			data, err = json.Marshal(snap.Catalogs)
		case bucketAcquisitions:
			data, err = json.Marshal(nonNil(snap.Acquisitions))
		case bucketHistories:
			data, err = json.Marshal(nonNil(snap.Histories))
		}
		if err != nil {
			return fmt.Errorf("encode %s: %w", bucket, err)
		}
		payload, algo := s.codec.Encode(data)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state(bucket,payload,algo) VALUES(?,?,?)
			 ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload, algo=excluded.algo`,
			bucket, payload, string(algo)); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	return tx.Commit()
}

// Ping checks the database handle for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	s.codec.Close()
	return s.db.Close()
}

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
