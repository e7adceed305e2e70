// Package file persists the acquisition snapshot as an indented JSON
// document on the local filesystem.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"procurement/internal/domain/acquisition"
	"procurement/internal/domain/history"
)

var _ acquisition.Storage = (*Store)(nil)

// Store reads and writes a single JSON file.
type Store struct {
	path string
}

// NewStore returns a store for path. The file is created on first save.
func NewStore(path string) *Store {
	if path == "" {
		path = "data.json"
	}
	return &Store{path: path}
}

// Path returns the configured file path.
func (s *Store) Path() string { return s.path }

// Load decodes the file. A missing file yields acquisition.ErrNoSnapshot.
func (s *Store) Load(ctx context.Context) (acquisition.Snapshot, error) {
	var snap acquisition.Snapshot

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, acquisition.ErrNoSnapshot
	}
	if err != nil {
		return snap, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return snap, acquisition.ErrNoSnapshot
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return snap, nil
}

// Save writes snap to a temp file in the same directory and renames it
// over the target, so readers never observe a half-written file.
func (s *Store) Save(ctx context.Context, snap acquisition.Snapshot) error {
	if snap.Acquisitions == nil {
		snap.Acquisitions = []acquisition.Acquisition{}
	}
	if snap.Histories == nil {
		snap.Histories = []history.Entry{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Ping reports whether the directory holding the file is reachable.
func (s *Store) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

// Close is a no-op; every save is already durable.
func (s *Store) Close() error { return nil }
