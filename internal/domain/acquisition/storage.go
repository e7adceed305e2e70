package acquisition

import (
	"context"
	"errors"
	"slices"

	"procurement/internal/domain/catalog"
	"procurement/internal/domain/history"
)

// ErrNoSnapshot is returned by Storage.Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no persisted snapshot")

// Snapshot is the whole persisted state: catalogs, records and ledger.
type Snapshot struct {
	Catalogs     catalog.Catalogs `json:"catalogs"`
	Acquisitions []Acquisition    `json:"acquisitions"`
	Histories    []history.Entry  `json:"histories"`
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Catalogs:     s.Catalogs.Clone(),
		Acquisitions: slices.Clone(s.Acquisitions),
		Histories:    slices.Clone(s.Histories),
	}
}

// Storage loads and saves whole snapshots. Save is called after every
// mutation; its failures are logged by the service, never surfaced.
type Storage interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// SaveObserver is notified of every save attempt.
type SaveObserver interface {
	ObserveSave(err error)
}

type nopStorage struct{}

func (nopStorage) Load(context.Context) (Snapshot, error) { return Snapshot{}, ErrNoSnapshot }
func (nopStorage) Save(context.Context, Snapshot) error   { return nil }
