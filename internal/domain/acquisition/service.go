package acquisition

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"procurement/internal/core/apperror"
	"procurement/internal/domain"
	"procurement/internal/domain/catalog"
	"procurement/internal/domain/history"
	"procurement/pkg/logger"
)

const entityName = "acquisition"

// Service is the acquisition repository. It owns the records, the history
// ledger and the catalogs, and writes the whole state through Storage
// after every mutation.
//
// One RWMutex covers records, ledger and the save call, so mutations are
// applied and persisted one at a time. Readers get copies.
type Service struct {
	mu       sync.RWMutex
	records  []Acquisition
	ledger   *history.Ledger
	catalogs *catalog.Store
	// dirty is set while memory holds changes storage has not accepted.
	dirty    bool

	storage  Storage
	observer SaveObserver
	hooks    *domain.HookRegistry[*Acquisition]
	log      *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for persistence and hook failures.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the ledger timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.ledger.SetClock(now) }
}

// WithSaveObserver reports every save outcome to o.
func WithSaveObserver(o SaveObserver) Option {
	return func(s *Service) { s.observer = o }
}

// NewService loads the persisted state from storage and returns a ready
// service. A missing or unreadable snapshot is not an error: the service
// starts from the default catalogs and empty collections.
func NewService(ctx context.Context, storage Storage, opts ...Option) *Service {
	if storage == nil {
		storage = nopStorage{}
	}
	s := &Service{
		ledger:   history.NewLedger(),
		catalogs: catalog.NewStore(catalog.Default()),
		storage:  storage,
		hooks:    domain.NewHookRegistry[*Acquisition](),
		log:      logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("acquisition")

	snap, err := storage.Load(ctx)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		s.log.Infow("no persisted state found, starting with defaults")
		return s
	case err != nil:
		s.log.Errorw("persisted state unreadable, starting with defaults", "error", err)
		return s
	}

	s.records = slices.Clone(snap.Acquisitions)
	s.ledger.Restore(snap.Histories)
	s.catalogs.Reset(snap.Catalogs)
	s.log.Infow("state loaded",
		"acquisitions", len(s.records),
		"history_entries", s.ledger.Len(),
	)
	return s
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Acquisition] {
	return s.hooks
}

// Create stores a new active acquisition with the next id and records a
// CREATED entry.
func (s *Service) Create(ctx context.Context, in Input) (*Acquisition, error) {
	a, err := s.mutate(ctx, "create", func() (Acquisition, error) {
		a := Acquisition{ID: s.nextIDLocked(), Active: true}
		a.apply(in)
		s.records = append(s.records, a)
		s.ledger.Append(a.ID, history.ActionCreated,
			fmt.Sprintf("Record created with provider %s", a.Provider))
		return a, nil
	})
	if err != nil {
		return nil, err
	}

	s.logFor(ctx, a.ID).Infow("acquisition created", "provider", a.Provider)
	s.runHooks(ctx, domain.AfterCreate, a)
	return &a, nil
}

// Update replaces the editable fields of an existing acquisition. Id and
// active flag are kept from the stored record.
func (s *Service) Update(ctx context.Context, acquisitionID int64, in Input) (*Acquisition, error) {
	a, err := s.mutate(ctx, "update", func() (Acquisition, error) {
		i := s.indexLocked(acquisitionID)
		if i < 0 {
			return Acquisition{}, apperror.NewNotFound(entityName, acquisitionID)
		}
		a := s.records[i]
		a.apply(in)
		s.records[i] = a
		s.ledger.Append(a.ID, history.ActionUpdated, "Acquisition fields updated")
		return a, nil
	})
	if err != nil {
		return nil, err
	}

	s.logFor(ctx, a.ID).Infow("acquisition updated")
	s.runHooks(ctx, domain.AfterUpdate, a)
	return &a, nil
}

// SetStatus activates or deactivates an acquisition. The existence check
// comes first, then p.Active must be a boolean.
func (s *Service) SetStatus(ctx context.Context, acquisitionID int64, p StatusPayload) (*Acquisition, error) {
	a, err := s.mutate(ctx, "set_status", func() (Acquisition, error) {
		i := s.indexLocked(acquisitionID)
		if i < 0 {
			return Acquisition{}, apperror.NewNotFound(entityName, acquisitionID)
		}
		active, ok := p.Active.(bool)
		if !ok {
			return Acquisition{}, apperror.NewInvalidInput(FieldActive, "field 'active' must be a boolean")
		}
		s.records[i].Active = active
		a := s.records[i]
		s.ledger.Append(a.ID, history.ActionStatusChanged,
			fmt.Sprintf("Status changed to %s", a.StateLabel()))
		return a, nil
	})
	if err != nil {
		return nil, err
	}

	s.logFor(ctx, a.ID).Infow("acquisition status changed", "active", a.Active)
	s.runHooks(ctx, domain.AfterStatusChange, a)
	return &a, nil
}

// Get returns one acquisition.
func (s *Service) Get(ctx context.Context, acquisitionID int64) (*Acquisition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(acquisitionID)
	if i < 0 {
		return nil, apperror.NewNotFound(entityName, acquisitionID)
	}
	a := s.records[i]
	return &a, nil
}

// List returns every acquisition in insertion order.
func (s *Service) List(ctx context.Context) []Acquisition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Count returns the number of acquisitions.
func (s *Service) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// All returns a restartable sequence over a copy of the records taken at
// call time.
func (s *Service) All(ctx context.Context) iter.Seq[Acquisition] {
	return slices.Values(s.List(ctx))
}

// Search returns the acquisitions matching c.
func (s *Service) Search(ctx context.Context, c Criteria) []Acquisition {
	return Filter(s.List(ctx), c)
}

// History returns the ledger entries of an existing acquisition.
func (s *Service) History(ctx context.Context, acquisitionID int64) ([]history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.indexLocked(acquisitionID) < 0 {
		return nil, apperror.NewNotFound(entityName, acquisitionID)
	}
	return s.ledger.ListFor(acquisitionID), nil
}

// Catalogs returns the reference lists.
func (s *Service) Catalogs(ctx context.Context) catalog.Catalogs {
	return s.catalogs.Get()
}

// Snapshot returns a copy of the whole state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Close writes a final snapshot when the last mutation save failed.
// Nothing is written when storage already holds the current state, so an
// unreadable snapshot survives a run without mutations. Unlike mutation
// saves, its failure is returned so the caller can report it at shutdown.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.storage.Save(context.WithoutCancel(ctx), s.snapshotLocked()); err != nil {
		return apperror.NewPersistence("close", err)
	}
	s.dirty = false
	return nil
}

// mutate runs fn under the write lock and persists the state when fn
// succeeds. The deferred unlock keeps the service usable if fn panics.
func (s *Service) mutate(ctx context.Context, op string, fn func() (Acquisition, error)) (Acquisition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := fn()
	if err != nil {
		return Acquisition{}, err
	}
	s.persistLocked(ctx, op)
	return a, nil
}

func (s *Service) nextIDLocked() int64 {
	var maxID int64
	for _, a := range s.records {
		maxID = max(maxID, a.ID)
	}
	return maxID + 1
}

func (s *Service) indexLocked(acquisitionID int64) int {
	return slices.IndexFunc(s.records, func(a Acquisition) bool {
		return a.ID == acquisitionID
	})
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		Catalogs:     s.catalogs.Get(),
		Acquisitions: slices.Clone(s.records),
		Histories:    s.ledger.Entries(),
	}
}

// persistLocked saves the whole state. The write is detached from request
// cancellation; a failure leaves memory as the only copy until the next
// successful save or Close.
func (s *Service) persistLocked(ctx context.Context, op string) {
	err := s.storage.Save(context.WithoutCancel(ctx), s.snapshotLocked())
	s.dirty = err != nil
	if s.observer != nil {
		s.observer.ObserveSave(err)
	}
	if err != nil {
		perr := apperror.NewPersistence(op, err)
		s.log.WithContext(ctx).Errorw("failed to persist state",
			"operation", op,
			"error", perr,
		)
	}
}

func (s *Service) runHooks(ctx context.Context, event domain.HookEvent, a Acquisition) {
	if err := s.hooks.Run(ctx, event, &a); err != nil {
		s.logFor(ctx, a.ID).Warnw("hook failed", "event", event, "error", err)
	}
}

func (s *Service) logFor(ctx context.Context, acquisitionID int64) *logger.Logger {
	return s.log.WithContext(ctx).WithAcquisition(acquisitionID)
}
