package catalog

import "sync"

// Store serves the catalogs. Contents are fixed once the process has
// loaded its state; Reset exists only for whole-state initialisation.
type Store struct {
	mu       sync.RWMutex
	catalogs Catalogs
}

// NewStore creates a store with the given lists, falling back to the
// default seed when both are empty.
func NewStore(c Catalogs) *Store {
	s := &Store{}
	s.Reset(c)
	return s
}

// Get returns a copy of both lists.
func (s *Store) Get() Catalogs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalogs.Clone()
}

// Reset replaces the lists; empty input restores the defaults.
func (s *Store) Reset(c Catalogs) {
	if c.IsZero() {
		c = Default()
	}
	s.mu.Lock()
	s.catalogs = c.Clone()
	s.mu.Unlock()
}
