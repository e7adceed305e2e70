// Package history provides the append-only audit ledger of acquisition changes.
package history

import (
	"slices"
	"time"
)

// Action is the kind of change an entry records.
type Action string

const (
	ActionCreated       Action = "CREATED"
	ActionUpdated       Action = "UPDATED"
	ActionStatusChanged Action = "STATUS_CHANGED"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionCreated, ActionUpdated, ActionStatusChanged:
		return true
	}
	return false
}

// Entry is one immutable audit record.
type Entry struct {
	ID            int       `json:"id"`
	AcquisitionID int64     `json:"acquisitionId"`
	Action        Action    `json:"action"`
	Summary       string    `json:"summary"`
	Timestamp     time.Time `json:"timestamp"`
}

// Ledger keeps entries in append order. Ids are ledger-wide: the next id
// is always the current entry count plus one.
//
// Ledger is not safe for concurrent use; the acquisition service
// serialises access to it together with the records it describes.
type Ledger struct {
	entries []Entry
	now     func() time.Time
}

// NewLedger creates an empty ledger stamped with the wall clock.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// SetClock overrides the timestamp source.
func (l *Ledger) SetClock(now func() time.Time) {
	if now != nil {
		l.now = now
	}
}

// Restore replaces the contents with previously persisted entries.
func (l *Ledger) Restore(entries []Entry) {
	l.entries = slices.Clone(entries)
}

// Append records a change and returns the stored entry.
func (l *Ledger) Append(acquisitionID int64, action Action, summary string) Entry {
	e := Entry{
		ID:            len(l.entries) + 1,
		AcquisitionID: acquisitionID,
		Action:        action,
		Summary:       summary,
		Timestamp:     l.now().UTC(),
	}
	l.entries = append(l.entries, e)
	return e
}

// ListFor returns the entries of one acquisition in append order.
// The result is never nil.
func (l *Ledger) ListFor(acquisitionID int64) []Entry {
	out := make([]Entry, 0)
	for _, e := range l.entries {
		if e.AcquisitionID == acquisitionID {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns a copy of the whole ledger.
func (l *Ledger) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}
