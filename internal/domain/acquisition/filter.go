package acquisition

import "strings"

// State selects records by their active flag.
type State string

const (
	StateAny      State = ""
	StateActive   State = "ACTIVE"
	StateInactive State = "INACTIVE"
)

// ParseState maps a query value to a State. The Spanish spellings used by
// existing clients are accepted; anything unrecognised means no filter.
func ParseState(s string) State {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTIVE", "ACTIVO":
		return StateActive
	case "INACTIVE", "INACTIVO":
		return StateInactive
	default:
		return StateAny
	}
}

// Criteria are the optional list filters. Zero values impose no constraint.
type Criteria struct {
	Unit     string
	Type     string
	Provider string
	State    State
	DateFrom string
	DateTo   string
}

// IsZero reports whether c filters nothing.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Filter returns the records matching every criterion, keeping their
// relative order. Date bounds compare the stored date strings lexically,
// which orders ISO dates chronologically.
func Filter(records []Acquisition, c Criteria) []Acquisition {
	unit := strings.ToLower(c.Unit)
	typ := strings.ToLower(c.Type)
	provider := strings.ToLower(c.Provider)

	out := make([]Acquisition, 0, len(records))
	for _, a := range records {
		if unit != "" && !strings.Contains(strings.ToLower(a.Unit), unit) {
			continue
		}
		if typ != "" && !strings.Contains(strings.ToLower(a.Type), typ) {
			continue
		}
		if provider != "" && !strings.Contains(strings.ToLower(a.Provider), provider) {
			continue
		}
		switch c.State {
		case StateActive:
			if !a.Active {
				continue
			}
		case StateInactive:
			if a.Active {
				continue
			}
		}
		if c.DateFrom != "" && a.AcquisitionDate < c.DateFrom {
			continue
		}
		if c.DateTo != "" && a.AcquisitionDate > c.DateTo {
			continue
		}
		out = append(out, a)
	}
	return out
}
