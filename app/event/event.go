package event

import (
	"fmt"
	"sort"
	"time"
)

// ParseDate parses an event date string. Full RFC 3339 timestamps and bare
// calendar dates are both accepted; a bare date resolves to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// Sort orders events chronologically by parsed date. Events sharing an
// identical instant are ordered by source, then by ID, so the result is
// deterministic across runs. Events with unparseable dates sort last.
func Sort(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		ti, erri := ParseDate(events[i].Date)
		tj, errj := ParseDate(events[j].Date)

		if erri != nil || errj != nil {
			return erri == nil && errj != nil
		}

		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		if events[i].Source != events[j].Source {
			return events[i].Source < events[j].Source
		}
		return events[i].ID < events[j].ID
	})
}

// Validate checks the invariants every aggregated event must satisfy.
func Validate(e Event) error {
	if e.ID == "" {
		return fmt.Errorf("event has empty id")
	}
	if e.Name == "" {
		return fmt.Errorf("event %s has empty name", e.ID)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("event %s has unknown type %q", e.ID, e.Type)
	}
	if _, err := ParseDate(e.Date); err != nil {
		return fmt.Errorf("event %s: %w", e.ID, err)
	}
	return nil
}
