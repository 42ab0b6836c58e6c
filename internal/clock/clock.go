// Package clock abstracts "now" so calendar arithmetic can be tested with
// a fixed local date. All rollover and bonus math uses local dates.
package clock

import "time"

// Clock provides location-aware time.
type Clock interface {
	// Now returns the current instant in the configured location.
	Now() time.Time
	// Today returns local midnight of the current day.
	Today() time.Time
}

// System is the real clock bound to a location.
type System struct {
	loc *time.Location
}

// NewSystem returns a system clock in the given location. A nil location
// falls back to time.Local.
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{loc: loc}
}

func (s *System) Now() time.Time {
	return time.Now().In(s.loc)
}

func (s *System) Today() time.Time {
	return StartOfDay(s.Now())
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Fixed is a clock pinned to one instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time   { return f.T }
func (f Fixed) Today() time.Time { return StartOfDay(f.T) }
