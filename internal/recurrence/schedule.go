// Package recurrence implements the schedule arithmetic behind task
// templates: weekday-set normalization, schedule/date matching and next
// occurrence lookup. Weekdays are 0=Monday .. 6=Sunday, local time.
package recurrence

import (
	"sort"
	"strings"
	"time"

	"github.com/skovlund/choreboard/internal/model"
)

var dayAbbrev = map[string]int{
	"mon": 0,
	"tue": 1,
	"wed": 2,
	"thu": 3,
	"fri": 4,
	"sat": 5,
	"sun": 6,
}

// WeekdayIndex converts a time.Weekday (Sunday=0) to the 0=Monday indexing
// used by repeat-day sets.
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// NormalizeDays converts a mixed list of weekday tokens (integers 0-6 or
// case-insensitive day names, matched on their first three letters) into a
// sorted, deduplicated int set. Unrecognized tokens are dropped silently.
// Normalization is idempotent.
func NormalizeDays(tokens []any) []int {
	seen := make(map[int]bool)
	for _, tok := range tokens {
		switch v := tok.(type) {
		case int:
			if v >= 0 && v <= 6 {
				seen[v] = true
			}
		case float64:
			// JSON numbers decode as float64.
			n := int(v)
			if float64(n) == v && n >= 0 && n <= 6 {
				seen[n] = true
			}
		case string:
			s := strings.ToLower(strings.TrimSpace(v))
			if len(s) > 3 {
				s = s[:3]
			}
			if d, ok := dayAbbrev[s]; ok {
				seen[d] = true
			}
		}
	}
	out := make([]int, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Normalize applies the mode's constraints to a normalized day set:
// weekly schedules always run on Monday, monthly schedules on the first of
// the month (no weekday set). Any unrecognized mode becomes ModeRepeat.
func Normalize(mode string, days []int) (string, []int) {
	switch mode {
	case model.ModeWeekly:
		return model.ModeWeekly, []int{0}
	case model.ModeMonthly:
		return model.ModeMonthly, nil
	default:
		return model.ModeRepeat, days
	}
}

// MatchesDate reports whether a schedule fires on the given local date.
func MatchesDate(mode string, days []int, date time.Time) bool {
	switch mode {
	case model.ModeWeekly:
		return date.Weekday() == time.Monday
	case model.ModeMonthly:
		return date.Day() == 1
	default:
		wd := WeekdayIndex(date.Weekday())
		for _, d := range days {
			if d == wd {
				return true
			}
		}
		return false
	}
}

// NextOccurrence returns the earliest date on or after from that the
// schedule fires. For ModeRepeat with an empty day set it returns from
// itself (an ad-hoc task is due immediately).
func NextOccurrence(mode string, days []int, from time.Time) time.Time {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	switch mode {
	case model.ModeWeekly:
		delta := (int(time.Monday) - int(from.Weekday()) + 7) % 7
		return from.AddDate(0, 0, delta)
	case model.ModeMonthly:
		if from.Day() == 1 {
			return from
		}
		return time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location()).AddDate(0, 1, 0)
	default:
		if len(days) == 0 {
			return from
		}
		for i := 0; i < 7; i++ {
			d := from.AddDate(0, 0, i)
			if MatchesDate(model.ModeRepeat, days, d) {
				return d
			}
		}
		return from
	}
}

// Scheduled reports whether a template carries any recurrence at all.
func Scheduled(t *model.Task) bool {
	return t.ScheduleMode == model.ModeWeekly || t.ScheduleMode == model.ModeMonthly || len(t.RepeatDays) > 0
}
