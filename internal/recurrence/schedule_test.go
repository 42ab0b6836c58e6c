package recurrence

import (
	"reflect"
	"testing"
	"time"

	"github.com/skovlund/choreboard/internal/model"
)

func TestNormalizeDays(t *testing.T) {
	tests := []struct {
		name string
		in   []any
		want []int
	}{
		{"ints", []any{2, 0, 4}, []int{0, 2, 4}},
		{"names", []any{"Mon", "WEDNESDAY", "fri"}, []int{0, 2, 4}},
		{"mixed and duplicated", []any{"mon", 0, "Mon", 6, "sun"}, []int{0, 6}},
		{"json numbers", []any{float64(1), float64(3)}, []int{1, 3}},
		{"bad tokens dropped", []any{"blursday", 7, -1, 2.5, ""}, nil},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDays(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeDays(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDaysIdempotent(t *testing.T) {
	once := NormalizeDays([]any{"sun", 0, "wed", "wed", 5})
	tokens := make([]any, len(once))
	for i, d := range once {
		tokens[i] = d
	}
	twice := NormalizeDays(tokens)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalizing twice changed the set: %v vs %v", once, twice)
	}
}

func TestNormalizeModes(t *testing.T) {
	mode, days := Normalize(model.ModeWeekly, []int{3, 5})
	if mode != model.ModeWeekly || !reflect.DeepEqual(days, []int{0}) {
		t.Errorf("weekly = (%s, %v), want (weekly, [0])", mode, days)
	}

	mode, days = Normalize(model.ModeMonthly, []int{1, 2})
	if mode != model.ModeMonthly || days != nil {
		t.Errorf("monthly = (%s, %v), want (monthly, [])", mode, days)
	}

	mode, days = Normalize("", []int{1, 2})
	if mode != model.ModeRepeat || !reflect.DeepEqual(days, []int{1, 2}) {
		t.Errorf("default = (%s, %v), want (repeat, [1 2])", mode, days)
	}
}

func TestMatchesDate(t *testing.T) {
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	wednesday := monday.AddDate(0, 0, 2)
	firstOfMonth := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	if !MatchesDate(model.ModeRepeat, []int{0, 2}, wednesday) {
		t.Error("repeat {Mon,Wed} should match a Wednesday")
	}
	if MatchesDate(model.ModeRepeat, []int{0, 2}, monday.AddDate(0, 0, 1)) {
		t.Error("repeat {Mon,Wed} should not match a Tuesday")
	}
	if !MatchesDate(model.ModeWeekly, nil, monday) {
		t.Error("weekly should match a Monday")
	}
	if MatchesDate(model.ModeWeekly, nil, wednesday) {
		t.Error("weekly should not match a Wednesday")
	}
	if !MatchesDate(model.ModeMonthly, nil, firstOfMonth) {
		t.Error("monthly should match the 1st")
	}
	if MatchesDate(model.ModeMonthly, nil, wednesday) {
		t.Error("monthly should not match the 5th")
	}
}

func TestNextOccurrence(t *testing.T) {
	wednesday := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	// Inclusive of today.
	got := NextOccurrence(model.ModeRepeat, []int{2}, wednesday)
	if !got.Equal(wednesday) {
		t.Errorf("repeat on Wed from Wed = %v, want same day", got)
	}

	// Next matching weekday.
	got = NextOccurrence(model.ModeRepeat, []int{0}, wednesday)
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("repeat on Mon from Wed = %v, want %v", got, want)
	}

	got = NextOccurrence(model.ModeWeekly, []int{0}, wednesday)
	if !got.Equal(want) {
		t.Errorf("weekly from Wed = %v, want %v", got, want)
	}

	got = NextOccurrence(model.ModeMonthly, nil, wednesday)
	want = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("monthly from Jun 5 = %v, want %v", got, want)
	}

	firstOfMonth := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	got = NextOccurrence(model.ModeMonthly, nil, firstOfMonth)
	if !got.Equal(firstOfMonth) {
		t.Errorf("monthly from the 1st = %v, want same day", got)
	}

	// Ad-hoc: due immediately.
	got = NextOccurrence(model.ModeRepeat, nil, wednesday)
	if !got.Equal(wednesday) {
		t.Errorf("repeat with no days = %v, want same day", got)
	}
}

func TestWeekdayIndex(t *testing.T) {
	if got := WeekdayIndex(time.Monday); got != 0 {
		t.Errorf("Monday = %d, want 0", got)
	}
	if got := WeekdayIndex(time.Sunday); got != 6 {
		t.Errorf("Sunday = %d, want 6", got)
	}
}
