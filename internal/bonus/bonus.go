// Package bonus computes the early-completion bonus awarded at approval
// time. The calculation is best-effort: anything malformed yields zero so
// an approval can never fail on bonus math.
package bonus

import (
	"log/slog"
	"time"

	"github.com/skovlund/choreboard/internal/model"
)

const dueLayout = "2006-01-02"

// Compute returns the bonus points for a task completed early, or zero.
// A bonus applies when the bonus config is enabled with positive days and
// points, the task has both a due date and a completion timestamp, and the
// local completion date is at least BonusDays before the due date.
func Compute(t *model.Task, loc *time.Location) int {
	if !t.BonusEligible() || t.Due == "" || t.CompletedTS == 0 {
		return 0
	}
	due, err := parseDue(t.Due, loc)
	if err != nil {
		slog.Debug("bonus: unparseable due date", "task_id", t.ID, "due", t.Due, "error", err)
		return 0
	}
	threshold := due.AddDate(0, 0, -t.BonusDays)
	completed := time.UnixMilli(t.CompletedTS).In(loc)
	completedDate := time.Date(completed.Year(), completed.Month(), completed.Day(), 0, 0, 0, 0, loc)
	if completedDate.After(threshold) {
		return 0
	}
	return t.BonusPoints
}

func parseDue(due string, loc *time.Location) (time.Time, error) {
	if d, err := time.ParseInLocation(dueLayout, due, loc); err == nil {
		return d, nil
	}
	// Older entries stored full timestamps.
	d, err := time.ParseInLocation(time.RFC3339, due, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc), nil
}
