// Package claim arbitrates fastest-wins tasks: sibling instances of one
// template race for a single reward slot, and exactly one child may claim
// it. Callers must hold the store's write lock while resolving, which also
// serves as the tie-break for simultaneous attempts.
package claim

import (
	"strings"
	"time"

	"github.com/skovlund/choreboard/internal/model"
)

// Result describes the outcome of a claim attempt. When Won is false the
// claimant fields identify the child who got there first.
type Result struct {
	Won           bool
	ClaimedBy     string
	ClaimedByName string
	ClaimTS       int64
}

// Resolve attempts to claim tasks[idx] for the given child. On a win the
// claim is stamped on the task and every sibling; on a loss only the
// caller's copy is stamped with the existing claimant so the UI can show
// who won. The claim timestamp is shared across the sibling group.
func Resolve(tasks []model.Task, idx int, childID, childName string, nowMS int64, loc *time.Location) Result {
	t := &tasks[idx]
	sibs := siblings(tasks, idx, loc)

	// An existing claim anywhere in the group decides the race.
	claimant, claimantName, claimTS := t.ClaimedBy, t.ClaimedByName, t.ClaimTS
	for _, i := range sibs {
		if claimant == "" && tasks[i].ClaimedBy != "" {
			claimant, claimantName = tasks[i].ClaimedBy, tasks[i].ClaimedByName
		}
		if claimTS == 0 && tasks[i].ClaimTS != 0 {
			claimTS = tasks[i].ClaimTS
		}
	}

	if claimant != "" && claimant != childID {
		t.ClaimedBy = claimant
		t.ClaimedByName = claimantName
		t.ClaimTS = claimTS
		return Result{Won: false, ClaimedBy: claimant, ClaimedByName: claimantName, ClaimTS: claimTS}
	}

	if claimTS == 0 {
		claimTS = nowMS
	}
	t.ClaimedBy = childID
	t.ClaimedByName = childName
	t.ClaimTS = claimTS
	for _, i := range sibs {
		tasks[i].ClaimedBy = childID
		tasks[i].ClaimedByName = childName
		tasks[i].ClaimTS = claimTS
	}
	return Result{Won: true, ClaimedBy: childID, ClaimedByName: childName, ClaimTS: claimTS}
}

// siblings returns the indices of the other instances racing for the same
// slot: fastest-wins, non-template, still assigned, created the same local
// day, linked by fastest_wins_template_id. Legacy data without the link
// matches on an identical (title, points, due) signature instead.
func siblings(tasks []model.Task, idx int, loc *time.Location) []int {
	t := &tasks[idx]
	day, ok := localDate(t.Created, loc)
	if !ok {
		return nil
	}
	var out []int
	for i := range tasks {
		s := &tasks[i]
		if i == idx || !s.FastestWins || s.IsTemplate() || s.Status != model.StatusAssigned {
			continue
		}
		sday, ok := localDate(s.Created, loc)
		if !ok || !sday.Equal(day) {
			continue
		}
		if t.FastestWinsTemplateID != "" && s.FastestWinsTemplateID != "" {
			if s.FastestWinsTemplateID == t.FastestWinsTemplateID {
				out = append(out, i)
			}
			continue
		}
		if sameSignature(t, s) {
			out = append(out, i)
		}
	}
	return out
}

func sameSignature(a, b *model.Task) bool {
	return strings.TrimSpace(a.Title) == strings.TrimSpace(b.Title) &&
		a.Points == b.Points && a.Due == b.Due
}

func localDate(created string, loc *time.Location) (time.Time, bool) {
	ts, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return time.Time{}, false
	}
	ts = ts.In(loc)
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc), true
}
