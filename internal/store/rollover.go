package store

import (
	"time"

	"github.com/skovlund/choreboard/internal/model"
	"github.com/skovlund/choreboard/internal/recurrence"
)

// DailyRollover is the midnight housekeeping pass, also run once at
// startup. Two passes over a snapshot taken before mutation:
//
//  1. Carry/clean: instances created before today are carried over
//     (persist-until-completed and not yet approved) or dropped.
//     Templates are never touched.
//  2. Spawn: templates whose schedule matches today get one instance per
//     target child that does not already have an active one.
//
// All date comparisons use local calendar dates.
func (s *Store) DailyRollover() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	today := s.clock.Today()

	// Capture templates before cleanup so the plan survives the sweep.
	var templates []model.Task
	for i := range s.snap.Tasks {
		if s.snap.Tasks[i].IsTemplate() {
			templates = append(templates, cloneTask(&s.snap.Tasks[i]))
		}
	}

	kept := s.snap.Tasks[:0]
	for _, t := range s.snap.Tasks {
		if t.IsTemplate() {
			kept = append(kept, t)
			continue
		}
		created, ok := s.localDate(t.Created)
		if !ok {
			// Unparseable creation timestamps are left alone.
			kept = append(kept, t)
			continue
		}
		if !created.Before(today) {
			kept = append(kept, t)
			continue
		}
		if t.PersistUntilCompleted && t.Status != model.StatusApproved {
			t.Created = now.Format(time.RFC3339)
			t.CarriedOver = true
			kept = append(kept, t)
			continue
		}
		s.logger.Debug("rollover: dropping stale task", "task_id", t.ID, "title", t.Title, "status", t.Status)
	}
	s.snap.Tasks = kept

	for _, tpl := range templates {
		mode, days := recurrence.Normalize(tpl.ScheduleMode, tpl.RepeatDays)
		if mode == model.ModeRepeat && len(days) == 0 {
			continue
		}
		if !recurrence.MatchesDate(mode, days, today) {
			continue
		}
		// Carry-over through the rollover is a repeat-mode feature; weekly
		// and monthly instances live for their day only.
		persist := tpl.PersistUntilCompleted && mode == model.ModeRepeat
		due := tpl.Due
		if tpl.BonusEligible() {
			due = today.Format(dueLayout)
		}
		for _, childID := range tpl.RepeatChildIDs {
			if s.childIndex(childID) < 0 {
				s.logger.Debug("rollover: unknown target child", "template_id", tpl.ID, "child_id", childID)
				continue
			}
			if s.hasActiveInstance(tpl, childID, today) {
				continue
			}
			s.spawnInstance(tpl, childID, spawnOpts{due: due, persist: persist, link: true})
		}
	}

	if err := s.save(); err != nil {
		return err
	}
	s.dataChanged()
	return nil
}
