package store

import (
	"testing"
	"time"

	"github.com/skovlund/choreboard/internal/model"
)

func activeInstances(s *Store) []model.Task {
	var out []model.Task
	for _, t := range s.Tasks() {
		if !t.IsTemplate() && t.Active() {
			out = append(out, t)
		}
	}
	return out
}

func TestRolloverSpawnsOnMatchingDay(t *testing.T) {
	s, clk, _, _ := newTestStore(t)
	a := addChild(t, s, "Astrid")
	b := addChild(t, s, "Bruno")

	tpl, err := s.CreateTask(CreateTaskParams{
		Title:          "Vacuum",
		Points:         4,
		RepeatDays:     []any{0, 2}, // Monday and Wednesday
		RepeatChildIDs: []string{a.ID, b.ID},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if got := len(activeInstances(s)); got != 0 {
		t.Fatalf("non-bonus template must not spawn eagerly, got %d instances", got)
	}

	// Wednesday: both children get an instance.
	if err := s.DailyRollover(); err != nil {
		t.Fatalf("DailyRollover: %v", err)
	}
	insts := activeInstances(s)
	if len(insts) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(insts))
	}
	for _, inst := range insts {
		if inst.RepeatTemplateID != tpl.ID {
			t.Errorf("instance not linked: %+v", inst)
		}
		if inst.Status != model.StatusAssigned {
			t.Errorf("Status = %q, want assigned", inst.Status)
		}
	}

	// Running again the same day spawns nothing new.
	if err := s.DailyRollover(); err != nil {
		t.Fatalf("second DailyRollover: %v", err)
	}
	if got := len(activeInstances(s)); got != 2 {
		t.Errorf("same-day rollover spawned extras: %d instances", got)
	}

	// Thursday: the schedule does not fire and the untouched instances
	// are swept.
	clk.advanceDays(1)
	if err := s.DailyRollover(); err != nil {
		t.Fatalf("thursday DailyRollover: %v", err)
	}
	if got := len(activeInstances(s)); got != 0 {
		t.Errorf("thursday should leave no instances, got %d", got)
	}

	// The following Monday fires again.
	clk.advanceDays(4)
	if err := s.DailyRollover(); err != nil {
		t.Fatalf("monday DailyRollover: %v", err)
	}
	if got := len(activeInstances(s)); got != 2 {
		t.Errorf("monday should spawn 2 instances, got %d", got)
	}
}

func TestRolloverCarriesPersistentTasks(t *testing.T) {
	s, clk, _, _ := newTestStore(t)
	child := addChild(t, s, "Astrid")

	sticky, _ := s.CreateTask(CreateTaskParams{
		Title: "Clean room", Points: 5, AssignedTo: child.ID,
		PersistUntilCompleted: true,
	})
	plain, _ := s.CreateTask(CreateTaskParams{
		Title: "Set table", Points: 2, AssignedTo: child.ID,
	})
	done, _ := s.CreateTask(CreateTaskParams{
		Title: "Dishes", Points: 3, AssignedTo: child.ID,
		PersistUntilCompleted: true,
	})
	if _, err := s.SetTaskStatus(done.ID, model.StatusAwaiting, nil); err != nil {
		t.Fatalf("SetTaskStatus: %v", err)
	}
	if _, err := s.ApproveTask(done.ID); err != nil {
		t.Fatalf("ApproveTask: %v", err)
	}

	clk.advanceDays(1)
	if err := s.DailyRollover(); err != nil {
		t.Fatalf("DailyRollover: %v", err)
	}

	got, err := s.Task(sticky.ID)
	if err != nil {
		t.Fatalf("persistent task was dropped: %v", err)
	}
	if !got.CarriedOver {
		t.Error("carried task must be flagged CarriedOver")
	}
	if got.Created == sticky.Created {
		t.Error("carried task must get a fresh creation timestamp")
	}

	if _, err := s.Task(plain.ID); err == nil {
		t.Error("non-persistent stale task should be dropped")
	}
	if _, err := s.Task(done.ID); err == nil {
		t.Error("approved task should be dropped even when persistent")
	}
}

func TestRolloverWeeklyAndMonthly(t *testing.T) {
	s, clk, persist, _ := newTestStore(t)

	persist.saved = &model.Snapshot{
		Children: []model.Child{{ID: "c1", Name: "Astrid", Slug: "astrid"}},
		Tasks: []model.Task{
			{ID: "w1", Title: "Laundry", Points: 6, ScheduleMode: model.ModeWeekly,
				RepeatDays: []int{0}, RepeatChildIDs: []string{"c1"}, Created: "2024-06-01T08:00:00Z"},
			{ID: "m1", Title: "Allowance", Points: 10, ScheduleMode: model.ModeMonthly,
				RepeatChildIDs: []string{"c1"}, Created: "2024-06-01T08:00:00Z"},
		},
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Wednesday the 5th: neither schedule fires.
	if err := s.DailyRollover(); err != nil {
		t.Fatalf("DailyRollover: %v", err)
	}
	if got := len(activeInstances(s)); got != 0 {
		t.Fatalf("wednesday spawned %d instances, want 0", got)
	}

	// Monday the 10th: the weekly task fires.
	clk.advanceDays(5)
	if err := s.DailyRollover(); err != nil {
		t.Fatalf("DailyRollover: %v", err)
	}
	insts := activeInstances(s)
	if len(insts) != 1 || insts[0].RepeatTemplateID != "w1" {
		t.Fatalf("monday instances = %+v, want one from w1", insts)
	}

	// July 1st: the weekly instance is swept (it is a Monday too, so a
	// fresh one spawns) and the monthly task fires.
	clk.t = time.Date(2024, 7, 1, 0, 30, 0, 0, time.UTC)
	if err := s.DailyRollover(); err != nil {
		t.Fatalf("DailyRollover: %v", err)
	}
	byTemplate := map[string]int{}
	for _, inst := range activeInstances(s) {
		byTemplate[inst.RepeatTemplateID]++
	}
	if byTemplate["w1"] != 1 || byTemplate["m1"] != 1 {
		t.Errorf("july 1st instances by template = %v, want one each", byTemplate)
	}
}

func TestRolloverBonusInstanceDueToday(t *testing.T) {
	s, _, persist, _ := newTestStore(t)

	persist.saved = &model.Snapshot{
		Children: []model.Child{{ID: "c1", Name: "Astrid", Slug: "astrid"}},
		Tasks: []model.Task{
			{ID: "tpl1", Title: "Vacuum", Points: 4, ScheduleMode: model.ModeRepeat,
				RepeatDays: []int{2}, RepeatChildIDs: []string{"c1"},
				BonusEnabled: true, BonusDays: 1, BonusPoints: 2,
				Created: "2024-06-01T08:00:00Z"},
		},
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Wednesday matches the schedule; bonus-eligible spawns carry today's
	// date so the early-completion window is computable.
	if err := s.DailyRollover(); err != nil {
		t.Fatalf("DailyRollover: %v", err)
	}
	insts := activeInstances(s)
	if len(insts) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(insts))
	}
	if insts[0].Due != "2024-06-05" {
		t.Errorf("Due = %q, want 2024-06-05", insts[0].Due)
	}
}

func TestRolloverKeepsUnparseableCreated(t *testing.T) {
	s, clk, persist, _ := newTestStore(t)

	persist.saved = &model.Snapshot{
		Children: []model.Child{{ID: "c1", Name: "Astrid", Slug: "astrid"}},
		Tasks: []model.Task{
			{ID: "t1", Title: "Mystery", Points: 1, AssignedTo: "c1",
				Status: model.StatusAssigned, Created: "not-a-timestamp"},
		},
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	clk.advanceDays(3)
	if err := s.DailyRollover(); err != nil {
		t.Fatalf("DailyRollover: %v", err)
	}
	if _, err := s.Task("t1"); err != nil {
		t.Error("task with unparseable creation timestamp must be kept")
	}
}
