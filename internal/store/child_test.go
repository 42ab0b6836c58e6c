package store

import (
	"errors"
	"testing"

	"github.com/skovlund/choreboard/internal/model"
)

func TestAddChild(t *testing.T) {
	s, _, _, notify := newTestStore(t)

	child, err := s.AddChild("  Märta Ängby ")
	if err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if child.Name != "Märta Ängby" {
		t.Errorf("Name = %q", child.Name)
	}
	if child.Slug != "marta_angby" {
		t.Errorf("Slug = %q, want marta_angby", child.Slug)
	}
	if child.Points != 0 {
		t.Errorf("Points = %d, want 0", child.Points)
	}
	if notify.children != 1 {
		t.Errorf("children notifications = %d, want 1", notify.children)
	}
}

func TestRenameChild(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	child := addChild(t, s, "Astrid")

	renamed, err := s.RenameChild(child.ID, "Astrid Berg")
	if err != nil {
		t.Fatalf("RenameChild: %v", err)
	}
	if renamed.Name != "Astrid Berg" || renamed.Slug != "astrid_berg" {
		t.Errorf("renamed = %+v", renamed)
	}
	if renamed.ID != child.ID {
		t.Error("rename must keep the id")
	}

	if _, err := s.RenameChild("nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("rename unknown child: err = %v, want ErrNotFound", err)
	}
}

func TestRemoveChildUnassignsTasks(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	child := addChild(t, s, "Astrid")

	task, err := s.CreateTask(CreateTaskParams{Title: "Dishes", Points: 5, AssignedTo: child.ID, FastestWins: true})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := s.SetTaskStatus(task.ID, model.StatusInProgress, nil); err != nil {
		t.Fatalf("SetTaskStatus: %v", err)
	}

	if err := s.RemoveChild(child.ID); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if len(s.Children()) != 0 {
		t.Error("child not removed")
	}

	got, err := s.Task(task.ID)
	if err != nil {
		t.Fatalf("Task: %v", err)
	}
	if got.AssignedTo != "" || got.Status != "" {
		t.Errorf("task should revert to template state, got %+v", got)
	}
	if got.ClaimedBy != "" || got.ClaimTS != 0 {
		t.Errorf("claim fields should be cleared, got %+v", got)
	}

	if err := s.RemoveChild("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove unknown child: err = %v, want ErrNotFound", err)
	}
}

func TestAddPoints(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	child := addChild(t, s, "Astrid")

	if err := s.AddPoints(child.ID, 10); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	if err := s.AddPoints(child.ID, -3); err != nil {
		t.Fatalf("AddPoints negative: %v", err)
	}
	if got := s.Children()[0].Points; got != 7 {
		t.Errorf("Points = %d, want 7", got)
	}

	if err := s.AddPoints("nope", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResetPoints(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	a := addChild(t, s, "Astrid")
	b := addChild(t, s, "Bruno")
	s.AddPoints(a.ID, 5)
	s.AddPoints(b.ID, 8)

	if err := s.ResetPoints(a.ID); err != nil {
		t.Fatalf("ResetPoints(one): %v", err)
	}
	kids := s.Children()
	if kids[0].Points != 0 || kids[1].Points != 8 {
		t.Errorf("after single reset: %+v", kids)
	}

	if err := s.ResetPoints(""); err != nil {
		t.Fatalf("ResetPoints(all): %v", err)
	}
	for _, c := range s.Children() {
		if c.Points != 0 {
			t.Errorf("child %s still has %d points", c.Name, c.Points)
		}
	}

	if err := s.ResetPoints("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
