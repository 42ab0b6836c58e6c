package store

import (
	"errors"
	"testing"
)

func TestAddCategoryColorNormalization(t *testing.T) {
	s, _, _, _ := newTestStore(t)

	cat, err := s.AddCategory("Kitchen", " #FF8800 ")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if cat.Color != "#ff8800" {
		t.Errorf("Color = %q, want #ff8800", cat.Color)
	}

	if _, err := s.AddCategory("Outdoor", ""); err != nil {
		t.Errorf("empty color should be allowed: %v", err)
	}

	for _, bad := range []string{"red", "#ff88", "#ff880g", "ff8800ff"} {
		if _, err := s.AddCategory("Bad", bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("color %q: err = %v, want ErrInvalidColor", bad, err)
		}
	}
}

func TestUpdateCategory(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	cat, _ := s.AddCategory("Kitchen", "#ff8800")

	name := "Chores"
	got, err := s.UpdateCategory(cat.ID, &name, nil)
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if got.Name != "Chores" || got.Color != "#ff8800" {
		t.Errorf("partial update = %+v", got)
	}

	bad := "nope"
	if _, err := s.UpdateCategory(cat.ID, nil, &bad); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("err = %v, want ErrInvalidColor", err)
	}
	if _, err := s.UpdateCategory("missing", &name, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCategoryStripsTasks(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	child := addChild(t, s, "Astrid")
	kitchen, _ := s.AddCategory("Kitchen", "")
	outdoor, _ := s.AddCategory("Outdoor", "")

	task, err := s.CreateTask(CreateTaskParams{
		Title:       "Dishes",
		AssignedTo:  child.ID,
		CategoryIDs: []string{kitchen.ID, outdoor.ID},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if err := s.DeleteCategory(kitchen.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	got, _ := s.Task(task.ID)
	if len(got.CategoryIDs) != 1 || got.CategoryIDs[0] != outdoor.ID {
		t.Errorf("CategoryIDs = %v, want only outdoor", got.CategoryIDs)
	}

	if err := s.DeleteCategory("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateTaskFiltersUnknownCategories(t *testing.T) {
	s, _, _, _ := newTestStore(t)
	child := addChild(t, s, "Astrid")
	kitchen, _ := s.AddCategory("Kitchen", "")

	task, err := s.CreateTask(CreateTaskParams{
		Title:       "Dishes",
		AssignedTo:  child.ID,
		CategoryIDs: []string{kitchen.ID, "ghost"},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if len(task.CategoryIDs) != 1 || task.CategoryIDs[0] != kitchen.ID {
		t.Errorf("CategoryIDs = %v, want unknown ids dropped", task.CategoryIDs)
	}
}
