package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/skovlund/choreboard/internal/model"
)

// AddChild creates a child with a derived slug and zero points.
func (s *Store) AddChild(name string) (*model.Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	child := model.Child{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
		Slug: model.Slugify(name),
	}
	s.snap.Children = append(s.snap.Children, child)
	if err := s.save(); err != nil {
		return nil, err
	}
	s.childrenChanged()
	s.dataChanged()
	return &child, nil
}

// RenameChild updates a child's display name and re-derives the slug.
func (s *Store) RenameChild(childID, newName string) (*model.Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.childIndex(childID)
	if i < 0 {
		return nil, ErrNotFound
	}
	c := &s.snap.Children[i]
	c.Name = strings.TrimSpace(newName)
	c.Slug = model.Slugify(c.Name)
	if err := s.save(); err != nil {
		return nil, err
	}
	s.childrenChanged()
	s.dataChanged()
	out := *c
	return &out, nil
}

// RemoveChild deletes a child. Tasks owned by the child are unassigned,
// never deleted; an unassigned task reverts to template state, so its
// status machine and claim fields are cleared.
func (s *Store) RemoveChild(childID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.childIndex(childID)
	if i < 0 {
		return ErrNotFound
	}
	s.snap.Children = append(s.snap.Children[:i], s.snap.Children[i+1:]...)
	for j := range s.snap.Tasks {
		t := &s.snap.Tasks[j]
		if t.AssignedTo == childID {
			t.AssignedTo = ""
			t.Status = ""
			t.ApprovedAt = ""
			t.CompletedTS = 0
			t.CarriedOver = false
			t.ClaimedBy = ""
			t.ClaimedByName = ""
			t.ClaimTS = 0
		}
	}
	if err := s.save(); err != nil {
		return err
	}
	s.childrenChanged()
	s.dataChanged()
	return nil
}

// AddPoints credits (or, with a negative amount, debits) a child directly.
func (s *Store) AddPoints(childID string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.childIndex(childID)
	if i < 0 {
		return ErrNotFound
	}
	s.snap.Children[i].Points += points
	if err := s.save(); err != nil {
		return err
	}
	s.dataChanged()
	return nil
}

// ResetPoints zeroes one child's balance, or every balance when childID is
// empty.
func (s *Store) ResetPoints(childID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if childID != "" {
		i := s.childIndex(childID)
		if i < 0 {
			return ErrNotFound
		}
		s.snap.Children[i].Points = 0
	} else {
		for i := range s.snap.Children {
			s.snap.Children[i].Points = 0
		}
	}
	if err := s.save(); err != nil {
		return err
	}
	s.dataChanged()
	return nil
}
