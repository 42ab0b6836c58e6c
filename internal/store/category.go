package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/skovlund/choreboard/internal/model"
)

func isHexDigit(r byte) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}

// normalizeColor canonicalizes a 6-hex-digit color to "#rrggbb". An empty
// string means no color; anything else malformed fails ErrInvalidColor.
func normalizeColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return "", nil
	}
	hex := strings.TrimPrefix(color, "#")
	if len(hex) != 6 {
		return "", ErrInvalidColor
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return "", ErrInvalidColor
		}
	}
	return "#" + strings.ToLower(hex), nil
}

// AddCategory creates a category with an optional color.
func (s *Store) AddCategory(name, color string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized, err := normalizeColor(color)
	if err != nil {
		return nil, err
	}
	cat := model.Category{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Color: normalized,
	}
	s.snap.Categories = append(s.snap.Categories, cat)
	if err := s.save(); err != nil {
		return nil, err
	}
	s.dataChanged()
	return &cat, nil
}

// UpdateCategory mutates only the supplied fields.
func (s *Store) UpdateCategory(id string, name, color *string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	cat := &s.snap.Categories[i]
	if color != nil {
		normalized, err := normalizeColor(*color)
		if err != nil {
			return nil, err
		}
		cat.Color = normalized
	}
	if name != nil {
		cat.Name = strings.TrimSpace(*name)
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	s.dataChanged()
	out := *cat
	return &out, nil
}

// DeleteCategory removes a category and strips its id from every task.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.snap.Categories = append(s.snap.Categories[:i], s.snap.Categories[i+1:]...)
	for j := range s.snap.Tasks {
		t := &s.snap.Tasks[j]
		if len(t.CategoryIDs) == 0 {
			continue
		}
		kept := t.CategoryIDs[:0]
		for _, cid := range t.CategoryIDs {
			if cid != id {
				kept = append(kept, cid)
			}
		}
		t.CategoryIDs = kept
	}
	if err := s.save(); err != nil {
		return err
	}
	s.dataChanged()
	return nil
}

// knownCategories filters a category id list to ids that exist, silently
// dropping the rest. Must be called with mu held.
func (s *Store) knownCategories(ids []string) []string {
	var out []string
	for _, id := range ids {
		if s.categoryIndex(id) >= 0 {
			out = append(out, id)
		}
	}
	return out
}
