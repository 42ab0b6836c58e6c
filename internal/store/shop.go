package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skovlund/choreboard/internal/actions"
	"github.com/skovlund/choreboard/internal/model"
)

// AddShopItemParams carries the add_shop_item command arguments.
type AddShopItemParams struct {
	Title   string
	Price   int
	Icon    string
	Image   string
	Active  bool
	Actions []model.ActionStep
}

// AddShopItem creates a shop item. Malformed action steps are dropped
// silently; a negative price is clamped to zero.
func (s *Store) AddShopItem(p AddShopItemParams) (*model.ShopItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Price < 0 {
		p.Price = 0
	}
	item := model.ShopItem{
		ID:      uuid.NewString(),
		Title:   strings.TrimSpace(p.Title),
		Price:   p.Price,
		Icon:    strings.TrimSpace(p.Icon),
		Image:   strings.TrimSpace(p.Image),
		Active:  p.Active,
		Actions: actions.NormalizeSteps(p.Actions),
	}
	s.snap.Items = append(s.snap.Items, item)
	if err := s.save(); err != nil {
		return nil, err
	}
	s.dataChanged()
	return &item, nil
}

// UpdateShopItemParams carries partial item updates; nil fields are
// untouched.
type UpdateShopItemParams struct {
	Title   *string
	Price   *int
	Icon    *string
	Image   *string
	Active  *bool
	Actions *[]model.ActionStep
}

// UpdateShopItem mutates only the supplied fields.
func (s *Store) UpdateShopItem(itemID string, p UpdateShopItemParams) (*model.ShopItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.itemIndex(itemID)
	if i < 0 {
		return nil, ErrNotFound
	}
	item := &s.snap.Items[i]
	if p.Title != nil {
		item.Title = strings.TrimSpace(*p.Title)
	}
	if p.Price != nil {
		item.Price = *p.Price
		if item.Price < 0 {
			item.Price = 0
		}
	}
	if p.Icon != nil {
		item.Icon = strings.TrimSpace(*p.Icon)
	}
	if p.Image != nil {
		item.Image = strings.TrimSpace(*p.Image)
	}
	if p.Active != nil {
		item.Active = *p.Active
	}
	if p.Actions != nil {
		item.Actions = actions.NormalizeSteps(*p.Actions)
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	s.dataChanged()
	out := *item
	out.Actions = append([]model.ActionStep(nil), item.Actions...)
	return &out, nil
}

// DeleteShopItem removes an item. Its image asset is deleted best-effort
// when no remaining item or purchase still references it; cleanup failures
// never fail the deletion.
func (s *Store) DeleteShopItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.itemIndex(itemID)
	if i < 0 {
		return ErrNotFound
	}
	image := s.snap.Items[i].Image
	s.snap.Items = append(s.snap.Items[:i], s.snap.Items[i+1:]...)
	if err := s.save(); err != nil {
		return err
	}

	if image != "" && s.images != nil && !s.imageReferenced(image) {
		if err := s.images.Remove(image); err != nil {
			s.logger.Warn("shop image cleanup failed", "image", image, "error", err)
		}
	}
	s.dataChanged()
	return nil
}

// imageReferenced reports whether any item or purchase still uses the
// image. Must be called with mu held.
func (s *Store) imageReferenced(image string) bool {
	for i := range s.snap.Items {
		if s.snap.Items[i].Image == image {
			return true
		}
	}
	for i := range s.snap.Purchases {
		if s.snap.Purchases[i].Image == image {
			return true
		}
	}
	return false
}

// BuyShopItem spends a child's points on an item: the price is debited, an
// immutable denormalized purchase record is appended, and the item's
// action sequence runs in the background once the purchase has persisted.
func (s *Store) BuyShopItem(childID, itemID string) (*model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ci := s.childIndex(childID)
	if ci < 0 {
		return nil, ErrNotFound
	}
	ii := s.itemIndex(itemID)
	if ii < 0 {
		return nil, ErrNotFound
	}
	child := &s.snap.Children[ci]
	item := &s.snap.Items[ii]
	if child.Points < item.Price {
		return nil, ErrInsufficientPoints
	}

	child.Points -= item.Price
	purchase := model.Purchase{
		ID:        uuid.NewString(),
		ChildID:   child.ID,
		ItemID:    item.ID,
		Title:     item.Title,
		Price:     item.Price,
		Icon:      item.Icon,
		Image:     item.Image,
		TS:        s.clock.Now().Format(time.RFC3339),
		ChildName: child.Name,
	}
	s.snap.Purchases = append(s.snap.Purchases, purchase)
	if err := s.save(); err != nil {
		return nil, err
	}
	s.dataChanged()

	if s.runner != nil && len(item.Actions) > 0 {
		steps := append([]model.ActionStep(nil), item.Actions...)
		go s.runner.Run(s.actionCtx, steps)
	}
	return &purchase, nil
}

// ClearShopHistory drops purchase records, either for one child or for
// everyone.
func (s *Store) ClearShopHistory(childID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if childID != "" {
		if s.childIndex(childID) < 0 {
			return ErrNotFound
		}
		kept := s.snap.Purchases[:0]
		for _, p := range s.snap.Purchases {
			if p.ChildID != childID {
				kept = append(kept, p)
			}
		}
		s.snap.Purchases = kept
	} else {
		s.snap.Purchases = nil
	}
	if err := s.save(); err != nil {
		return err
	}
	s.dataChanged()
	return nil
}
