package handler

import (
	"net/http"

	"github.com/skovlund/choreboard/internal/model"
	"github.com/skovlund/choreboard/internal/store"
)

type ShopHandler struct {
	store *store.Store
}

func NewShopHandler(s *store.Store) *ShopHandler {
	return &ShopHandler{store: s}
}

func (h *ShopHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot().Items)
}

type shopItemRequest struct {
	Title   string             `json:"title"`
	Price   int                `json:"price"`
	Icon    string             `json:"icon"`
	Image   string             `json:"image"`
	Active  *bool              `json:"active"`
	Actions []model.ActionStep `json:"actions"`
}

func (h *ShopHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req shopItemRequest
	if !decode(w, r, &req) {
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	item, err := h.store.AddShopItem(store.AddShopItemParams{
		Title:   req.Title,
		Price:   req.Price,
		Icon:    req.Icon,
		Image:   req.Image,
		Active:  active,
		Actions: req.Actions,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

type shopItemUpdateRequest struct {
	Title   *string             `json:"title"`
	Price   *int                `json:"price"`
	Icon    *string             `json:"icon"`
	Image   *string             `json:"image"`
	Active  *bool               `json:"active"`
	Actions *[]model.ActionStep `json:"actions"`
}

func (h *ShopHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req shopItemUpdateRequest
	if !decode(w, r, &req) {
		return
	}
	item, err := h.store.UpdateShopItem(r.PathValue("id"), store.UpdateShopItemParams{
		Title:   req.Title,
		Price:   req.Price,
		Icon:    req.Icon,
		Image:   req.Image,
		Active:  req.Active,
		Actions: req.Actions,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ShopHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteShopItem(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type buyRequest struct {
	ChildID string `json:"child_id"`
	ItemID  string `json:"item_id"`
}

func (h *ShopHandler) Buy(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if !decode(w, r, &req) {
		return
	}
	purchase, err := h.store.BuyShopItem(req.ChildID, req.ItemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, purchase)
}

func (h *ShopHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot().Purchases)
}

// ClearPurchases clears the whole history, or one child's with ?child_id=.
func (h *ShopHandler) ClearPurchases(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearShopHistory(r.URL.Query().Get("child_id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
