package handler

import (
	"net/http"

	"github.com/skovlund/choreboard/internal/store"
)

type CategoryHandler struct {
	store *store.Store
}

func NewCategoryHandler(s *store.Store) *CategoryHandler {
	return &CategoryHandler{store: s}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot().Categories)
}

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decode(w, r, &req) {
		return
	}
	cat, err := h.store.AddCategory(req.Name, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

type categoryUpdateRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req categoryUpdateRequest
	if !decode(w, r, &req) {
		return
	}
	cat, err := h.store.UpdateCategory(r.PathValue("id"), req.Name, req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCategory(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
