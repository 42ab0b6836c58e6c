package handler

import (
	"net/http"
	"strings"

	"github.com/skovlund/choreboard/internal/store"
)

type ChildHandler struct {
	store *store.Store
}

func NewChildHandler(s *store.Store) *ChildHandler {
	return &ChildHandler{store: s}
}

func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Children())
}

type childRequest struct {
	Name string `json:"name"`
}

func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	child, err := h.store.AddChild(req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, child)
}

func (h *ChildHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if !decode(w, r, &req) {
		return
	}
	child, err := h.store.RenameChild(r.PathValue("id"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, child)
}

func (h *ChildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveChild(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type pointsRequest struct {
	Points int `json:"points"`
}

func (h *ChildHandler) AddPoints(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.AddPoints(r.PathValue("id"), req.Points); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type resetPointsRequest struct {
	ChildID string `json:"child_id"`
}

// ResetPoints zeroes one balance, or all balances when no child is given.
func (h *ChildHandler) ResetPoints(w http.ResponseWriter, r *http.Request) {
	var req resetPointsRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.ResetPoints(req.ChildID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
