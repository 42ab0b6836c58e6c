// Package handler exposes the store's command surface as a JSON API, one
// endpoint per operation. Typed store failures map onto HTTP statuses;
// everything else is a 500.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skovlund/choreboard/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrAlreadyClaimed):
		status = http.StatusConflict
	case errors.Is(err, store.ErrInvalidStatus),
		errors.Is(err, store.ErrNotAssigned),
		errors.Is(err, store.ErrInsufficientPoints),
		errors.Is(err, store.ErrInvalidColor):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return false
	}
	return true
}
