// Package server wires the JSON command surface, the WebSocket
// notification endpoint and the health check onto one mux.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/skovlund/choreboard/internal/handler"
	"github.com/skovlund/choreboard/internal/store"
	"github.com/skovlund/choreboard/internal/websocket"
)

type Server struct {
	childH    *handler.ChildHandler
	categoryH *handler.CategoryHandler
	taskH     *handler.TaskHandler
	shopH     *handler.ShopHandler
	settingsH *handler.SettingsHandler
	hub       *websocket.Hub
	store     *store.Store
}

func New(s *store.Store, hub *websocket.Hub) *Server {
	return &Server{
		childH:    handler.NewChildHandler(s),
		categoryH: handler.NewCategoryHandler(s),
		taskH:     handler.NewTaskHandler(s),
		shopH:     handler.NewShopHandler(s),
		settingsH: handler.NewSettingsHandler(s),
		hub:       hub,
		store:     s,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", websocket.HandleWebSocket(s.hub))

	mux.HandleFunc("GET /api/children", s.childH.List)
	mux.HandleFunc("POST /api/children", s.childH.Create)
	mux.HandleFunc("PUT /api/children/{id}", s.childH.Rename)
	mux.HandleFunc("DELETE /api/children/{id}", s.childH.Delete)
	mux.HandleFunc("POST /api/children/{id}/points", s.childH.AddPoints)
	mux.HandleFunc("POST /api/points/reset", s.childH.ResetPoints)

	mux.HandleFunc("GET /api/categories", s.categoryH.List)
	mux.HandleFunc("POST /api/categories", s.categoryH.Create)
	mux.HandleFunc("PUT /api/categories/{id}", s.categoryH.Update)
	mux.HandleFunc("DELETE /api/categories/{id}", s.categoryH.Delete)

	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("GET /api/tasks/{id}", s.taskH.Get)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)
	mux.HandleFunc("POST /api/tasks/{id}/assign", s.taskH.Assign)
	mux.HandleFunc("POST /api/tasks/{id}/status", s.taskH.SetStatus)
	mux.HandleFunc("POST /api/tasks/{id}/approve", s.taskH.Approve)
	mux.HandleFunc("POST /api/tasks/{id}/repeat", s.taskH.SetRepeat)
	mux.HandleFunc("PUT /api/tasks/{id}/icon", s.taskH.SetIcon)
	mux.HandleFunc("POST /api/rollover", s.taskH.Rollover)

	mux.HandleFunc("GET /api/shop/items", s.shopH.ListItems)
	mux.HandleFunc("POST /api/shop/items", s.shopH.CreateItem)
	mux.HandleFunc("PUT /api/shop/items/{id}", s.shopH.UpdateItem)
	mux.HandleFunc("DELETE /api/shop/items/{id}", s.shopH.DeleteItem)
	mux.HandleFunc("POST /api/shop/buy", s.shopH.Buy)
	mux.HandleFunc("GET /api/shop/purchases", s.shopH.ListPurchases)
	mux.HandleFunc("DELETE /api/shop/purchases", s.shopH.ClearPurchases)

	mux.HandleFunc("GET /api/settings", s.settingsH.List)
	mux.HandleFunc("PUT /api/settings", s.settingsH.Update)

	mux.HandleFunc("GET /api/snapshot", s.snapshotHandler)

	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) snapshotHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.store.Snapshot())
}
