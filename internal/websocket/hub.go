// Package websocket is the change-notification sink: connected clients
// receive fire-and-forget "data_changed" / "children_changed" signals
// after successful mutations, with no payload beyond the signal type.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Signal types broadcast to clients.
const (
	SignalDataChanged     = "data_changed"
	SignalChildrenChanged = "children_changed"
)

// Message is a single change signal.
type Message struct {
	Type string `json:"type"`
}

// Hub maintains the set of active WebSocket clients and broadcasts
// signals. It implements the store's Notifier.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// DataChanged broadcasts a data_changed signal.
func (h *Hub) DataChanged() {
	h.Broadcast(Message{Type: SignalDataChanged})
}

// ChildrenChanged broadcasts a children_changed signal.
func (h *Hub) ChildrenChanged() {
	h.Broadcast(Message{Type: SignalChildrenChanged})
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full; the signal is dropped, delivery is
			// at-most-once.
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
