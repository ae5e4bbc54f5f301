package ws

import (
	"encoding/json"
	"sync"

	"goldlink-backend/internal/logger"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Hub tracks websocket connections per user and fans events out to them.
// A user may hold several connections (multiple tabs or devices).
type Hub struct {
	mu      sync.RWMutex
	clients map[int32]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int32]map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.userID]
	if !ok {
		conns = make(map[*Client]struct{})
		h.clients[c.userID] = conns
	}
	conns[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := conns[c]; ok {
		delete(conns, c)
		close(c.send)
	}
	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}
}

// SendToUser delivers an event to every open connection of the given user.
// Users without an open connection are silently skipped.
func (h *Hub) SendToUser(userID int32, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to marshal websocket event", "type", event.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
			// Slow consumer, drop the event rather than block the sender.
		}
	}
}

// Online reports whether the user has at least one open connection.
func (h *Hub) Online(userID int32) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}
