// Package ws pushes notification events to connected admin dashboards over
// websocket. The hub fans a published event out to every connected client;
// slow clients get dropped rather than blocking the publisher.
package ws

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is one pushed notification.
type Event struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// NewEvent builds an Event stamped with the current time.
func NewEvent(eventType, title, message string) Event {
	return Event{
		Type:      eventType,
		Title:     title,
		Message:   message,
		Timestamp: time.Now().Unix(),
	}
}

// Hub tracks connected clients and broadcasts events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	onCount func(int)
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// OnCountChange installs a listener invoked with the client count after every
// connect and disconnect. Must be set before the hub serves connections.
func (h *Hub) OnCountChange(fn func(int)) {
	h.onCount = fn
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	if h.onCount != nil {
		h.onCount(count)
	}
	h.logger.Debug("ws client connected", zap.Uint("user_id", c.userID), zap.Int("clients", count))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	count := len(h.clients)
	h.mu.Unlock()
	if h.onCount != nil {
		h.onCount(count)
	}
	h.logger.Debug("ws client disconnected", zap.Uint("user_id", c.userID), zap.Int("clients", count))
}

// Publish sends the event to every connected client. Clients whose send
// buffer is full are skipped.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- event:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
