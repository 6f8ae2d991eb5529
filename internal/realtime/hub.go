package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Event names exchanged with clients over the socket channel.
const (
	EventUserInvitedInbound  = "FE_USER_INVITED_TO_BOARD"
	EventUserInvitedOutbound = "BE_USER_INVITED_TO_BOARD"
)

// Message is the envelope exchanged on the socket channel. The payload is
// passed through untouched.
type Message struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Client is anything that can receive a broadcast message.
type Client interface {
	Send(msg Message) error
}

// Hub tracks connected clients and fans messages out to them. Delivery is
// best effort and at most once: a failed send drops the client, nothing is
// retried or persisted, and there is no ordering across events.
type Hub struct {
	clients map[Client]struct{}
	mu      sync.RWMutex
}

// NewHub creates a new instance of Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[Client]struct{}),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, c)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// BroadcastExcept sends msg to every registered client except sender. Clients
// whose send fails are dropped from the hub.
func (h *Hub) BroadcastExcept(sender Client, msg Message) {
	h.mu.RLock()
	targets := make([]Client, 0, len(h.clients))
	for c := range h.clients {
		if c != sender {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Send(msg); err != nil {
			log.Printf("Dropping unreachable socket client: %v", err)
			h.Unregister(c)
		}
	}
}
