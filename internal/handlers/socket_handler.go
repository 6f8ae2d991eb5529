package handlers

import (
	"sync"

	"kanban/internal/realtime"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SocketHandler upgrades websocket connections and relays board-invitation
// events between clients.
type SocketHandler struct {
	hub *realtime.Hub
}

// NewSocketHandler creates a new SocketHandler.
func NewSocketHandler(hub *realtime.Hub) *SocketHandler {
	return &SocketHandler{
		hub: hub,
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *SocketHandler) RegisterRoutes(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(h.handleConnection))
}

// socketClient wraps a websocket connection so concurrent broadcasts do not
// interleave writes.
type socketClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *socketClient) Send(msg realtime.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.WriteJSON(msg)
}

func (h *SocketHandler) handleConnection(conn *websocket.Conn) {
	client := &socketClient{conn: conn}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	for {
		var msg realtime.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		// Rebroadcast the invitation payload untouched to every other
		// client; the frontend decides whether it is the invitee.
		if msg.Event == realtime.EventUserInvitedInbound {
			h.hub.BroadcastExcept(client, realtime.Message{
				Event:   realtime.EventUserInvitedOutbound,
				Payload: msg.Payload,
			})
		}
	}
}
