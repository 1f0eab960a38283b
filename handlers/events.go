// handlers/events.go - per-user websocket event feed. Progress events
// (xp_awarded, level_up, achievement_unlocked) are pushed to every open
// connection the user holds.
package handlers

import (
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Event is a single progress notification sent over the websocket feed.
type Event struct {
	Type    string    `json:"type"`
	Payload fiber.Map `json:"payload"`
}

// wsConn is the slice of *websocket.Conn the hub uses.
type wsConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// wsClient pairs a connection with a write lock. Fasthttp websocket
// connections do not support concurrent writers, and PublishEvent runs on
// whatever request goroutine triggered the event.
type wsClient struct {
	conn    wsConn
	writeMu sync.Mutex // serialises all conn writes
}

func (c *wsClient) writeJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

type eventHub struct {
	mu    sync.RWMutex
	conns map[uint]map[*wsClient]bool
}

var hub = &eventHub{
	conns: make(map[uint]map[*wsClient]bool),
}

func (h *eventHub) add(userID uint, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*wsClient]bool)
	}
	h.conns[userID][c] = true
}

func (h *eventHub) remove(userID uint, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
}

// PublishEvent sends an event to all of the user's open connections.
// Users with no open connection are skipped silently.
func PublishEvent(userID uint, event Event) {
	hub.mu.RLock()
	set := hub.conns[userID]
	clients := make([]*wsClient, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	hub.mu.RUnlock()

	for _, c := range clients {
		if err := c.writeJSON(event); err != nil {
			log.Printf("⚠️ Dropping websocket for user %d: %v", userID, err)
			hub.remove(userID, c)
			c.conn.Close()
		}
	}
}

// socketUserID extracts the user id the auth middleware stored in Locals.
// JWT claims decode numbers as float64.
func socketUserID(c *websocket.Conn) uint {
	switch id := c.Locals("userId").(type) {
	case float64:
		return uint(id)
	case uint:
		return id
	default:
		return 0
	}
}

// EventsSocket handles a /ws/events connection. The auth middleware has
// already verified the token and stored the user id in Locals.
func EventsSocket(c *websocket.Conn) {
	userID := socketUserID(c)
	if userID == 0 {
		c.Close()
		return
	}

	client := &wsClient{conn: c}
	hub.add(userID, client)
	defer func() {
		hub.remove(userID, client)
		c.Close()
	}()

	// The feed is push-only. Reading keeps ping/pong handling alive and
	// detects the client going away.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
