// Package websocket implements the live notification push channel. Clients
// connect once per session and are joined to a room keyed by their user id;
// notification mutations are broadcast into that room so feeds can prepend
// or replace items in place without refetching.
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event kinds delivered over the push channel
const (
	EventNewNotification      = "newNotification"
	EventNotificationRead     = "notificationRead"
	EventNotificationArchived = "notificationArchived"
)

// Event is a single push-channel message. Data carries the full notification
// payload so clients never need a follow-up fetch.
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// client is one websocket connection belonging to a user. A user may hold
// several connections (multiple tabs); each receives every event.
type client struct {
	userID uuid.UUID
	send   chan []byte
}

// Hub tracks connections per user id and fans events out to them.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*client]struct{}
	log   *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		rooms: make(map[uuid.UUID]map[*client]struct{}),
		log:   log,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[c.userID] == nil {
		h.rooms[c.userID] = make(map[*client]struct{})
	}
	h.rooms[c.userID][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.userID]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.userID)
	}
	close(c.send)
}

// Publish sends an event to every connection held by the user. Connections
// with a full buffer are skipped rather than blocked on.
func (h *Hub) Publish(userID uuid.UUID, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.log.Warnf("Failed to marshal push event: %+v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[userID] {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ConnectionCount returns the number of open connections for a user.
func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades authenticated HTTP requests to websocket connections.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Connect upgrades the request and joins the connection to the room of the
// user identified by userID (resolved by the auth middleware upstream).
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.hub.log.Warnf("Failed to upgrade websocket connection: %+v", err)
		return
	}

	c := &client{
		userID: userID,
		send:   make(chan []byte, 64),
	}
	h.hub.register(c)

	go h.writePump(c, ws)
	go h.readPump(c, ws)
}

// readPump drains inbound frames so ping/pong and close frames are handled;
// the channel is server-to-client only, client payloads are discarded.
func (h *Handler) readPump(c *client, ws *gorillaws.Conn) {
	defer func() {
		h.hub.unregister(c)
		ws.Close()
	}()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Handler) writePump(c *client, ws *gorillaws.Conn) {
	defer ws.Close()

	for message := range c.send {
		if err := ws.WriteMessage(gorillaws.TextMessage, message); err != nil {
			break
		}
	}
}
