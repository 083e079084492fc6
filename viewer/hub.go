package main

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/brensch/gridsnake/sim"
)

const (
	writeTimeout   = 10 * time.Second
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Observers connect from anywhere; the feed is read-mostly and local.
	CheckOrigin: func(*http.Request) bool { return true },
}

// keyMessage is what a controlling client sends: the movement keys currently
// held. Presses are OR-ed together until the run loop consumes them, so a tap
// between two frames is not lost.
type keyMessage struct {
	Left  bool `json:"left"`
	Down  bool `json:"down"`
	Up    bool `json:"up"`
	Right bool `json:"right"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// hub fans frame payloads out to connected websocket clients and accumulates
// key input from them for the run loop.
type hub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	keys    sim.Keys
	last    []byte
}

func newHub(logger *slog.Logger) *hub {
	return &hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// takeKeys returns the keys accumulated since the last call and clears them.
func (h *hub) takeKeys() sim.Keys {
	h.mu.Lock()
	defer h.mu.Unlock()
	k := h.keys
	h.keys = sim.Keys{}
	return k
}

// broadcast queues payload for every connected client. Clients that cannot
// keep up are dropped rather than stalling the frame loop.
func (h *hub) broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = payload
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("dropping slow viewer client")
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// lastFrame returns the most recently broadcast frame payload, nil before the
// first frame.
func (h *hub) lastFrame() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("viewer connected", "remote", conn.RemoteAddr().String(), "clients", n)

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *hub) readLoop(c *client) {
	defer h.drop(c)

	for {
		var msg keyMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Info("viewer read ended", "err", err)
			}
			return
		}

		h.mu.Lock()
		h.keys.Left = h.keys.Left || msg.Left
		h.keys.Down = h.keys.Down || msg.Down
		h.keys.Up = h.keys.Up || msg.Up
		h.keys.Right = h.keys.Right || msg.Right
		h.mu.Unlock()
	}
}

func (h *hub) writeLoop(c *client) {
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.drop(c)
			return
		}
	}
	c.conn.Close()
}

func (h *hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

// closeAll disconnects every client, used on shutdown.
func (h *hub) closeAll() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
	}
}
