package gateway

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pos-system/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 32
)

// Hub fans every broadcast frame out to all connected displays. There is no
// per-client routing: displays filter locally.
type Hub struct {
	lg       *logger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(lg *logger.Logger) *Hub {
	return &Hub{
		lg: lg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// HandleWS upgrades the request and keeps the connection registered until
// the peer goes away. Inbound frames are read and discarded; the socket is
// push-only.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.lg.Error("ws_upgrade_failed", err, nil)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.lg.Info("display_connected", map[string]any{"remote": conn.RemoteAddr().String(), "clients": n})

	go c.writePump()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(c)
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
}

// Broadcast enqueues one frame to every client. A client whose buffer is
// full is dropped rather than allowed to stall the rest.
func (h *Hub) Broadcast(body []byte) {
	h.mu.Lock()
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- body:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		h.lg.Info("display_dropped_slow", map[string]any{"remote": c.conn.RemoteAddr().String()})
		h.drop(c)
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount is used by the health endpoint.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
