// Package stream bridges a running driver to browser clients over
// WebSocket: frame snapshots go out, control messages come in.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/san-kum/orrery/internal/sim"
)

const writeWait = 5 * time.Second

type Options struct {
	// Rate caps snapshots per second. Zero or less sends every frame.
	Rate float64
	// Buffer is the per-client backlog; snapshots beyond it are dropped.
	Buffer int
	Logger logr.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub is a sim.Observer that fans snapshots out to every connected client.
type Hub struct {
	driver   *sim.Driver
	limiter  *rate.Limiter
	upgrader websocket.Upgrader
	buffer   int
	log      logr.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	dropped uint64
}

func NewHub(d *sim.Driver, opts Options) *Hub {
	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 8
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Hub{
		driver:  d,
		limiter: rate.NewLimiter(limit, 1),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		buffer:  opts.Buffer,
		log:     log.WithName("stream"),
		clients: make(map[*client]struct{}),
	}
}

// OnFrame implements sim.Observer.
func (h *Hub) OnFrame(f sim.Frame) {
	if h.Clients() == 0 || !h.limiter.Allow() {
		return
	}
	data, err := json.Marshal(Capture(h.driver, f))
	if err != nil {
		h.log.Error(err, "encode snapshot", "frame", f.Index)
		return
	}
	h.broadcast(data)
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped++
		}
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped counts snapshots skipped because a client fell behind.
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ServeHTTP upgrades the request and serves the client until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(err, "upgrade failed", "remote", r.RemoteAddr)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, h.buffer)}
	h.add(c)
	h.log.V(1).Info("client connected", "remote", r.RemoteAddr)

	go h.writeLoop(c)
	h.readLoop(c)

	h.remove(c)
	h.log.V(1).Info("client disconnected", "remote", r.RemoteAddr)
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) readLoop(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Error(err, "read failed")
			}
			return
		}
		cmd, err := ParseCommand(data)
		if err != nil {
			h.log.Info("ignoring message", "error", err.Error())
			continue
		}
		if !h.driver.Enqueue(cmd) {
			h.log.Info("command queue full")
		}
	}
}

// Mux serves the hub under /ws.
func (h *Hub) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	return mux
}
