package notifyhub

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/soulblade33/filerobot-uploader/types"
)

// ProgressEventsPerSecond caps how many progress events reach the widget
// pages. Throttling happens here, at the presentation edge; API requests
// themselves are never rate limited.
const ProgressEventsPerSecond = 20

// connWriter serializes writes to one connection. gorilla/websocket supports
// at most one concurrent writer per connection, and concurrent upload
// sessions broadcast from independent handler goroutines.
type connWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *connWriter) write(payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub holds WebSocket connections and broadcasts upload events to all pages.
type Hub struct {
	mu              sync.RWMutex
	conns           map[*websocket.Conn]*connWriter
	progressLimiter *rate.Limiter
}

// New creates a new notify hub.
func New() *Hub {
	return &Hub{
		conns:           make(map[*websocket.Conn]*connWriter),
		progressLimiter: rate.NewLimiter(rate.Limit(ProgressEventsPerSecond), ProgressEventsPerSecond),
	}
}

// Register adds a WebSocket connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = &connWriter{conn: conn}
}

// Unregister removes a WebSocket connection from the hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// ConnCount reports how many pages are currently connected.
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends the event as JSON to all registered connections. Safe to
// call from concurrent upload handlers.
func (h *Hub) Broadcast(event *types.UploadEvent) {
	if event == nil {
		return
	}
	payload, err := sonic.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	writers := make([]*connWriter, 0, len(h.conns))
	for _, w := range h.conns {
		writers = append(writers, w)
	}
	h.mu.RUnlock()

	for _, w := range writers {
		_ = w.write(payload)
	}
}

// BroadcastProgress broadcasts a progress event subject to the hub-wide
// throttle. Events over the limit are dropped; terminal events (end, error)
// must go through Broadcast so they are never lost.
func (h *Hub) BroadcastProgress(event *types.UploadEvent) {
	if !h.progressLimiter.Allow() {
		return
	}
	h.Broadcast(event)
}
