package realtime

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	outboundBuffer    = 16
	heartbeatInterval = 15 * time.Second
)

// Event is one broadcast message: an SSE event name and its already
// marshaled JSON payload.
type Event struct {
	Name    string
	Payload []byte
}

type client struct {
	id       uuid.UUID
	outbound chan Event
}

// Hub fans broadcast events out to every connected SSE client. It keeps no
// state per client beyond the outbound buffer: no replay, no acks, no
// filtering. Clients use events purely as a signal to re-fetch.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Broadcast delivers the event to every connected client without blocking.
// A client whose buffer is full misses the event; since events carry no
// state of record, the next one (or the client's own re-fetch) catches it
// up.
func (h *Hub) Broadcast(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.outbound <- evt:
		default:
			log.Printf("realtime: dropping event for slow client %s", c.id)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP streams broadcast events to one client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	c := &client{
		id:       uuid.New(),
		outbound: make(chan Event, outboundBuffer),
	}
	h.register(c)
	defer h.unregister(c)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case evt := <-c.outbound:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Name, evt.Payload)
			flusher.Flush()
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}
