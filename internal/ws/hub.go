package ws

import (
	"encoding/json"
	"sync"
	"time"

	"taskboard/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	connectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_connected_clients",
		Help: "Websocket clients currently subscribed to board events",
	})
	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ws_events_published_total",
			Help: "Board events fanned out to websocket clients",
		},
		[]string{"type"},
	)
	clientsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_clients_dropped_total",
		Help: "Clients disconnected because their send buffer was full",
	})
)

func init() {
	prometheus.MustRegister(connectedClients)
	prometheus.MustRegister(eventsPublished)
	prometheus.MustRegister(clientsDropped)
}

// Hub fans events out to every registered client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Register adds c. It returns false once the hub is closed.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	connectedClients.Inc()
	return true
}

// Unregister removes c and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(c)
}

// callers hold h.mu
func (h *Hub) remove(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.Send)
	connectedClients.Dec()
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish implements service.Notifier.
func (h *Hub) Publish(eventType, taskID string) {
	msg, err := json.Marshal(Event{Type: eventType, TaskID: taskID, At: time.Now().UTC()})
	if err != nil {
		logger.Error("ws: marshal event", "error", err, "type", eventType)
		return
	}
	eventsPublished.WithLabelValues(eventType).Inc()
	h.Broadcast(msg)
}

// Broadcast queues msg for every client without blocking. Clients whose
// buffer is full are disconnected.
func (h *Hub) Broadcast(msg []byte) {
	var slow []*Client

	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return
	}
	h.mu.Lock()
	for _, c := range slow {
		logger.Warn("ws: dropping slow client", "person_id", c.PersonID)
		clientsDropped.Inc()
		h.remove(c)
	}
	h.mu.Unlock()
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.remove(c)
	}
}
