// Package ws implements the realtime notifier: one broadcast channel per
// project, membership managed by connected clients, task mutation events
// relayed to every member except the sender. The hub performs no
// authorization and no persistence; delivery is best-effort with no replay.
package ws

import (
	"sync"

	"taskhub_backend/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	eventsRelayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ws_events_relayed_total",
			Help: "Task events relayed to project channel members",
		},
		[]string{"type"},
	)
	eventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ws_events_dropped_total",
			Help: "Events dropped because a member's send buffer was full",
		},
	)
)

func init() {
	prometheus.MustRegister(eventsRelayed)
	prometheus.MustRegister(eventsDropped)
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[int64]map[*Client]struct{})}
}

// Join adds the client to a project's channel. A client may be in any number
// of channels at once.
func (h *Hub) Join(projectID int64, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[projectID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[projectID] = room
	}
	room[c] = struct{}{}

	logger.Debug("channel joined", "project", projectID, "user", c.UserID, "members", len(room))
}

func (h *Hub) Leave(projectID int64, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leave(projectID, c)
}

// LeaveAll drops the client from every channel it joined. Called on
// disconnect.
func (h *Hub) LeaveAll(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for projectID, room := range h.rooms {
		if _, ok := room[c]; ok {
			h.leave(projectID, c)
		}
	}
}

// leave assumes h.mu is held.
func (h *Hub) leave(projectID int64, c *Client) {
	room, ok := h.rooms[projectID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, projectID)
	}
}

// Members reports how many clients are currently in a project's channel.
func (h *Hub) Members(projectID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[projectID])
}

// Broadcast delivers data to every member of the project's channel except
// the sender. Sends never block: a member whose buffer is full misses the
// event and must resynchronize with a full fetch.
func (h *Hub) Broadcast(projectID int64, sender *Client, eventType string, data []byte) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[projectID]))
	for c := range h.rooms[projectID] {
		if c != sender {
			members = append(members, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range members {
		select {
		case c.Send <- data:
			eventsRelayed.WithLabelValues(eventType).Inc()
		default:
			eventsDropped.Inc()
			logger.Warn("event dropped, member send buffer full", "project", projectID, "user", c.UserID)
		}
	}
}
