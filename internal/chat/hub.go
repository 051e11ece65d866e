// Package chat provides the WebSocket transport for the conversational
// assistant.
package chat

import (
	"context"
	"log/slog"
	"sync"
)

// Sender is the outbound half of one chat connection.
type Sender interface {
	Send(ctx context.Context, data []byte) error
}

// Hub tracks which connections subscribe to which room. Every connection has
// its own private room by default; shared rooms are opt-in, so delivery is
// one-to-one unless a client explicitly joins a named room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[Sender]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[Sender]struct{})}
}

// Join subscribes a connection to a room.
func (h *Hub) Join(room string, s Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[Sender]struct{})
	}
	h.rooms[room][s] = struct{}{}
	slog.Debug("chat subscriber joined", "room", room, "subscribers", len(h.rooms[room]))
}

// Leave removes a connection from a room. Empty rooms are discarded.
func (h *Hub) Leave(room string, s Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, s)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
	slog.Debug("chat subscriber left", "room", room)
}

// Subscribers returns the number of connections in a room.
func (h *Hub) Subscribers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Broadcast delivers data to every subscriber of a room. Delivery is
// best-effort: a failed send is logged and does not stop the fan-out.
func (h *Hub) Broadcast(ctx context.Context, room string, data []byte) {
	h.mu.RLock()
	members := make([]Sender, 0, len(h.rooms[room]))
	for s := range h.rooms[room] {
		members = append(members, s)
	}
	h.mu.RUnlock()

	for _, s := range members {
		if err := s.Send(ctx, data); err != nil {
			slog.Debug("chat broadcast send failed", "room", room, "error", err)
		}
	}
}
