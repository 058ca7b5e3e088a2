package hub

import (
	"context"
	"log/slog"
	"sync"

	"ctchen222/tictactoe-engine/internal/room"
)

// Hub keeps track of the rooms that are currently running.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*room.Room
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]*room.Room),
	}
}

// Register adds r to the hub.
func (h *Hub) Register(r *room.Room) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rooms[r.ID] = r
}

// Unregister removes r. Unknown rooms are ignored.
func (h *Hub) Unregister(r *room.Room) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, r.ID)
}

// Rooms returns the number of running rooms.
func (h *Hub) Rooms() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// Run registers r, runs it until the player leaves and unregisters it.
func (h *Hub) Run(ctx context.Context, r *room.Room) {
	h.Register(r)
	defer h.Unregister(r)
	r.Run(ctx)
}

// CloseAll closes every player connection, which ends each room's read
// loop. Rooms unregister themselves as they stop.
func (h *Hub) CloseAll(ctx context.Context) {
	h.mu.Lock()
	rooms := make([]*room.Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.Unlock()

	for _, r := range rooms {
		if err := r.Player.Conn.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close room connection", "room.id", r.ID, "error", err)
		}
	}
	slog.InfoContext(ctx, "closed all rooms", "rooms", len(rooms))
}
