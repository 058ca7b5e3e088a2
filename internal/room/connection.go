package room

import (
	"context"
	"encoding/json"
	"log/slog"

	"ctchen222/tictactoe-engine/pkg/proto"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"
)

// send writes message to the player as a JSON text frame.
func (r *Room) send(ctx context.Context, message any) {
	span := trace.SpanFromContext(ctx)

	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "error", err)
		span.RecordError(err)
		return
	}
	if err := r.Player.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.ErrorContext(ctx, "error writing message to player", "player.id", r.Player.ID, "error", err)
		span.RecordError(err)
	}
}

func (r *Room) sendError(ctx context.Context, reason string) {
	r.send(ctx, &proto.ServerToClientMessage{Type: proto.TypeError, Reason: reason})
}

func (r *Room) sendAssignment(ctx context.Context) {
	r.send(ctx, &proto.PlayerAssignmentMessage{
		Type:       proto.TypeAssignment,
		RoomID:     r.ID,
		Mark:       string(r.human),
		BotMark:    string(r.botMark),
		Difficulty: string(r.difficulty),
	})
}

func (r *Room) sendUpdate(ctx context.Context) {
	r.send(ctx, r.state())
}
