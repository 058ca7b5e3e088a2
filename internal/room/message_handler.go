package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/grid"
	"ctchen222/tictactoe-engine/internal/validator"
	"ctchen222/tictactoe-engine/pkg/proto"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HandleMessage handles a message from the player. It acts as a dispatcher.
func (r *Room) HandleMessage(ctx context.Context, rawMessage []byte) {
	ctx, span := r.tracer.Start(ctx, "room.HandleMessage", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.WarnContext(ctx, "error unmarshalling message", "player.id", r.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		r.sendError(ctx, "Malformed message")
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from player", "player.id", r.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		r.sendError(ctx, "Invalid message")
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	switch message.Type {
	case proto.TypeMove:
		r.handleMove(ctx, &message)
	case proto.TypeRestart:
		r.handleRestart(ctx)
	}
}

// handleMove applies the player's move and answers with the bot's.
func (r *Room) handleMove(ctx context.Context, message *proto.ClientToServerMessage) {
	ctx, span := r.tracer.Start(ctx, "room.handleMove", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	reject := func(reason string, err error) {
		slog.WarnContext(ctx, "rejected move", "room.id", r.ID, "reason", reason, "error", err)
		span.SetAttributes(attribute.Bool("move.valid", false))
		if err != nil {
			span.RecordError(err)
		}
		span.SetStatus(codes.Error, reason)
		r.sendError(ctx, reason)
	}

	if len(message.Position) != 2 {
		reject("Position needs two coordinates", nil)
		return
	}
	x, y := message.Position[0], message.Position[1]
	span.SetAttributes(attribute.Int("move.x", x), attribute.Int("move.y", y))

	if over, _ := r.session.IsTerminal(); over {
		reject("Game is over", nil)
		return
	}
	toMove, err := r.session.SymbolToMove()
	if err != nil {
		reject("Invalid game state", err)
		return
	}
	if toMove != r.human {
		reject("Not your turn", nil)
		return
	}

	if err := r.session.ValidateMove(x, y); err != nil {
		switch {
		case errors.Is(err, grid.ErrOutOfRange):
			reject(fmt.Sprintf("Coordinates should be from 1 to %d!", r.session.Grid().SideLength()), err)
		case errors.Is(err, game.ErrOccupied):
			reject("This cell is occupied! Choose another one!", err)
		default:
			reject("Invalid move", err)
		}
		return
	}
	if err := r.session.ApplyMove(x, y, r.human); err != nil {
		reject("Invalid move", err)
		return
	}
	span.SetAttributes(attribute.Bool("move.valid", true))

	r.botTurn(ctx)
	r.sendUpdate(ctx)
}

// handleRestart starts a new game with the same marks and difficulty.
func (r *Room) handleRestart(ctx context.Context) {
	ctx, span := r.tracer.Start(ctx, "room.handleRestart", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	slog.InfoContext(ctx, "player restarted the game", "room.id", r.ID, "player.id", r.Player.ID)
	r.startGame(ctx)
}
