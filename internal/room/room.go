package room

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/grid"
	"ctchen222/tictactoe-engine/internal/player"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "ctchen222/tictactoe-engine/internal/room"

// Room is one human playing one bot over a websocket. The room owns its
// session; nothing else touches it while the room is running.
type Room struct {
	ID         string
	Player     *player.Player
	session    *game.Session
	difficulty bot.Difficulty
	human      grid.Symbol
	botMark    grid.Symbol
	tracer     trace.Tracer
	mu         sync.Mutex
}

// NewRoom creates a room where p plays human against a bot of the given
// difficulty. human must be one of the session's players.
func NewRoom(id string, p *player.Player, session *game.Session, difficulty bot.Difficulty, human grid.Symbol) (*Room, error) {
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: %q", bot.ErrUnsupportedDifficulty, difficulty)
	}
	if err := difficulty.CheckSide(session.Grid().SideLength()); err != nil {
		return nil, err
	}
	players := session.Players()
	if !players.Contains(human) {
		return nil, fmt.Errorf("%w: %q is not one of %s and %s", grid.ErrConfiguration, human, players.First(), players.Second())
	}

	return &Room{
		ID:         id,
		Player:     p,
		session:    session,
		difficulty: difficulty,
		human:      human,
		botMark:    players.Other(human),
		tracer:     otel.Tracer(instrumentationName),
	}, nil
}

// Run sends the assignment and the opening position, then handles messages
// until the connection fails or ctx is done. The connection is closed on return.
func (r *Room) Run(ctx context.Context) {
	ctx, span := r.tracer.Start(ctx, "room.Run", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("player.id", r.Player.ID),
		attribute.String("bot.difficulty", string(r.difficulty)),
	))
	defer span.End()

	defer func() {
		if err := r.Player.Conn.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close player connection", "player.id", r.Player.ID, "error", err)
		}
		slog.InfoContext(ctx, "player left room", "room.id", r.ID, "player.id", r.Player.ID)
	}()

	slog.InfoContext(ctx, "room started", "room.id", r.ID, "player.id", r.Player.ID,
		"player.mark", r.human, "bot.difficulty", r.difficulty)

	r.mu.Lock()
	r.sendAssignment(ctx)
	r.startGame(ctx)
	r.mu.Unlock()

	if err := r.ReadPump(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Player connection error")
	}
}

// ReadPump feeds every message read from the player's connection to
// HandleMessage and returns the read error that ends it.
func (r *Room) ReadPump(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, msg, err := r.Player.Conn.ReadMessage()
		if err != nil {
			slog.WarnContext(ctx, "player connection error", "player.id", r.Player.ID, "room.id", r.ID, "error", err)
			return err
		}
		r.HandleMessage(ctx, msg)
	}
}

// startGame clears the board and lets the bot open when it plays first.
func (r *Room) startGame(ctx context.Context) {
	r.session.Reset()
	if r.botMark == r.session.Players().First() {
		r.botTurn(ctx)
	}
	r.sendUpdate(ctx)
}

// botTurn plays one bot move if the game is still on.
func (r *Room) botTurn(ctx context.Context) {
	if over, _ := r.session.IsTerminal(); over {
		return
	}
	if _, err := r.session.BotMove(ctx, r.difficulty, r.botMark); err != nil {
		slog.ErrorContext(ctx, "bot failed to move", "room.id", r.ID, "error", err)
		r.sendError(ctx, "Bot could not move")
	}
}
