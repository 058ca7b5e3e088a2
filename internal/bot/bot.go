package bot

import (
	"context"
	"fmt"
	"log/slog"

	"ctchen222/tictactoe-engine/internal/grid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "ctchen222/tictactoe-engine/internal/bot"

// Bot picks moves for one side of a game. It mutates the grid it is given
// with exactly one move and never checks whose turn it is.
type Bot struct {
	players grid.Pair
	rng     Rand

	tracer trace.Tracer
	moves  metric.Int64Counter
	nodes  metric.Int64Histogram
}

// New creates a bot for the given players. A nil rng uses the math/rand/v2
// top-level generator. Telemetry comes from the global providers at the
// time of the call.
func New(players grid.Pair, rng Rand) *Bot {
	if rng == nil {
		rng = globalRand{}
	}

	meter := otel.Meter(instrumentationName)

	moves, err := meter.Int64Counter("bot.moves",
		metric.WithDescription("Moves played by the bot, by difficulty"),
		metric.WithUnit("{move}"),
	)
	if err != nil {
		otel.Handle(err)
		moves = noop.Int64Counter{}
	}
	nodes, err := meter.Int64Histogram("search.nodes",
		metric.WithDescription("Positions visited by the minimax search for one hard move"),
		metric.WithUnit("{position}"),
	)
	if err != nil {
		otel.Handle(err)
		nodes = noop.Int64Histogram{}
	}

	return &Bot{
		players: players,
		rng:     rng,
		tracer:  otel.Tracer(instrumentationName),
		moves:   moves,
		nodes:   nodes,
	}
}

// Players returns the symbol pair the bot was built for.
func (b *Bot) Players() grid.Pair { return b.players }

// Easy plays a random empty cell and returns its index.
func (b *Bot) Easy(g *grid.Grid, own grid.Symbol) (int, error) {
	return easyMove(g, own, b.rng)
}

// Medium completes its own line, else blocks the opponent's, else plays Easy.
func (b *Bot) Medium(g *grid.Grid, own grid.Symbol) (int, error) {
	return mediumMove(g, own, b.players.Other(own), b.rng)
}

// Hard plays the lowest-index move with the best minimax score for own.
func (b *Bot) Hard(g *grid.Grid, own grid.Symbol) (int, error) {
	index, _, err := hardMove(g, own, b.players.Other(own))
	return index, err
}

// Move plays one move for own at the given difficulty and returns the index played.
func (b *Bot) Move(ctx context.Context, g *grid.Grid, difficulty Difficulty, own grid.Symbol) (int, error) {
	ctx, span := b.tracer.Start(ctx, "bot.Move", trace.WithAttributes(
		attribute.String("bot.difficulty", string(difficulty)),
		attribute.String("bot.symbol", string(own)),
		attribute.String("grid.cells", g.String()),
	))
	defer span.End()

	var (
		index int
		err   error
	)
	switch difficulty {
	case Easy:
		index, err = b.Easy(g, own)
	case Medium:
		index, err = b.Medium(g, own)
	case Hard:
		var nodes int
		index, nodes, err = hardMove(g, own, b.players.Other(own))
		b.nodes.Record(ctx, int64(nodes))
		span.SetAttributes(attribute.Int("search.nodes", nodes))
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedDifficulty, difficulty)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Bot could not move")
		return -1, err
	}

	b.moves.Add(ctx, 1, metric.WithAttributes(attribute.String("bot.difficulty", string(difficulty))))
	span.SetAttributes(attribute.Int("move.index", index))
	slog.DebugContext(ctx, "bot moved", "bot.difficulty", difficulty, "bot.symbol", own, "move.index", index)
	return index, nil
}
