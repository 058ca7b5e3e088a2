package game

import (
	"context"
	"errors"
	"fmt"

	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/grid"
)

// GameResult is the kind of outcome a position has.
type GameResult string

const (
	InProgress GameResult = ""
	Win        GameResult = "Win"
	Draw       GameResult = "Draw"
)

var (
	// ErrInvalidState is returned when the symbol counts cannot come from
	// strictly alternating moves.
	ErrInvalidState = errors.New("invalid game state")
	// ErrOccupied is returned when a move targets a cell that is not empty.
	ErrOccupied = errors.New("cell already occupied")
)

// Outcome describes how a game ended. Winner is set only for Win.
type Outcome struct {
	Result GameResult
	Winner grid.Symbol
}

func (o Outcome) String() string {
	switch o.Result {
	case Win:
		return fmt.Sprintf("%s wins", o.Winner)
	case Draw:
		return "Draw"
	}
	return "Game not finished"
}

// Session owns the grid of the game being played. It is reused across
// games; Reset clears the grid for the next one.
type Session struct {
	grid    *grid.Grid
	players grid.Pair
	bot     *bot.Bot
}

// NewSession creates a session with an empty grid. A nil bot gets a default
// one with the global random source.
func NewSession(side int, players grid.Pair, b *bot.Bot) (*Session, error) {
	g, err := grid.New(side)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = bot.New(players, nil)
	}
	return &Session{grid: g, players: players, bot: b}, nil
}

// Grid returns the session's grid. Callers must not keep it across Reset
// if they expect a fresh game.
func (s *Session) Grid() *grid.Grid { return s.grid }

// Players returns the two symbols in play.
func (s *Session) Players() grid.Pair { return s.players }

// Reset empties every cell.
func (s *Session) Reset() {
	s.grid.Clear()
}

// Load replaces every cell from the flat text form.
func (s *Session) Load(cells string) error {
	return s.grid.Replace(cells)
}

// SymbolToMove derives the side to move from the symbol counts: the first
// symbol moves when both counts are equal, the second when the first is
// exactly one ahead.
func (s *Session) SymbolToMove() (grid.Symbol, error) {
	first, second := s.players.First(), s.players.Second()
	nFirst, nSecond := s.grid.Count(first), s.grid.Count(second)

	switch nFirst - nSecond {
	case 0:
		return first, nil
	case 1:
		return second, nil
	}
	return grid.Empty, fmt.Errorf("%w: invalid number of %ss (%d) and %ss (%d) on the grid",
		ErrInvalidState, first, nFirst, second, nSecond)
}

// ValidateMove checks that (x, y) is on the grid and empty.
func (s *Session) ValidateMove(x, y int) error {
	current, err := s.grid.Get(x, y)
	if err != nil {
		return err
	}
	if current != grid.Empty {
		return fmt.Errorf("%w: (%d, %d) holds %s", ErrOccupied, x, y, current)
	}
	return nil
}

// ApplyMove places symbol at (x, y). Legality is the caller's job; see ValidateMove.
func (s *Session) ApplyMove(x, y int, symbol grid.Symbol) error {
	return s.grid.Set(x, y, symbol)
}

// IsTerminal reports whether the game is over. A completed line wins over a
// full board, and the first player's line is checked first.
func (s *Session) IsTerminal() (bool, Outcome) {
	for _, p := range s.players {
		if s.grid.HasLine(p) {
			return true, Outcome{Result: Win, Winner: p}
		}
	}
	if s.grid.Count(grid.Empty) == 0 {
		return true, Outcome{Result: Draw}
	}
	return false, Outcome{Result: InProgress}
}

// BotMove lets the bot play one move for symbol and returns the index played.
func (s *Session) BotMove(ctx context.Context, difficulty bot.Difficulty, symbol grid.Symbol) (int, error) {
	return s.bot.Move(ctx, s.grid, difficulty, symbol)
}
