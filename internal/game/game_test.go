package game

import (
	"context"
	"errors"
	"testing"

	"ctchen222/tictactoe-engine/internal/bot"
	"ctchen222/tictactoe-engine/internal/grid"
)

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func newSession(t *testing.T, cells string) *Session {
	t.Helper()
	s, err := NewSession(3, grid.DefaultPair, bot.New(grid.DefaultPair, firstRand{}))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if cells != "" {
		if err := s.Load(cells); err != nil {
			t.Fatalf("Load(%q) failed: %v", cells, err)
		}
	}
	return s
}

func TestNewSessionRejectsBadSide(t *testing.T) {
	if _, err := NewSession(0, grid.DefaultPair, nil); !errors.Is(err, grid.ErrConfiguration) {
		t.Errorf("NewSession(0) error = %v, want grid.ErrConfiguration", err)
	}
}

func TestSymbolToMove(t *testing.T) {
	tests := []struct {
		name    string
		cells   string
		want    grid.Symbol
		wantErr error
	}{
		{name: "Empty board - X starts", cells: "_________", want: grid.SymbolX},
		{name: "X ahead by one - O to move", cells: "X________", want: grid.SymbolO},
		{name: "Equal counts - X to move", cells: "XO_______", want: grid.SymbolX},
		{name: "O ahead", cells: "O________", wantErr: ErrInvalidState},
		{name: "X ahead by two", cells: "XX_______", wantErr: ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newSession(t, tt.cells).SymbolToMove()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("SymbolToMove() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SymbolToMove() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SymbolToMove() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSymbolToMoveCustomPair(t *testing.T) {
	players, err := grid.NewPair("A", "B")
	if err != nil {
		t.Fatalf("NewPair failed: %v", err)
	}
	s, err := NewSession(3, players, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	_ = s.Load("A________")
	if got, _ := s.SymbolToMove(); got != "B" {
		t.Errorf("SymbolToMove() = %q, want %q", got, "B")
	}
}

func TestValidateMove(t *testing.T) {
	s := newSession(t, "X________")

	tests := []struct {
		name    string
		x, y    int
		wantErr error
	}{
		{name: "Empty cell", x: 2, y: 2},
		{name: "Occupied top-left", x: 1, y: 3, wantErr: ErrOccupied},
		{name: "Column out of range", x: 4, y: 1, wantErr: grid.ErrOutOfRange},
		{name: "Row out of range", x: 1, y: 0, wantErr: grid.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidateMove(tt.x, tt.y)
			if tt.wantErr == nil && err != nil {
				t.Errorf("ValidateMove(%d, %d) unexpected error: %v", tt.x, tt.y, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMove(%d, %d) error = %v, want %v", tt.x, tt.y, err, tt.wantErr)
			}
		})
	}
}

func TestApplyMoveUsesBottomLeftOrigin(t *testing.T) {
	s := newSession(t, "")
	if err := s.ApplyMove(1, 1, grid.SymbolX); err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}
	if err := s.ApplyMove(3, 3, grid.SymbolO); err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}
	if got := s.Grid().String(); got != "__O___X__" {
		t.Errorf("grid = %q, want %q", got, "__O___X__")
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name     string
		cells    string
		wantDone bool
		want     Outcome
	}{
		{name: "Empty board", cells: "_________", wantDone: false, want: Outcome{Result: InProgress}},
		{name: "X wins - first row", cells: "XXXOO____", wantDone: true, want: Outcome{Result: Win, Winner: grid.SymbolX}},
		{name: "O wins - second column", cells: "XOXXO__O_", wantDone: true, want: Outcome{Result: Win, Winner: grid.SymbolO}},
		{name: "Win on a full board beats draw", cells: "XXXOOXOXO", wantDone: true, want: Outcome{Result: Win, Winner: grid.SymbolX}},
		{name: "Full board draw", cells: "XOXXOOOXX", wantDone: true, want: Outcome{Result: Draw}},
		{name: "Partial board", cells: "X___O____", wantDone: false, want: Outcome{Result: InProgress}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done, got := newSession(t, tt.cells).IsTerminal()
			if done != tt.wantDone || got != tt.want {
				t.Errorf("IsTerminal() = (%v, %+v), want (%v, %+v)", done, got, tt.wantDone, tt.want)
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Outcome{Result: Win, Winner: grid.SymbolO}, "O wins"},
		{Outcome{Result: Draw}, "Draw"},
		{Outcome{}, "Game not finished"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}

func TestResetReusesGrid(t *testing.T) {
	s := newSession(t, "XOXXOOOXX")
	g := s.Grid()
	s.Reset()

	if s.Grid() != g {
		t.Errorf("Reset replaced the grid instead of clearing it")
	}
	if got := s.Grid().Count(grid.Empty); got != 9 {
		t.Errorf("Reset left %d empty cells, want 9", got)
	}
}

func TestBotMove(t *testing.T) {
	tests := []struct {
		name       string
		cells      string
		difficulty bot.Difficulty
		wantCells  string
		wantErr    error
	}{
		{name: "Easy takes the first empty cell", cells: "X________", difficulty: bot.Easy, wantCells: "XO_______"},
		{name: "Medium blocks", cells: "XX__O____", difficulty: bot.Medium, wantCells: "XXO_O____"},
		{name: "Hard takes the center", cells: "X________", difficulty: bot.Hard, wantCells: "X___O____"},
		{name: "Unsupported difficulty", cells: "X________", difficulty: "expert", wantErr: bot.ErrUnsupportedDifficulty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, tt.cells)
			_, err := s.BotMove(context.Background(), tt.difficulty, grid.SymbolO)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("BotMove() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BotMove() unexpected error: %v", err)
			}
			if got := s.Grid().String(); got != tt.wantCells {
				t.Errorf("grid after BotMove = %q, want %q", got, tt.wantCells)
			}
		})
	}
}
