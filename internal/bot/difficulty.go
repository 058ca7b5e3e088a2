package bot

import (
	"errors"
	"fmt"
)

// Difficulty selects the move heuristic a bot uses.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var (
	// ErrUnsupportedDifficulty is returned for labels other than easy, medium and hard.
	ErrUnsupportedDifficulty = errors.New("unsupported difficulty")
	// ErrIllegalState is returned when a move is requested on a board without empty cells.
	ErrIllegalState = errors.New("no empty cells left to move to")
	// ErrInvariantViolation means the hard search found no candidate on a board
	// that still has empty cells. It indicates a bug, not bad input.
	ErrInvariantViolation = errors.New("invalid minimax result")
)

// MaxHardSide is the largest side length on which the hard search finishes
// in reasonable time.
const MaxHardSide = 3

// Difficulties lists every supported difficulty.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty converts a label into a Difficulty.
func ParseDifficulty(label string) (Difficulty, error) {
	d := Difficulty(label)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDifficulty, label)
	}
	return d, nil
}

// Valid reports whether d is one of the supported difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

func (d Difficulty) String() string { return string(d) }

// CheckSide returns ErrUnsupportedDifficulty when d cannot play on a
// side x side grid. Only Hard is limited, to MaxHardSide.
func (d Difficulty) CheckSide(side int) error {
	if d == Hard && side > MaxHardSide {
		return fmt.Errorf("%w: %s needs a side length of at most %d, got %d", ErrUnsupportedDifficulty, d, MaxHardSide, side)
	}
	return nil
}
