package bot

import (
	"fmt"
	"math/rand/v2"

	"ctchen222/tictactoe-engine/internal/grid"
	"ctchen222/tictactoe-engine/internal/search"
)

// Rand is the source of randomness for easy moves. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// globalRand draws from the math/rand/v2 top-level generator.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// easyMove plays a uniformly random empty cell.
func easyMove(g *grid.Grid, own grid.Symbol, rng Rand) (int, error) {
	available := g.IndicesWith(grid.Empty)
	if len(available) == 0 {
		return -1, ErrIllegalState
	}

	index := available[rng.IntN(len(available))]
	g.SetByIndex(index, own)
	return index, nil
}

// mediumMove will win if it can, block if it must, otherwise move randomly.
func mediumMove(g *grid.Grid, own, opponent grid.Symbol, rng Rand) (int, error) {
	// 1. Win
	if wins := g.WinningCompletionIndices(own); len(wins) > 0 {
		g.SetByIndex(wins[0], own)
		return wins[0], nil
	}

	// 2. Block
	if blocks := g.WinningCompletionIndices(opponent); len(blocks) > 0 {
		g.SetByIndex(blocks[0], own)
		return blocks[0], nil
	}

	// 3. Random
	return easyMove(g, own, rng)
}

// hardMove plays the first empty cell with the best minimax score. own is
// always passed as the maximizer, so the best score is the highest one.
func hardMove(g *grid.Grid, own, opponent grid.Symbol) (index, nodes int, err error) {
	available := g.IndicesWith(grid.Empty)
	if len(available) == 0 {
		return -1, 0, ErrIllegalState
	}

	players := grid.Pair{own, opponent}
	bestIndex := -1
	bestScore := search.MinimizerWins - 1
	for _, i := range available {
		score, visited := search.Evaluate(g.WithMove(i, own), opponent, players)
		nodes += visited
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex == -1 {
		return -1, nodes, fmt.Errorf("%w: %d empty cells but no candidate move", ErrInvariantViolation, len(available))
	}
	g.SetByIndex(bestIndex, own)
	return bestIndex, nodes, nil
}
