// Package search scores tic-tac-toe positions with an exhaustive minimax.
//
// The search visits every reachable terminal position with no pruning and no
// transposition table. That is fine for a 3x3 board (under 550k nodes from
// the empty position) but grows factorially with the number of empty cells,
// so it is not usable on larger boards.
package search

import "ctchen222/tictactoe-engine/internal/grid"

// Score values returned by Minimax.
const (
	MaximizerWins = 1
	Draw          = 0
	MinimizerWins = -1
)

// Minimax scores g with toMove about to play. players[0] is the maximizer and
// players[1] the minimizer, whichever of them is on move. The grid is never
// modified.
func Minimax(g *grid.Grid, toMove grid.Symbol, players grid.Pair) int {
	score, _ := Evaluate(g, toMove, players)
	return score
}

// Evaluate is Minimax that also reports how many positions were visited.
func Evaluate(g *grid.Grid, toMove grid.Symbol, players grid.Pair) (score, nodes int) {
	score = minimax(g, toMove, players, &nodes)
	return score, nodes
}

func minimax(g *grid.Grid, toMove grid.Symbol, players grid.Pair, nodes *int) int {
	*nodes++

	if score, done := terminalScore(g, players); done {
		return score
	}

	next := players.Other(toMove)
	maximizing := toMove == players.First()

	best := MaximizerWins + 1
	if maximizing {
		best = MinimizerWins - 1
	}
	for _, i := range g.IndicesWith(grid.Empty) {
		score := minimax(g.WithMove(i, toMove), next, players, nodes)
		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}
	return best
}

// terminalScore checks the maximizer's line first, then the minimizer's,
// then a full board.
func terminalScore(g *grid.Grid, players grid.Pair) (int, bool) {
	switch {
	case g.HasLine(players.First()):
		return MaximizerWins, true
	case g.HasLine(players.Second()):
		return MinimizerWins, true
	case g.Count(grid.Empty) == 0:
		return Draw, true
	}
	return 0, false
}
