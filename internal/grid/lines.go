package grid

import "slices"

// Line extraction is recomputed on every call. Boards are tiny, so there is
// nothing worth caching.

// Rows returns the rows in storage order, top row first.
func (g *Grid) Rows() [][]Symbol {
	rows := make([][]Symbol, g.side)
	for r := range g.side {
		rows[r] = slices.Clone(g.cells[r*g.side : (r+1)*g.side])
	}
	return rows
}

// Columns returns the columns, left to right.
func (g *Grid) Columns() [][]Symbol {
	columns := make([][]Symbol, g.side)
	for c := range g.side {
		column := make([]Symbol, g.side)
		for r := range g.side {
			column[r] = g.cells[c+r*g.side]
		}
		columns[c] = column
	}
	return columns
}

// Diagonals returns the main diagonal (top-left to bottom-right) followed by
// the anti diagonal (top-right to bottom-left).
func (g *Grid) Diagonals() [][]Symbol {
	main := make([]Symbol, g.side)
	anti := make([]Symbol, g.side)
	for i := range g.side {
		main[i] = g.cells[g.mainDiagonalIndex(i)]
		anti[i] = g.cells[g.antiDiagonalIndex(i)]
	}
	return [][]Symbol{main, anti}
}

func (g *Grid) mainDiagonalIndex(i int) int { return i*g.side + i }

func (g *Grid) antiDiagonalIndex(i int) int { return i*g.side + g.side - (i + 1) }

// HasLine reports whether any row, column or diagonal is made up entirely of s.
func (g *Grid) HasLine(s Symbol) bool {
	for _, lines := range [][][]Symbol{g.Rows(), g.Columns(), g.Diagonals()} {
		for _, line := range lines {
			if countIn(line, s) == g.side {
				return true
			}
		}
	}
	return false
}

// WinningCompletionIndices returns the Empty cells that would complete a line
// for s. See CompletionIndices.
func (g *Grid) WinningCompletionIndices(s Symbol) []int {
	return g.CompletionIndices(s, Empty)
}

// CompletionIndices returns, for every line holding side-1 copies of s and
// exactly one empty cell, the storage index of that empty cell. Rows come
// first, then columns, then the main and anti diagonal. A cell completing
// more than one line is listed once per line.
func (g *Grid) CompletionIndices(s, empty Symbol) []int {
	var indices []int
	for r, row := range g.Rows() {
		if i, ok := g.completion(row, s, empty); ok {
			indices = append(indices, r*g.side+i)
		}
	}
	for c, column := range g.Columns() {
		if i, ok := g.completion(column, s, empty); ok {
			indices = append(indices, i*g.side+c)
		}
	}
	diagonals := g.Diagonals()
	if i, ok := g.completion(diagonals[0], s, empty); ok {
		indices = append(indices, g.mainDiagonalIndex(i))
	}
	if i, ok := g.completion(diagonals[1], s, empty); ok {
		indices = append(indices, g.antiDiagonalIndex(i))
	}
	return indices
}

// completion returns the position within line of its single empty cell when
// every other cell holds s.
func (g *Grid) completion(line []Symbol, s, empty Symbol) (int, bool) {
	if countIn(line, s) != g.side-1 {
		return -1, false
	}
	for i, c := range line {
		if c == empty {
			return i, true
		}
	}
	return -1, false
}

func countIn(line []Symbol, s Symbol) int {
	n := 0
	for _, c := range line {
		if c == s {
			n++
		}
	}
	return n
}
