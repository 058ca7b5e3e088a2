package grid

import (
	"fmt"
	"slices"
)

// Grid is a square board stored as a flat slice, top row first.
//
// Coordinates are 1-based with x as the column and y as the row, where row 1
// is the bottom row. Use IndexOf to translate them into storage indices.
type Grid struct {
	side  int
	cells []Symbol
}

// New returns an all-Empty grid with the given side length.
func New(side int) (*Grid, error) {
	if side < 1 {
		return nil, fmt.Errorf("%w: side length must be positive, got %d", ErrConfiguration, side)
	}
	return &Grid{side: side, cells: make([]Symbol, side*side)}, nil
}

// Parse builds a grid from its flat text form. Every rune is one cell and
// EmptyMarker (or a blank) denotes an Empty cell.
func Parse(cells string, side int) (*Grid, error) {
	g, err := New(side)
	if err != nil {
		return nil, err
	}
	if err := g.Replace(cells); err != nil {
		return nil, err
	}
	return g, nil
}

// FromCells builds a grid that owns a copy of cells.
func FromCells(cells []Symbol, side int) (*Grid, error) {
	g, err := New(side)
	if err != nil {
		return nil, err
	}
	if err := checkLength(len(cells), side); err != nil {
		return nil, err
	}
	copy(g.cells, cells)
	return g, nil
}

// Replace overwrites every cell from the flat text form, re-validating the length.
func (g *Grid) Replace(cells string) error {
	decoded := decode(cells)
	if err := checkLength(len(decoded), g.side); err != nil {
		return err
	}
	g.cells = decoded
	return nil
}

// Clear sets every cell to Empty.
func (g *Grid) Clear() {
	clear(g.cells)
}

func checkLength(n, side int) error {
	if n%side != 0 {
		return fmt.Errorf("%w: the number of cells (%d) must be exactly divisible by side length %d", ErrConfiguration, n, side)
	}
	if n != side*side {
		return fmt.Errorf("%w: expected %d cells for side length %d, got %d", ErrConfiguration, side*side, side, n)
	}
	return nil
}

// SideLength returns the number of cells along one edge.
func (g *Grid) SideLength() int { return g.side }

// Len returns the total number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// IndexOf maps 1-based (x, y) coordinates, origin bottom-left, to a storage index.
func (g *Grid) IndexOf(x, y int) (int, error) {
	if x < 1 || x > g.side || y < 1 || y > g.side {
		return -1, fmt.Errorf("%w: cell coordinates must be from 1 to %d, got (%d, %d)", ErrOutOfRange, g.side, x, y)
	}
	return (g.side-y)*g.side + (x - 1), nil
}

// Coordinates is the inverse of IndexOf for a valid index.
func (g *Grid) Coordinates(index int) (x, y int) {
	return index%g.side + 1, g.side - index/g.side
}

// Get returns the symbol at (x, y).
func (g *Grid) Get(x, y int) (Symbol, error) {
	i, err := g.IndexOf(x, y)
	if err != nil {
		return Empty, err
	}
	return g.cells[i], nil
}

// Set places s at (x, y).
func (g *Grid) Set(x, y int, s Symbol) error {
	i, err := g.IndexOf(x, y)
	if err != nil {
		return err
	}
	g.cells[i] = s
	return nil
}

// SetByIndex places s at a storage index. The index is not bounds checked
// beyond what the slice itself enforces.
func (g *Grid) SetByIndex(index int, s Symbol) {
	g.cells[index] = s
}

// At returns the symbol at a storage index.
func (g *Grid) At(index int) Symbol {
	return g.cells[index]
}

// Count returns how many cells hold s.
func (g *Grid) Count(s Symbol) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// IndicesWith returns every storage index holding s, in storage order.
func (g *Grid) IndicesWith(s Symbol) []int {
	var indices []int
	for i, c := range g.cells {
		if c == s {
			indices = append(indices, i)
		}
	}
	return indices
}

// Cells returns a copy of the flat cell storage.
func (g *Grid) Cells() []Symbol {
	return slices.Clone(g.cells)
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{side: g.side, cells: slices.Clone(g.cells)}
}

// WithMove returns a copy of g with s placed at index. g is left untouched.
func (g *Grid) WithMove(index int, s Symbol) *Grid {
	next := g.Clone()
	next.cells[index] = s
	return next
}
