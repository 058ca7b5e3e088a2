package grid

import "fmt"

// Symbol is the content of a single cell: a player's mark or Empty.
type Symbol string

const (
	Empty Symbol = ""

	// Conventional player marks.
	SymbolX Symbol = "X"
	SymbolO Symbol = "O"

	// EmptyMarker stands for an Empty cell in the flat text form of a grid.
	EmptyMarker = '_'
)

// Pair holds the two player symbols. Pair[0] moves first and is the
// maximizing side in search; Pair[1] moves second and minimizes.
type Pair [2]Symbol

// DefaultPair is X moving first against O.
var DefaultPair = Pair{SymbolX, SymbolO}

// NewPair validates that a and b are distinct single-character symbols
// that do not collide with EmptyMarker.
func NewPair(a, b string) (Pair, error) {
	for _, s := range []string{a, b} {
		if len([]rune(s)) != 1 || s == string(EmptyMarker) || s == " " {
			return Pair{}, fmt.Errorf("%w: invalid player symbol %q", ErrConfiguration, s)
		}
	}
	if a == b {
		return Pair{}, fmt.Errorf("%w: player symbols must differ, both are %q", ErrConfiguration, a)
	}
	return Pair{Symbol(a), Symbol(b)}, nil
}

// First returns the symbol that moves first.
func (p Pair) First() Symbol { return p[0] }

// Second returns the symbol that moves second.
func (p Pair) Second() Symbol { return p[1] }

// Other returns the opponent of s. Any symbol that is not p[0] maps to p[0].
func (p Pair) Other(s Symbol) Symbol {
	if s == p[0] {
		return p[1]
	}
	return p[0]
}

// Contains reports whether s is one of the two player symbols.
func (p Pair) Contains(s Symbol) bool {
	return s == p[0] || s == p[1]
}

// Swap returns the pair with the roles exchanged.
func (p Pair) Swap() Pair {
	return Pair{p[1], p[0]}
}
