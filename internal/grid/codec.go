package grid

import "strings"

func decode(cells string) []Symbol {
	runes := []rune(cells)
	decoded := make([]Symbol, len(runes))
	for i, r := range runes {
		if r == EmptyMarker || r == ' ' {
			decoded[i] = Empty
			continue
		}
		decoded[i] = Symbol(string(r))
	}
	return decoded
}

// String encodes the grid in the flat text form accepted by Parse.
func (g *Grid) String() string {
	var b strings.Builder
	for _, c := range g.cells {
		if c == Empty {
			b.WriteRune(EmptyMarker)
			continue
		}
		b.WriteString(string(c))
	}
	return b.String()
}

// Render draws the grid as a bordered diagram:
//
//	---------
//	| X O X |
//	|   X   |
//	| O     |
//	---------
func (g *Grid) Render() string {
	border := strings.Repeat("-", 2*g.side+3)

	var b strings.Builder
	b.WriteString(border)
	b.WriteByte('\n')
	for _, row := range g.Rows() {
		b.WriteByte('|')
		for _, c := range row {
			b.WriteByte(' ')
			if c == Empty {
				b.WriteByte(' ')
			} else {
				b.WriteString(string(c))
			}
		}
		b.WriteString(" |\n")
	}
	b.WriteString(border)
	return b.String()
}

// RowStrings returns Rows as plain strings for wire messages, Empty as "".
func (g *Grid) RowStrings() [][]string {
	rows := g.Rows()
	out := make([][]string, len(rows))
	for r, row := range rows {
		out[r] = make([]string, len(row))
		for c, s := range row {
			out[r][c] = string(s)
		}
	}
	return out
}
