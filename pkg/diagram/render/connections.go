package render

import (
	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/grid"
)

type direction uint8

const (
	left direction = 1 << iota
	right
	up
	down
)

var elbowGlyphs = map[direction]rune{
	right | down:             '┌',
	left | down:              '┐',
	right | up:               '└',
	left | up:                '┘',
	left | right:             '─',
	up | down:                '│',
	left | right | down:      '┬',
	left | right | up:        '┴',
	up | down | right:        '├',
	up | down | left:         '┤',
	left | right | up | down: '┼',
}

// drawConnection draws every segment of c with line glyphs and then puts
// an elbow or junction glyph on each cell where segment ends meet. A meeting
// with only one direction keeps its line glyph.
func drawConnection(g *grid.Grid, c diagram.ConnectionLine) {
	joins := junctions(c)

	for _, s := range c.Segments {
		glyph := '─'
		if s.Kind == diagram.VerticalSegment {
			glyph = '│'
		}
		for _, p := range s.Cells() {
			g.Set(p.Row, p.Col, glyph)
		}
	}

	for p, dirs := range joins {
		if r, ok := elbowGlyphs[dirs]; ok {
			g.Set(p.Row, p.Col, r)
		}
	}
}

// junctions maps every cell shared by the ends of two or more segments to
// the directions in which those segments leave it.
func junctions(c diagram.ConnectionLine) map[diagram.Point]direction {
	ends := make(map[diagram.Point]int)
	for _, s := range c.Segments {
		a, b := s.Endpoints()
		ends[a]++
		if b != a {
			ends[b]++
		}
	}

	joins := make(map[diagram.Point]direction)
	for _, s := range c.Segments {
		a, b := s.Endpoints()
		for _, pair := range [2][2]diagram.Point{{a, b}, {b, a}} {
			p, other := pair[0], pair[1]
			if ends[p] < 2 || p == other {
				continue
			}
			joins[p] |= towards(p, other)
		}
	}
	return joins
}

func towards(from, to diagram.Point) direction {
	switch {
	case to.Col > from.Col:
		return right
	case to.Col < from.Col:
		return left
	case to.Row > from.Row:
		return down
	default:
		return up
	}
}
