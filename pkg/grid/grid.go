// Package grid provides the two-dimensional character buffer that diagram
// detection and rendering operate on.
//
// A [Grid] is a sequence of rows of runes. Rows may have different lengths:
// a grid built with [FromLines] keeps every line exactly as given, so
// rendering it back with [Grid.Render] reproduces the input byte for byte,
// trailing whitespace included.
//
// Cells outside a row are absent. [Grid.Get] reports them with ok == false,
// which lets detection tell a missing cell from a literal space. Writes
// outside the grid are ignored; nothing in this package returns an error or
// panics on out-of-range coordinates.
package grid

import (
	"strings"
	"unicode"
)

// Grid is a mutable two-dimensional rune buffer. The zero value is an empty
// grid.
type Grid struct {
	rows [][]rune
}

// New returns a height x width grid filled with spaces.
func New(height, width int) *Grid {
	height = max(height, 0)
	width = max(width, 0)
	rows := make([][]rune, height)
	for i := range rows {
		rows[i] = blankRow(width)
	}
	return &Grid{rows: rows}
}

// FromLines builds a grid with one row per line. Rows are not padded.
func FromLines(lines []string) *Grid {
	rows := make([][]rune, len(lines))
	for i, line := range lines {
		rows[i] = []rune(line)
	}
	return &Grid{rows: rows}
}

// FromString splits s on newlines and calls [FromLines].
func FromString(s string) *Grid {
	return FromLines(strings.Split(s, "\n"))
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return len(g.rows)
}

// Width returns the length of the longest row.
func (g *Grid) Width() int {
	w := 0
	for _, row := range g.rows {
		w = max(w, len(row))
	}
	return w
}

// RowLen returns the length of row, or 0 if row is out of range.
func (g *Grid) RowLen(row int) int {
	if row < 0 || row >= len(g.rows) {
		return 0
	}
	return len(g.rows[row])
}

// Get returns the rune at (row, col). ok is false when the cell is absent.
func (g *Grid) Get(row, col int) (r rune, ok bool) {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.rows[row]) {
		return 0, false
	}
	return g.rows[row][col], true
}

// At returns the rune at (row, col), treating absent cells as spaces.
func (g *Grid) At(row, col int) rune {
	if r, ok := g.Get(row, col); ok {
		return r
	}
	return ' '
}

// Set writes r at (row, col) and reports whether the cell existed.
// Writes to absent cells are dropped.
func (g *Grid) Set(row, col int, r rune) bool {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.rows[row]) {
		return false
	}
	g.rows[row][col] = r
	return true
}

// Grow extends the grid so that it has at least height rows and every row
// has at least width cells. New cells are spaces. Grow never shrinks.
func (g *Grid) Grow(height, width int) {
	for len(g.rows) < height {
		g.rows = append(g.rows, nil)
	}
	for i, row := range g.rows {
		if len(row) < width {
			g.rows[i] = append(row, blankRow(width-len(row))...)
		}
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	rows := make([][]rune, len(g.rows))
	for i, row := range g.rows {
		rows[i] = append([]rune(nil), row...)
	}
	return &Grid{rows: rows}
}

// Lines returns the rows as strings.
func (g *Grid) Lines() []string {
	lines := make([]string, len(g.rows))
	for i, row := range g.rows {
		lines[i] = string(row)
	}
	return lines
}

// TrimmedLines returns the rows as strings with trailing whitespace removed.
func (g *Grid) TrimmedLines() []string {
	lines := g.Lines()
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return lines
}

// Render joins the rows with newlines. Render(FromLines(l)) equals
// strings.Join(l, "\n") for any l.
func (g *Grid) Render() string {
	return strings.Join(g.Lines(), "\n")
}

// RenderTrimmed is like [Grid.Render] but strips trailing whitespace from
// every line.
func (g *Grid) RenderTrimmed() string {
	return strings.Join(g.TrimmedLines(), "\n")
}

// Equal reports whether g and other hold the same rows.
func (g *Grid) Equal(other *Grid) bool {
	if len(g.rows) != len(other.rows) {
		return false
	}
	for i := range g.rows {
		if string(g.rows[i]) != string(other.rows[i]) {
			return false
		}
	}
	return true
}

func blankRow(n int) []rune {
	row := make([]rune, n)
	for i := range row {
		row[i] = ' '
	}
	return row
}
