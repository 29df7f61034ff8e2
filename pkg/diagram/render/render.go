package render

import (
	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/diagram/detect"
	"github.com/matzehuels/ascfix/pkg/grid"
)

// RenderDiagram draws inv on a fresh space-filled grid just large enough to
// hold every primitive.
func RenderDiagram(inv diagram.Inventory) *grid.Grid {
	h, w := inv.Bounds()
	g := grid.New(h, w)
	draw(g, inv)
	return g
}

// RenderOntoGrid draws inv over a copy of orig. The copy grows when the
// inventory reaches past orig. Boxes, arrows and labels found in orig are
// erased first, so primitives that normalization moved leave no stale
// glyphs behind. orig is not modified.
func RenderOntoGrid(orig *grid.Grid, inv diagram.Inventory) *grid.Grid {
	g := orig.Clone()
	h, w := inv.Bounds()
	g.Grow(h, w)

	eraseStale(g, orig, inv)
	draw(g, inv)
	return g
}

func eraseStale(g, orig *grid.Grid, inv diagram.Inventory) {
	boxes := diagram.Inventory{Boxes: detect.Boxes(orig)}
	for _, b := range boxes.Boxes {
		for _, p := range borderCells(b) {
			g.Set(p.Row, p.Col, ' ')
		}
	}

	// Arrows inside a box interior are never redrawn, so they stay.
	hs, vs := detect.Arrows(orig)
	for _, a := range hs {
		if boxes.InAnyInterior(a.Row, a.StartCol) || boxes.InAnyInterior(a.Row, a.EndCol) {
			continue
		}
		for col := a.StartCol; col <= a.EndCol; col++ {
			g.Set(a.Row, col, ' ')
		}
	}
	for _, a := range vs {
		if boxes.InAnyInterior(a.StartRow, a.Col) || boxes.InAnyInterior(a.EndRow, a.Col) {
			continue
		}
		if !a.HasTip() && capped(orig, a) {
			continue
		}
		for row := a.StartRow; row <= a.EndRow; row++ {
			g.Set(row, a.Col, ' ')
		}
	}

	for _, l := range inv.Labels {
		for i := range l.Len() {
			g.Set(l.Row, l.Col+i, ' ')
		}
	}
}

// capped reports whether a plain vertical line is closed off by box glyphs
// at both ends, which marks it as the side of a shape the detector did not
// accept as a box.
func capped(g *grid.Grid, a diagram.VerticalArrow) bool {
	above, _ := g.Get(a.StartRow-1, a.Col)
	below, _ := g.Get(a.EndRow+1, a.Col)
	return diagram.IsBoxChar(above) && diagram.IsBoxChar(below)
}

func draw(g *grid.Grid, inv diagram.Inventory) {
	for _, b := range inv.Boxes {
		drawBox(g, b)
	}
	for _, t := range inv.TextRows {
		drawText(g, t)
	}
	for _, a := range inv.HorizontalArrows {
		if inv.InAnyInterior(a.Row, a.StartCol) || inv.InAnyInterior(a.Row, a.EndCol) {
			continue
		}
		drawHorizontal(g, a)
	}
	for _, a := range inv.VerticalArrows {
		if inv.InAnyInterior(a.StartRow, a.Col) || inv.InAnyInterior(a.EndRow, a.Col) {
			continue
		}
		drawVertical(g, a)
	}
	for _, c := range inv.ConnectionLines {
		drawConnection(g, c)
	}
	owners := labelCells(inv.Labels)
	for i := range inv.Labels {
		drawLabel(g, inv, i, owners)
	}
}

// labelCells maps every cell a label covers to the label's index.
func labelCells(labels []diagram.Label) map[diagram.Point]int {
	owners := make(map[diagram.Point]int)
	for i, l := range labels {
		for j := range l.Len() {
			owners[diagram.Point{Row: l.Row, Col: l.Col + j}] = i
		}
	}
	return owners
}

func borderCells(b diagram.Box) []diagram.Point {
	var cells []diagram.Point
	for col := b.Left(); col <= b.Right(); col++ {
		cells = append(cells, diagram.Point{Row: b.Top(), Col: col}, diagram.Point{Row: b.Bottom(), Col: col})
	}
	for row := b.Top() + 1; row < b.Bottom(); row++ {
		cells = append(cells, diagram.Point{Row: row, Col: b.Left()}, diagram.Point{Row: row, Col: b.Right()})
	}
	return cells
}

func drawBox(g *grid.Grid, b diagram.Box) {
	gl := b.Style.Glyphs()
	for col := b.Left() + 1; col < b.Right(); col++ {
		g.Set(b.Top(), col, gl.Horizontal)
		g.Set(b.Bottom(), col, gl.Horizontal)
	}
	for row := b.Top() + 1; row < b.Bottom(); row++ {
		g.Set(row, b.Left(), gl.Vertical)
		g.Set(row, b.Right(), gl.Vertical)
	}
	g.Set(b.Top(), b.Left(), gl.TopLeft)
	g.Set(b.Top(), b.Right(), gl.TopRight)
	g.Set(b.Bottom(), b.Left(), gl.BottomLeft)
	g.Set(b.Bottom(), b.Right(), gl.BottomRight)
}

func drawText(g *grid.Grid, t diagram.TextRow) {
	col := t.StartCol
	for _, r := range t.Content {
		if col > t.EndCol {
			break
		}
		g.Set(t.Row, col, r)
		col++
	}
}

func drawHorizontal(g *grid.Grid, a diagram.HorizontalArrow) {
	for col := a.StartCol; col <= a.EndCol; col++ {
		g.Set(a.Row, col, '─')
	}
	if a.TailChar != 0 {
		g.Set(a.Row, a.Tail(), a.TailChar)
	}
	g.Set(a.Row, a.Head(), a.ArrowChar)
}

func drawVertical(g *grid.Grid, a diagram.VerticalArrow) {
	if !a.HasTip() {
		for row := a.StartRow; row <= a.EndRow; row++ {
			g.Set(row, a.Col, a.ArrowChar)
		}
		return
	}
	for row := a.StartRow; row <= a.EndRow; row++ {
		g.Set(row, a.Col, '│')
	}
	if a.TailChar != 0 {
		g.Set(a.Tail(), a.Col, a.TailChar)
	}
	g.Set(a.Head(), a.Col, a.ArrowChar)
}

const (
	labelWindowBefore = 3
	labelWindowAfter  = 2
)

// drawLabel writes label i. A label on a vertical arrow is first
// re-centered under the arrow glyph found on the row above it, nearest the
// arrow's column. The label stays in place when the re-centered cells hold
// another label or text.
func drawLabel(g *grid.Grid, inv diagram.Inventory, i int, owners map[diagram.Point]int) {
	l := inv.Labels[i]
	col := l.Col
	if l.AttachedTo.Kind == diagram.AttachedToVerticalArrow &&
		l.AttachedTo.Index >= 0 && l.AttachedTo.Index < len(inv.VerticalArrows) {
		target := inv.VerticalArrows[l.AttachedTo.Index].Col
		if c, ok := arrowGlyphAbove(g, l, target); ok {
			if moved := max(c-l.Len()/2, 0); moved != col && free(g, l.Row, moved, l.Len(), i, owners) {
				for j := range l.Len() {
					delete(owners, diagram.Point{Row: l.Row, Col: l.Col + j})
				}
				for j := range l.Len() {
					owners[diagram.Point{Row: l.Row, Col: moved + j}] = i
				}
				col = moved
			}
		}
	}

	// Re-centering can push a label past the bounds the grid was sized for.
	g.Grow(l.Row+1, col+l.Len())
	for j, r := range []rune(l.Content) {
		g.Set(l.Row, col+j, r)
	}
}

// free reports whether n cells from (row, col) are blank and not covered by
// a label other than self.
func free(g *grid.Grid, row, col, n, self int, owners map[diagram.Point]int) bool {
	for c := col; c < col+n; c++ {
		owner, ok := owners[diagram.Point{Row: row, Col: c}]
		if ok && owner != self {
			return false
		}
		if !ok && g.At(row, c) != ' ' {
			return false
		}
	}
	return true
}

func arrowGlyphAbove(g *grid.Grid, l diagram.Label, target int) (int, bool) {
	best, bestDist := 0, -1
	for c := max(l.Col-labelWindowBefore, 0); c <= l.Col+l.Len()+labelWindowAfter; c++ {
		r, ok := g.Get(l.Row-1, c)
		if !ok || !diagram.IsVerticalArrowChar(r) {
			continue
		}
		d := c - target
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}
