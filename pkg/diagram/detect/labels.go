package detect

import (
	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/grid"
)

const (
	// maxBoxDistance is how far a label may sit from a box rectangle.
	maxBoxDistance = 2
	// maxArrowDistance is how far, in columns, a label may sit from a
	// vertical arrow.
	maxArrowDistance = 4
	// preferArrowDistance makes an arrow win over any box.
	preferArrowDistance = 3
)

// Labels collects words of two or more characters that no other primitive
// claims and that sit near a box or a vertical arrow. Words with nothing
// nearby are dropped.
//
// A vertical arrow within 3 columns always wins, even over a box the label
// lies inside; otherwise the nearer primitive wins and boxes win ties.
func Labels(g *grid.Grid, inv diagram.Inventory) []diagram.Label {
	claimed := claimedCells(inv)

	var labels []diagram.Label
	for row := 0; row < g.Height(); row++ {
		col := 0
		for col < g.RowLen(row) {
			if !labelRune(g, claimed, row, col) {
				col++
				continue
			}
			start := col
			for col < g.RowLen(row) && labelRune(g, claimed, row, col) {
				col++
			}
			end := col - 1
			if end == start {
				continue
			}

			content := make([]rune, 0, end-start+1)
			for c := start; c <= end; c++ {
				r, _ := g.Get(row, c)
				content = append(content, r)
			}
			if l, ok := attach(inv, row, start, end); ok {
				l.Content = string(content)
				labels = append(labels, l)
			}
		}
	}
	return labels
}

func labelRune(g *grid.Grid, claimed map[diagram.Point]bool, row, col int) bool {
	r, ok := g.Get(row, col)
	if !ok || r == ' ' || r == '\t' || diagram.IsDiagramGlyph(r) {
		return false
	}
	return !claimed[diagram.Point{Row: row, Col: col}]
}

func attach(inv diagram.Inventory, row, start, end int) (diagram.Label, bool) {
	boxIdx, boxDist := -1, 0
	for i, b := range inv.Boxes {
		d := b.DistanceTo(row, start, end)
		if d <= maxBoxDistance && (boxIdx < 0 || d < boxDist) {
			boxIdx, boxDist = i, d
		}
	}

	arrowIdx, arrowDist := -1, 0
	for i, a := range inv.VerticalArrows {
		if row < a.StartRow-1 || row > a.EndRow+1 {
			continue
		}
		d := 0
		switch {
		case a.Col < start:
			d = start - a.Col
		case a.Col > end:
			d = a.Col - end
		}
		if d <= maxArrowDistance && (arrowIdx < 0 || d < arrowDist) {
			arrowIdx, arrowDist = i, d
		}
	}

	useArrow := arrowIdx >= 0 &&
		(arrowDist <= preferArrowDistance || boxIdx < 0 || arrowDist < boxDist)

	switch {
	case useArrow:
		return diagram.Label{Row: row, Col: start, AttachedTo: diagram.ArrowAttachment(arrowIdx)}, true
	case boxIdx >= 0:
		c := inv.Boxes[boxIdx].Center()
		return diagram.Label{
			Row:        row,
			Col:        start,
			AttachedTo: diagram.BoxAttachment(boxIdx),
			Offset:     diagram.Point{Row: row - c.Row, Col: start - c.Col},
		}, true
	}
	return diagram.Label{}, false
}

// claimedCells marks box borders, arrow runs, text rows and connection
// lines.
func claimedCells(inv diagram.Inventory) map[diagram.Point]bool {
	claimed := make(map[diagram.Point]bool)
	mark := func(row, col int) { claimed[diagram.Point{Row: row, Col: col}] = true }

	for _, b := range inv.Boxes {
		for col := b.Left(); col <= b.Right(); col++ {
			mark(b.Top(), col)
			mark(b.Bottom(), col)
		}
		for row := b.Top(); row <= b.Bottom(); row++ {
			mark(row, b.Left())
			mark(row, b.Right())
		}
	}
	for _, a := range inv.HorizontalArrows {
		for col := a.StartCol; col <= a.EndCol; col++ {
			mark(a.Row, col)
		}
	}
	for _, a := range inv.VerticalArrows {
		for row := a.StartRow; row <= a.EndRow; row++ {
			mark(row, a.Col)
		}
	}
	for _, t := range inv.TextRows {
		n := len([]rune(t.Content))
		for col := t.StartCol; col < t.StartCol+n && col <= t.EndCol; col++ {
			mark(t.Row, col)
		}
	}
	for _, c := range inv.ConnectionLines {
		for _, s := range c.Segments {
			for _, p := range s.Cells() {
				mark(p.Row, p.Col)
			}
		}
	}
	return claimed
}
