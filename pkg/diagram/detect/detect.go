package detect

import (
	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/grid"
)

// Detect returns every primitive found in g.
func Detect(g *grid.Grid) diagram.Inventory {
	boxes := Boxes(g)
	Hierarchy(boxes)

	inv := diagram.Inventory{
		Boxes:            boxes,
		HorizontalArrows: HorizontalArrows(g),
		VerticalArrows:   withoutBoxSides(VerticalArrows(g), boxes),
	}
	inv.TextRows = TextRows(g, boxes)
	inv.ConnectionLines = ConnectionLines(g, inv)
	inv.Labels = Labels(g, inv)
	return inv
}

// Arrows returns the arrows Detect would report for g. The renderer uses it
// to find glyphs that were drawn by an earlier pass.
func Arrows(g *grid.Grid) ([]diagram.HorizontalArrow, []diagram.VerticalArrow) {
	return HorizontalArrows(g), withoutBoxSides(VerticalArrows(g), Boxes(g))
}
