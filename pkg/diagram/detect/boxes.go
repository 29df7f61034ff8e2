package detect

import (
	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/grid"
)

// Boxes finds rectangles in g. Cells are scanned row-major; each unvisited
// box glyph seeds a 4-connected flood fill, and the component's bounding
// rectangle becomes a box when its top-left and bottom-right cells are
// corner glyphs. Junctions inside the rectangle do not split it.
func Boxes(g *grid.Grid) []diagram.Box {
	visited := make(map[diagram.Point]bool)
	var boxes []diagram.Box

	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.RowLen(row); col++ {
			r, _ := g.Get(row, col)
			if !diagram.IsBoxChar(r) || visited[diagram.Point{Row: row, Col: col}] {
				continue
			}
			if b, ok := extractBox(g, row, col, visited); ok {
				boxes = append(boxes, b)
			}
		}
	}
	return boxes
}

func extractBox(g *grid.Grid, row, col int, visited map[diagram.Point]bool) (diagram.Box, bool) {
	start := diagram.Point{Row: row, Col: col}
	minRow, maxRow, minCol, maxCol := row, row, col, col

	queue := []diagram.Point{start}
	visited[start] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		minRow, maxRow = min(minRow, p.Row), max(maxRow, p.Row)
		minCol, maxCol = min(minCol, p.Col), max(maxCol, p.Col)

		for _, n := range [4]diagram.Point{
			{Row: p.Row - 1, Col: p.Col},
			{Row: p.Row + 1, Col: p.Col},
			{Row: p.Row, Col: p.Col - 1},
			{Row: p.Row, Col: p.Col + 1},
		} {
			if visited[n] {
				continue
			}
			if r, ok := g.Get(n.Row, n.Col); ok && diagram.IsBoxChar(r) {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}

	if minRow >= maxRow || minCol >= maxCol {
		return diagram.Box{}, false
	}
	topLeft, _ := g.Get(minRow, minCol)
	bottomRight, _ := g.Get(maxRow, maxCol)
	if !diagram.IsCorner(topLeft) || !diagram.IsCorner(bottomRight) {
		return diagram.Box{}, false
	}

	return diagram.Box{
		TopLeft:     diagram.Point{Row: minRow, Col: minCol},
		BottomRight: diagram.Point{Row: maxRow, Col: maxCol},
		Style:       diagram.StyleFromCorner(topLeft),
	}, true
}
