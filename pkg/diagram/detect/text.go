package detect

import (
	"strings"

	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/grid"
)

// TextRows extracts one row of text per non-blank interior row of each box.
// When any box strictly contains another, it returns nil: nested interiors
// mix parent and child content, so the whole block opts out.
func TextRows(g *grid.Grid, boxes []diagram.Box) []diagram.TextRow {
	if (diagram.Inventory{Boxes: boxes}).HasNesting() {
		return nil
	}

	var rows []diagram.TextRow
	for _, b := range boxes {
		for row := b.Top() + 1; row < b.Bottom(); row++ {
			content := interior(g, b, row)
			if strings.TrimSpace(content) == "" {
				continue
			}
			rows = append(rows, diagram.TextRow{
				Row:      row,
				StartCol: b.Left() + 1,
				EndCol:   b.Right() - 1,
				Content:  content,
			})
		}
	}
	return rows
}

// interior returns the cells strictly between b's side borders on row,
// skipping absent cells and trimming trailing vertical line glyphs.
func interior(g *grid.Grid, b diagram.Box, row int) string {
	var sb strings.Builder
	for col := b.Left() + 1; col < b.Right(); col++ {
		if r, ok := g.Get(row, col); ok {
			sb.WriteRune(r)
		}
	}
	return strings.TrimRight(sb.String(), "║│┃")
}
