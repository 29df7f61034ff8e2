package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/ascfix/pkg/diagram"
)

// BoxWidths widens every box whose interior is narrower than its longest
// text row. Boxes grow to the right only; the left edge never moves and no
// box shrinks. Text rows are then clamped to end one cell inside their box.
func BoxWidths(inv diagram.Inventory) diagram.Inventory {
	out := inv.Clone()

	for _, t := range out.TextRows {
		i, ok := out.BoxForTextRow(t)
		if !ok {
			continue
		}
		need := utf8.RuneCountInString(strings.TrimRight(t.Content, " \t")) + 2
		if b := &out.Boxes[i]; b.Width() < need {
			b.BottomRight.Col = b.Left() + need - 1
		}
	}

	for j, t := range out.TextRows {
		if i, ok := out.BoxForTextRow(t); ok {
			out.TextRows[j].EndCol = out.Boxes[i].Right() - 1
		}
	}
	return out
}

// NestedBoxes grows parent boxes so each child keeps at least one blank
// cell between its border and the parent's. Only the bottom and right
// edges move. Growth propagates upward through any number of nesting
// levels.
func NestedBoxes(inv diagram.Inventory) diagram.Inventory {
	out := inv.Clone()

	// One pass per level is always enough; stop early once stable.
	for range len(out.Boxes) {
		changed := false
		for p := range out.Boxes {
			parent := &out.Boxes[p]
			for _, c := range parent.Children {
				if c < 0 || c >= len(out.Boxes) {
					continue
				}
				child := out.Boxes[c]
				if r := child.Right() + 2; parent.Right() < r {
					parent.BottomRight.Col = r
					changed = true
				}
				if b := child.Bottom() + 2; parent.Bottom() < b {
					parent.BottomRight.Row = b
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return out
}

// Padding pins each text row to its enclosing box: StartCol becomes the
// left border plus one and EndCol the right border minus one. Rows outside
// every box are left alone.
func Padding(inv diagram.Inventory) diagram.Inventory {
	out := inv.Clone()
	for j, t := range out.TextRows {
		i, ok := out.BoxForTextRow(t)
		if !ok {
			continue
		}
		out.TextRows[j].StartCol = out.Boxes[i].Left() + 1
		out.TextRows[j].EndCol = out.Boxes[i].Right() - 1
	}
	return out
}
