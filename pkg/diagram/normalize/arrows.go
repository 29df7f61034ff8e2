package normalize

import (
	"cmp"
	"slices"

	"github.com/matzehuels/ascfix/pkg/diagram"
)

// AlignHorizontalArrows orders horizontal arrows by row, then start column.
// Columns are not changed; the sort is stable so equal arrows keep their
// detection order.
func AlignHorizontalArrows(inv diagram.Inventory) diagram.Inventory {
	out := inv.Clone()
	slices.SortStableFunc(out.HorizontalArrows, func(a, b diagram.HorizontalArrow) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.StartCol, b.StartCol)
	})
	return out
}

// AlignVerticalArrows snaps every vertical arrow to the closest of the left
// edge, center and right edge of any box. Candidates are scanned box by box
// in that order and only a strictly closer one replaces the current best,
// so ties go to the earlier box and the earlier candidate.
func AlignVerticalArrows(inv diagram.Inventory) diagram.Inventory {
	out := inv.Clone()
	if len(out.Boxes) == 0 {
		return out
	}
	for i, a := range out.VerticalArrows {
		out.VerticalArrows[i].Col = nearestColumn(a.Col, out.Boxes)
	}
	return out
}

func nearestColumn(col int, boxes []diagram.Box) int {
	best, bestDist := col, -1
	for _, b := range boxes {
		for _, c := range [3]int{b.Left(), b.CenterCol(), b.Right()} {
			d := abs(col - c)
			if bestDist < 0 || d < bestDist {
				best, bestDist = c, d
			}
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
