package detect

import (
	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/grid"
)

// HorizontalArrows scans every row for runs of ─ and horizontal tip glyphs.
// A run is kept only if it holds at least one tip. It points left when it
// starts with a left tip, and right otherwise.
func HorizontalArrows(g *grid.Grid) []diagram.HorizontalArrow {
	var arrows []diagram.HorizontalArrow
	for row := 0; row < g.Height(); row++ {
		col := 0
		for col < g.RowLen(row) {
			if r, _ := g.Get(row, col); !diagram.IsHorizontalArrowChar(r) {
				col++
				continue
			}
			start := col
			for col < g.RowLen(row) {
				if r, _ := g.Get(row, col); !diagram.IsHorizontalArrowChar(r) {
					break
				}
				col++
			}
			end := col - 1

			run := make([]rune, 0, end-start+1)
			for c := start; c <= end; c++ {
				r, _ := g.Get(row, c)
				run = append(run, r)
			}
			head, tail, ok := tips(run, diagram.IsHorizontalTip, diagram.IsLeftTip)
			if !ok {
				continue
			}
			arrows = append(arrows, diagram.HorizontalArrow{
				Row:       row,
				StartCol:  start,
				EndCol:    end,
				Rightward: !diagram.IsLeftTip(run[0]),
				ArrowChar: head,
				TailChar:  tail,
			})
		}
	}
	return arrows
}

// VerticalArrows scans every column for runs of │, ┃ and vertical tip
// glyphs. A run is kept when it spans more than one cell or starts with a
// tip. It points up when it starts with an up tip, and down otherwise.
func VerticalArrows(g *grid.Grid) []diagram.VerticalArrow {
	var arrows []diagram.VerticalArrow
	for col := 0; col < g.Width(); col++ {
		row := 0
		for row < g.Height() {
			if r, _ := g.Get(row, col); !diagram.IsVerticalArrowChar(r) {
				row++
				continue
			}
			start := row
			for row < g.Height() {
				if r, _ := g.Get(row, col); !diagram.IsVerticalArrowChar(r) {
					break
				}
				row++
			}
			end := row - 1

			run := make([]rune, 0, end-start+1)
			for r := start; r <= end; r++ {
				ch, _ := g.Get(r, col)
				run = append(run, ch)
			}
			if len(run) == 1 && !diagram.IsVerticalTip(run[0]) {
				continue
			}
			head, tail, ok := tips(run, diagram.IsVerticalTip, diagram.IsUpTip)
			if !ok {
				head = run[0]
			}
			arrows = append(arrows, diagram.VerticalArrow{
				Col:       col,
				StartRow:  start,
				EndRow:    end,
				Downward:  !diagram.IsUpTip(run[0]),
				ArrowChar: head,
				TailChar:  tail,
			})
		}
	}
	return arrows
}

// tips picks the head glyph of a run and, for double-headed runs, the tail
// glyph. The head end is the start when the run opens with a backward tip.
func tips(run []rune, isTip, isBackward func(rune) bool) (head, tail rune, ok bool) {
	first, last := run[0], run[len(run)-1]
	headAt, tailAt := last, first
	if isBackward(first) {
		headAt, tailAt = first, last
	}

	switch {
	case isTip(headAt):
		head = headAt
	default:
		for _, r := range run {
			if isTip(r) {
				head = r
				break
			}
		}
	}
	if head == 0 {
		return 0, 0, false
	}
	if len(run) > 1 && isTip(tailAt) {
		tail = tailAt
	}
	return head, tail, true
}

// withoutBoxSides drops tipless vertical runs that are the left or right
// border of a box.
func withoutBoxSides(arrows []diagram.VerticalArrow, boxes []diagram.Box) []diagram.VerticalArrow {
	out := arrows[:0:0]
	for _, a := range arrows {
		if !a.HasTip() && onBoxSide(a, boxes) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func onBoxSide(a diagram.VerticalArrow, boxes []diagram.Box) bool {
	for _, b := range boxes {
		if (a.Col == b.Left() || a.Col == b.Right()) && a.StartRow >= b.Top() && a.EndRow <= b.Bottom() {
			return true
		}
	}
	return false
}
