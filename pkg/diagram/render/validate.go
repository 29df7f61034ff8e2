package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/grid"
)

// IssueKind classifies a problem found by [Validate].
type IssueKind int

const (
	// BoxOverlap marks two boxes that share cells without nesting.
	BoxOverlap IssueKind = iota
	// TextOverflow marks a text row wider than its box interior.
	TextOverflow
	// BrokenBorder marks a box corner or side that was overwritten.
	BrokenBorder
	// LostArrowHead marks an arrow whose tip is not on the grid.
	LostArrowHead
)

func (k IssueKind) String() string {
	switch k {
	case BoxOverlap:
		return "box_overlap"
	case TextOverflow:
		return "text_overflow"
	case BrokenBorder:
		return "broken_border"
	case LostArrowHead:
		return "lost_arrow_head"
	}
	return "unknown"
}

func (k IssueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *IssueKind) UnmarshalText(b []byte) error {
	for _, kind := range []IssueKind{BoxOverlap, TextOverflow, BrokenBorder, LostArrowHead} {
		if kind.String() == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown issue kind %q", b)
}

// Issue is one problem in a rendered diagram.
type Issue struct {
	Kind    IssueKind     `json:"kind"`
	At      diagram.Point `json:"at"`
	Message string        `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", i.At.Row+1, i.At.Col+1, i.Kind, i.Message)
}

// Validate checks g, as produced by rendering inv, for geometry that would
// read wrong. It reports overlapping boxes, text spilling past a border,
// borders overwritten by later primitives and arrow tips that did not
// survive.
// An empty result means the diagram is consistent.
func Validate(g *grid.Grid, inv diagram.Inventory) []Issue {
	var issues []Issue

	for _, pair := range inv.OverlappingBoxes() {
		a := inv.Boxes[pair[0]]
		issues = append(issues, Issue{
			Kind:    BoxOverlap,
			At:      a.TopLeft,
			Message: fmt.Sprintf("box %d overlaps box %d", pair[0], pair[1]),
		})
	}

	for _, t := range inv.TextRows {
		n := utf8.RuneCountInString(strings.TrimRight(t.Content, " \t"))
		if width := t.EndCol - t.StartCol + 1; n > width {
			issues = append(issues, Issue{
				Kind:    TextOverflow,
				At:      diagram.Point{Row: t.Row, Col: t.StartCol},
				Message: fmt.Sprintf("text %q needs %d cells, box interior has %d", strings.TrimSpace(t.Content), n, width),
			})
		}
	}

	for i, b := range inv.Boxes {
		issues = append(issues, checkBorder(g, i, b)...)
	}

	for _, a := range inv.HorizontalArrows {
		if inv.InAnyInterior(a.Row, a.StartCol) || inv.InAnyInterior(a.Row, a.EndCol) {
			continue
		}
		if got := g.At(a.Row, a.Head()); got != a.ArrowChar {
			issues = append(issues, Issue{
				Kind:    LostArrowHead,
				At:      diagram.Point{Row: a.Row, Col: a.Head()},
				Message: fmt.Sprintf("arrow tip is %q, want %q", got, a.ArrowChar),
			})
		}
	}
	for _, a := range inv.VerticalArrows {
		if !a.HasTip() || inv.InAnyInterior(a.StartRow, a.Col) || inv.InAnyInterior(a.EndRow, a.Col) {
			continue
		}
		if got := g.At(a.Head(), a.Col); got != a.ArrowChar {
			issues = append(issues, Issue{
				Kind:    LostArrowHead,
				At:      diagram.Point{Row: a.Head(), Col: a.Col},
				Message: fmt.Sprintf("arrow tip is %q, want %q", got, a.ArrowChar),
			})
		}
	}
	return issues
}

// checkBorder reports border cells of b whose glyph is not the style's. The
// corners must match exactly; sides also accept junction glyphs where
// connectors attach.
func checkBorder(g *grid.Grid, i int, b diagram.Box) []Issue {
	gl := b.Style.Glyphs()
	var issues []Issue
	report := func(row, col int, got, want rune) {
		issues = append(issues, Issue{
			Kind:    BrokenBorder,
			At:      diagram.Point{Row: row, Col: col},
			Message: fmt.Sprintf("box %d border is %q, want %q", i, got, want),
		})
	}

	corners := [4]struct {
		row, col int
		want     rune
	}{
		{b.Top(), b.Left(), gl.TopLeft},
		{b.Top(), b.Right(), gl.TopRight},
		{b.Bottom(), b.Left(), gl.BottomLeft},
		{b.Bottom(), b.Right(), gl.BottomRight},
	}
	for _, c := range corners {
		if got := g.At(c.row, c.col); got != c.want {
			report(c.row, c.col, got, c.want)
		}
	}

	side := func(row, col int, want rune) {
		if got := g.At(row, col); got != want && !diagram.IsJunction(got) {
			report(row, col, got, want)
		}
	}
	for col := b.Left() + 1; col < b.Right(); col++ {
		side(b.Top(), col, gl.Horizontal)
		side(b.Bottom(), col, gl.Horizontal)
	}
	for row := b.Top() + 1; row < b.Bottom(); row++ {
		side(row, b.Left(), gl.Vertical)
		side(row, b.Right(), gl.Vertical)
	}
	return issues
}
