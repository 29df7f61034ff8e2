package diagram

import (
	"fmt"
	"slices"
)

// Point is a cell coordinate.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// =============================================================================
// Boxes
// =============================================================================

// Box is a rectangle with TopLeft strictly above and left of BottomRight.
//
// Parent is an index into the owning inventory's Boxes and is only
// meaningful when HasParent is true. Children lists the boxes directly nested
// inside this one, without duplicates.
type Box struct {
	TopLeft     Point    `json:"top_left"`
	BottomRight Point    `json:"bottom_right"`
	Style       BoxStyle `json:"style"`
	Parent      int      `json:"parent"`
	HasParent   bool     `json:"has_parent"`
	Children    []int    `json:"children,omitempty"`
}

func (b Box) Top() int    { return b.TopLeft.Row }
func (b Box) Left() int   { return b.TopLeft.Col }
func (b Box) Bottom() int { return b.BottomRight.Row }
func (b Box) Right() int  { return b.BottomRight.Col }

// Width is the number of columns covered, borders included.
func (b Box) Width() int { return b.Right() - b.Left() + 1 }

// Height is the number of rows covered, borders included.
func (b Box) Height() int { return b.Bottom() - b.Top() + 1 }

// Center returns the midpoint of the box.
func (b Box) Center() Point {
	return Point{Row: (b.Top() + b.Bottom()) / 2, Col: (b.Left() + b.Right()) / 2}
}

// CenterCol returns the midpoint column.
func (b Box) CenterCol() int { return (b.Left() + b.Right()) / 2 }

// Valid reports whether the box is non-degenerate.
func (b Box) Valid() bool {
	return b.Top() < b.Bottom() && b.Left() < b.Right() && b.Top() >= 0 && b.Left() >= 0
}

// Covers reports whether (row, col) lies on or inside the box.
func (b Box) Covers(row, col int) bool {
	return row >= b.Top() && row <= b.Bottom() && col >= b.Left() && col <= b.Right()
}

// InInterior reports whether (row, col) lies strictly inside the borders.
func (b Box) InInterior(row, col int) bool {
	return row > b.Top() && row < b.Bottom() && col > b.Left() && col < b.Right()
}

// OnBorder reports whether (row, col) is a border cell.
func (b Box) OnBorder(row, col int) bool {
	return b.Covers(row, col) && !b.InInterior(row, col)
}

// ContainsBox reports strict containment: other's whole border lies inside
// b's interior. Touching b's border does not count.
func (b Box) ContainsBox(other Box) bool {
	return other.Top() > b.Top() && other.Bottom() < b.Bottom() &&
		other.Left() > b.Left() && other.Right() < b.Right()
}

// Overlaps reports whether the two rectangles share any cell.
func (b Box) Overlaps(other Box) bool {
	return b.Left() <= other.Right() && other.Left() <= b.Right() &&
		b.Top() <= other.Bottom() && other.Top() <= b.Bottom()
}

// RowsOverlap reports whether the row ranges of the two boxes intersect.
func (b Box) RowsOverlap(other Box) bool {
	return b.Top() <= other.Bottom() && other.Top() <= b.Bottom()
}

// HorizontalGap returns the number of empty columns between two boxes that
// do not overlap horizontally, or -1 when their column ranges intersect.
func (b Box) HorizontalGap(other Box) int {
	switch {
	case b.Right() < other.Left():
		return other.Left() - b.Right() - 1
	case other.Right() < b.Left():
		return b.Left() - other.Right() - 1
	default:
		return -1
	}
}

// DistanceTo returns the Chebyshev distance from the span [col, endCol] on
// row to the box rectangle; 0 when the span touches or lies inside it.
func (b Box) DistanceTo(row, col, endCol int) int {
	dr := 0
	switch {
	case row < b.Top():
		dr = b.Top() - row
	case row > b.Bottom():
		dr = row - b.Bottom()
	}
	dc := 0
	switch {
	case endCol < b.Left():
		dc = b.Left() - endCol
	case col > b.Right():
		dc = col - b.Right()
	}
	return max(dr, dc)
}

// =============================================================================
// Arrows
// =============================================================================

// HorizontalArrow is a run of horizontal line glyphs holding at least one
// tip. ArrowChar is the tip glyph drawn at the head; TailChar is a second
// tip found at the opposite end of a double-headed run, or 0.
type HorizontalArrow struct {
	Row       int  `json:"row"`
	StartCol  int  `json:"start_col"`
	EndCol    int  `json:"end_col"`
	Rightward bool `json:"rightward"`
	ArrowChar rune `json:"arrow_char"`
	TailChar  rune `json:"tail_char,omitempty"`
}

// Len returns the number of cells in the run.
func (a HorizontalArrow) Len() int { return a.EndCol - a.StartCol + 1 }

// Head returns the column the tip is drawn at.
func (a HorizontalArrow) Head() int {
	if a.Rightward {
		return a.EndCol
	}
	return a.StartCol
}

// Tail returns the column opposite the head.
func (a HorizontalArrow) Tail() int {
	if a.Rightward {
		return a.StartCol
	}
	return a.EndCol
}

// VerticalArrow is a run of vertical line glyphs. ArrowChar is the tip glyph
// when the run has one; otherwise it is the run's line glyph (│ or ┃) and
// the arrow is drawn as a plain line. TailChar mirrors [HorizontalArrow].
type VerticalArrow struct {
	Col       int  `json:"col"`
	StartRow  int  `json:"start_row"`
	EndRow    int  `json:"end_row"`
	Downward  bool `json:"downward"`
	ArrowChar rune `json:"arrow_char"`
	TailChar  rune `json:"tail_char,omitempty"`
}

// Len returns the number of cells in the run.
func (a VerticalArrow) Len() int { return a.EndRow - a.StartRow + 1 }

// HasTip reports whether the arrow carries a tip glyph.
func (a VerticalArrow) HasTip() bool { return IsVerticalTip(a.ArrowChar) }

// Head returns the row the tip is drawn at.
func (a VerticalArrow) Head() int {
	if a.Downward {
		return a.EndRow
	}
	return a.StartRow
}

// Tail returns the row opposite the head.
func (a VerticalArrow) Tail() int {
	if a.Downward {
		return a.StartRow
	}
	return a.EndRow
}

// =============================================================================
// Text and labels
// =============================================================================

// TextRow is one interior row of a box. Content is drawn from StartCol and
// clipped at EndCol.
type TextRow struct {
	Row      int    `json:"row"`
	StartCol int    `json:"start_col"`
	EndCol   int    `json:"end_col"`
	Content  string `json:"content"`
}

// AttachmentKind tells which slice an [Attachment] indexes.
type AttachmentKind int

const (
	AttachedToBox AttachmentKind = iota
	AttachedToVerticalArrow
)

func (k AttachmentKind) String() string {
	if k == AttachedToVerticalArrow {
		return "vertical_arrow"
	}
	return "box"
}

func (k AttachmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *AttachmentKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "box":
		*k = AttachedToBox
	case "vertical_arrow":
		*k = AttachedToVerticalArrow
	default:
		return fmt.Errorf("unknown attachment kind %q", b)
	}
	return nil
}

// Attachment references either a box or a vertical arrow, never both.
type Attachment struct {
	Kind  AttachmentKind `json:"kind"`
	Index int            `json:"index"`
}

// BoxAttachment returns an attachment to Boxes[i].
func BoxAttachment(i int) Attachment {
	return Attachment{Kind: AttachedToBox, Index: i}
}

// ArrowAttachment returns an attachment to VerticalArrows[i].
func ArrowAttachment(i int) Attachment {
	return Attachment{Kind: AttachedToVerticalArrow, Index: i}
}

// Label is free text near a box or vertical arrow. Offset is the displacement
// from the attached box's center; labels on arrows report a zero offset.
type Label struct {
	Row        int        `json:"row"`
	Col        int        `json:"col"`
	Content    string     `json:"content"`
	AttachedTo Attachment `json:"attached_to"`
	Offset     Point      `json:"offset"`
}

// Len returns the label's width in cells.
func (l Label) Len() int { return len([]rune(l.Content)) }

// =============================================================================
// Connection lines
// =============================================================================

// SegmentKind distinguishes horizontal from vertical segments.
type SegmentKind int

const (
	HorizontalSegment SegmentKind = iota
	VerticalSegment
)

// Segment is one straight piece of a connection line. For a horizontal
// segment Fixed is the row and Start/End are columns; for a vertical segment
// Fixed is the column and Start/End are rows.
type Segment struct {
	Kind  SegmentKind `json:"kind"`
	Fixed int         `json:"fixed"`
	Start int         `json:"start"`
	End   int         `json:"end"`
}

// HSeg returns a horizontal segment on row from start to end.
func HSeg(row, start, end int) Segment {
	return Segment{Kind: HorizontalSegment, Fixed: row, Start: start, End: end}
}

// VSeg returns a vertical segment on col from start to end.
func VSeg(col, start, end int) Segment {
	return Segment{Kind: VerticalSegment, Fixed: col, Start: start, End: end}
}

// Cells returns the points covered by the segment.
func (s Segment) Cells() []Point {
	lo, hi := min(s.Start, s.End), max(s.Start, s.End)
	cells := make([]Point, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		if s.Kind == HorizontalSegment {
			cells = append(cells, Point{Row: s.Fixed, Col: i})
		} else {
			cells = append(cells, Point{Row: i, Col: s.Fixed})
		}
	}
	return cells
}

// Endpoints returns the two end cells of the segment.
func (s Segment) Endpoints() (Point, Point) {
	if s.Kind == HorizontalSegment {
		return Point{Row: s.Fixed, Col: s.Start}, Point{Row: s.Fixed, Col: s.End}
	}
	return Point{Row: s.Start, Col: s.Fixed}, Point{Row: s.End, Col: s.Fixed}
}

// ConnectionLine is an ordered path of segments.
type ConnectionLine struct {
	Segments []Segment `json:"segments"`
}

// =============================================================================
// Inventory
// =============================================================================

// Inventory is the aggregate of every primitive found in a diagram block.
type Inventory struct {
	Boxes            []Box             `json:"boxes"`
	HorizontalArrows []HorizontalArrow `json:"horizontal_arrows"`
	VerticalArrows   []VerticalArrow   `json:"vertical_arrows"`
	TextRows         []TextRow         `json:"text_rows"`
	ConnectionLines  []ConnectionLine  `json:"connection_lines"`
	Labels           []Label           `json:"labels"`
}

// Clone returns a deep copy; index references stay valid in the copy.
func (inv Inventory) Clone() Inventory {
	out := Inventory{
		Boxes:            slices.Clone(inv.Boxes),
		HorizontalArrows: slices.Clone(inv.HorizontalArrows),
		VerticalArrows:   slices.Clone(inv.VerticalArrows),
		TextRows:         slices.Clone(inv.TextRows),
		Labels:           slices.Clone(inv.Labels),
	}
	for i := range out.Boxes {
		out.Boxes[i].Children = slices.Clone(out.Boxes[i].Children)
	}
	if inv.ConnectionLines != nil {
		out.ConnectionLines = make([]ConnectionLine, len(inv.ConnectionLines))
		for i, c := range inv.ConnectionLines {
			out.ConnectionLines[i] = ConnectionLine{Segments: slices.Clone(c.Segments)}
		}
	}
	return out
}

// Empty reports whether the inventory holds no primitives.
func (inv Inventory) Empty() bool {
	return len(inv.Boxes) == 0 && len(inv.HorizontalArrows) == 0 &&
		len(inv.VerticalArrows) == 0 && len(inv.TextRows) == 0 &&
		len(inv.ConnectionLines) == 0 && len(inv.Labels) == 0
}

// HasNesting reports whether any box strictly contains another.
func (inv Inventory) HasNesting() bool {
	for i, outer := range inv.Boxes {
		for j, inner := range inv.Boxes {
			if i != j && outer.ContainsBox(inner) {
				return true
			}
		}
	}
	return false
}

// OverlappingBoxes returns index pairs of boxes that share cells without
// one strictly containing the other.
func (inv Inventory) OverlappingBoxes() [][2]int {
	var pairs [][2]int
	for i := range inv.Boxes {
		for j := i + 1; j < len(inv.Boxes); j++ {
			a, b := inv.Boxes[i], inv.Boxes[j]
			if a.Overlaps(b) && !a.ContainsBox(b) && !b.ContainsBox(a) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// BoxForTextRow returns the index of the box whose interior holds t, matched
// by row range and start column.
func (inv Inventory) BoxForTextRow(t TextRow) (int, bool) {
	for i, b := range inv.Boxes {
		if t.Row > b.Top() && t.Row < b.Bottom() && t.StartCol > b.Left() && t.StartCol < b.Right() {
			return i, true
		}
	}
	return -1, false
}

// InAnyInterior reports whether (row, col) lies strictly inside some box.
func (inv Inventory) InAnyInterior(row, col int) bool {
	for _, b := range inv.Boxes {
		if b.InInterior(row, col) {
			return true
		}
	}
	return false
}

// Bounds returns the height and width needed to draw every primitive.
func (inv Inventory) Bounds() (height, width int) {
	grow := func(row, col int) {
		height = max(height, row+1)
		width = max(width, col+1)
	}
	for _, b := range inv.Boxes {
		grow(b.Bottom(), b.Right())
	}
	for _, a := range inv.HorizontalArrows {
		grow(a.Row, a.EndCol)
	}
	for _, a := range inv.VerticalArrows {
		grow(a.EndRow, a.Col)
	}
	for _, t := range inv.TextRows {
		grow(t.Row, max(t.EndCol, t.StartCol))
	}
	for _, c := range inv.ConnectionLines {
		for _, s := range c.Segments {
			for _, p := range s.Cells() {
				grow(p.Row, p.Col)
			}
		}
	}
	for _, l := range inv.Labels {
		grow(l.Row, l.Col+max(l.Len(), 1)-1)
	}
	return height, width
}
