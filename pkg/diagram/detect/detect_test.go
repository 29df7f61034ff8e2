package detect

import (
	"testing"

	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/grid"
)

func gridOf(lines ...string) *grid.Grid {
	return grid.FromLines(lines)
}

func TestBoxesSimple(t *testing.T) {
	boxes := Boxes(gridOf("┌─┐", "│ │", "└─┘"))
	if len(boxes) != 1 {
		t.Fatalf("Boxes() found %d boxes, want 1", len(boxes))
	}
	b := boxes[0]
	if b.TopLeft != (diagram.Point{Row: 0, Col: 0}) || b.BottomRight != (diagram.Point{Row: 2, Col: 2}) {
		t.Errorf("Boxes() = %v-%v, want (0,0)-(2,2)", b.TopLeft, b.BottomRight)
	}
	if b.Style != diagram.Single {
		t.Errorf("Style = %v, want single", b.Style)
	}
}

func TestBoxesStyles(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  diagram.BoxStyle
	}{
		{"double", []string{"╔══╗", "║  ║", "╚══╝"}, diagram.Double},
		{"rounded", []string{"╭──╮", "│  │", "╰──╯"}, diagram.Rounded},
		{"single", []string{"┌──┐", "│  │", "└──┘"}, diagram.Single},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boxes := Boxes(gridOf(tt.lines...))
			if len(boxes) != 1 {
				t.Fatalf("Boxes() found %d boxes, want 1", len(boxes))
			}
			if boxes[0].Style != tt.want {
				t.Errorf("Style = %v, want %v", boxes[0].Style, tt.want)
			}
		})
	}
}

func TestBoxesRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"no corners", []string{"────", "│  │", "────"}},
		{"open bottom right", []string{"┌──┐", "│  │", "└───"}},
		{"single line", []string{"┌──┐"}},
		{"plain text", []string{"hello", "world"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if boxes := Boxes(gridOf(tt.lines...)); len(boxes) != 0 {
				t.Errorf("Boxes() = %v, want none", boxes)
			}
		})
	}
}

func TestBoxesSideBySideAndJunctions(t *testing.T) {
	boxes := Boxes(gridOf("┌─┐   ┌─┐", "│a│   │b│", "└─┘   └─┘"))
	if len(boxes) != 2 {
		t.Errorf("Boxes() found %d boxes, want 2", len(boxes))
	}

	boxes = Boxes(gridOf("┌──┬──┐", "│  │  │", "└──┴──┘"))
	if len(boxes) != 1 {
		t.Fatalf("Boxes() found %d boxes, want 1", len(boxes))
	}
	if boxes[0].BottomRight != (diagram.Point{Row: 2, Col: 6}) {
		t.Errorf("BottomRight = %v, want (2,6)", boxes[0].BottomRight)
	}
}

var nestedLines = []string{
	"┌──────────┐",
	"│          │",
	"│ ┌──┐     │",
	"│ │  │     │",
	"│ └──┘     │",
	"│          │",
	"└──────────┘",
}

func TestHierarchyNested(t *testing.T) {
	boxes := Boxes(gridOf(nestedLines...))
	if len(boxes) != 2 {
		t.Fatalf("Boxes() found %d boxes, want 2", len(boxes))
	}
	Hierarchy(boxes)

	if boxes[0].HasParent {
		t.Error("outer box should have no parent")
	}
	if !boxes[1].HasParent || boxes[1].Parent != 0 {
		t.Errorf("inner parent = %d (%v), want 0", boxes[1].Parent, boxes[1].HasParent)
	}
	if len(boxes[0].Children) != 1 || boxes[0].Children[0] != 1 {
		t.Errorf("outer children = %v, want [1]", boxes[0].Children)
	}
}

func TestHierarchyTouchingIsNotNesting(t *testing.T) {
	boxes := []diagram.Box{
		{TopLeft: diagram.Point{Row: 0, Col: 0}, BottomRight: diagram.Point{Row: 6, Col: 20}},
		{TopLeft: diagram.Point{Row: 0, Col: 2}, BottomRight: diagram.Point{Row: 3, Col: 10}},
	}
	Hierarchy(boxes)
	for i, b := range boxes {
		if b.HasParent || len(b.Children) > 0 {
			t.Errorf("box %d has relations %v/%v, want none", i, b.HasParent, b.Children)
		}
	}
}

func TestHierarchyDirectParent(t *testing.T) {
	boxes := []diagram.Box{
		{TopLeft: diagram.Point{Row: 0, Col: 0}, BottomRight: diagram.Point{Row: 20, Col: 40}},
		{TopLeft: diagram.Point{Row: 2, Col: 2}, BottomRight: diagram.Point{Row: 10, Col: 20}},
		{TopLeft: diagram.Point{Row: 4, Col: 4}, BottomRight: diagram.Point{Row: 6, Col: 8}},
	}
	Hierarchy(boxes)
	Hierarchy(boxes)

	if boxes[2].Parent != 1 {
		t.Errorf("innermost parent = %d, want 1", boxes[2].Parent)
	}
	if len(boxes[0].Children) != 1 || boxes[0].Children[0] != 1 {
		t.Errorf("outer children = %v, want [1]", boxes[0].Children)
	}
	for i, b := range boxes {
		if b.HasParent && !boxes[b.Parent].ContainsBox(b) {
			t.Errorf("box %d is not strictly inside its parent", i)
		}
	}
}

func TestHorizontalArrows(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantCount int
		want      diagram.HorizontalArrow
	}{
		{"rightward", "A ──→ B", 1, diagram.HorizontalArrow{Row: 0, StartCol: 2, EndCol: 4, Rightward: true, ArrowChar: '→'}},
		{"leftward", "←──", 1, diagram.HorizontalArrow{Row: 0, StartCol: 0, EndCol: 2, Rightward: false, ArrowChar: '←'}},
		{"double headed", "←──→", 1, diagram.HorizontalArrow{Row: 0, StartCol: 0, EndCol: 3, ArrowChar: '←', TailChar: '→'}},
		{"double arrow glyph", "══⇒ x ─⇒", 2, diagram.HorizontalArrow{Row: 0, StartCol: 6, EndCol: 7, Rightward: true, ArrowChar: '⇒'}},
		{"no tip", "────", 0, diagram.HorizontalArrow{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arrows := HorizontalArrows(gridOf(tt.line))
			if len(arrows) != tt.wantCount {
				t.Fatalf("HorizontalArrows() found %d, want %d: %v", len(arrows), tt.wantCount, arrows)
			}
			if tt.wantCount > 0 && arrows[len(arrows)-1] != tt.want {
				t.Errorf("HorizontalArrows() = %+v, want %+v", arrows[len(arrows)-1], tt.want)
			}
		})
	}
}

func TestVerticalArrows(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		wantCount int
		want      diagram.VerticalArrow
	}{
		{"downward", []string{" │", " │", " ↓"}, 1, diagram.VerticalArrow{Col: 1, StartRow: 0, EndRow: 2, Downward: true, ArrowChar: '↓'}},
		{"upward", []string{"↑", "│"}, 1, diagram.VerticalArrow{Col: 0, StartRow: 0, EndRow: 1, Downward: false, ArrowChar: '↑'}},
		{"single tip", []string{"↓"}, 1, diagram.VerticalArrow{Col: 0, StartRow: 0, EndRow: 0, Downward: true, ArrowChar: '↓'}},
		{"plain line", []string{"┃", "┃"}, 1, diagram.VerticalArrow{Col: 0, StartRow: 0, EndRow: 1, Downward: true, ArrowChar: '┃'}},
		{"single line glyph", []string{" │ "}, 0, diagram.VerticalArrow{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arrows := VerticalArrows(gridOf(tt.lines...))
			if len(arrows) != tt.wantCount {
				t.Fatalf("VerticalArrows() found %d, want %d: %v", len(arrows), tt.wantCount, arrows)
			}
			if tt.wantCount > 0 && arrows[0] != tt.want {
				t.Errorf("VerticalArrows() = %+v, want %+v", arrows[0], tt.want)
			}
		})
	}
}

func TestDetectDropsBoxSides(t *testing.T) {
	inv := Detect(gridOf("┌────┐", "│ A  │", "│ B  │", "└────┘"))
	if len(inv.VerticalArrows) != 0 {
		t.Errorf("VerticalArrows = %v, want none (box sides)", inv.VerticalArrows)
	}
	if len(VerticalArrows(gridOf("┌────┐", "│ A  │", "│ B  │", "└────┘"))) != 2 {
		t.Error("VerticalArrows() should still report raw runs on box sides")
	}
}

func TestTextRows(t *testing.T) {
	g := gridOf("┌─────┐", "│ Box │", "│     │", "└─────┘")
	rows := TextRows(g, Boxes(g))
	if len(rows) != 1 {
		t.Fatalf("TextRows() found %d rows, want 1", len(rows))
	}
	want := diagram.TextRow{Row: 1, StartCol: 1, EndCol: 5, Content: " Box "}
	if rows[0] != want {
		t.Errorf("TextRows() = %+v, want %+v", rows[0], want)
	}
}

func TestTextRowsSkippedWhenNested(t *testing.T) {
	g := gridOf(nestedLines...)
	if rows := TextRows(g, Boxes(g)); rows != nil {
		t.Errorf("TextRows() = %v, want nil for nested block", rows)
	}
}

func TestLabels(t *testing.T) {
	g := gridOf(
		"┌─────┐",
		"│ API │",
		"└─────┘",
		"   ↓",
		"  yes",
		"",
		"",
		"",
		"far away",
	)
	inv := Detect(g)

	if len(inv.Labels) != 1 {
		t.Fatalf("Labels = %+v, want exactly one", inv.Labels)
	}
	l := inv.Labels[0]
	if l.Content != "yes" || l.Row != 4 || l.Col != 2 {
		t.Errorf("label = %+v, want yes at (4,2)", l)
	}
	if l.AttachedTo != diagram.ArrowAttachment(0) {
		t.Errorf("AttachedTo = %+v, want vertical arrow 0", l.AttachedTo)
	}
	if l.Offset != (diagram.Point{}) {
		t.Errorf("Offset = %v, want zero for arrow attachment", l.Offset)
	}
}

func TestLabelsAttachToBox(t *testing.T) {
	g := gridOf(
		"┌─────┐",
		"│ API │",
		"└─────┘",
		"  note x",
	)
	inv := Detect(g)
	if len(inv.Labels) != 1 {
		t.Fatalf("Labels = %+v, want one", inv.Labels)
	}
	l := inv.Labels[0]
	if l.AttachedTo != diagram.BoxAttachment(0) {
		t.Errorf("AttachedTo = %+v, want box 0", l.AttachedTo)
	}
	if l.Offset != (diagram.Point{Row: 2, Col: -1}) {
		t.Errorf("Offset = %v, want {2 -1}", l.Offset)
	}
}

func TestConnectionLinesStub(t *testing.T) {
	g := gridOf("┌─┐", "└─┘", " │", " └──┐", "    │")
	if lines := ConnectionLines(g, Detect(g)); lines != nil {
		t.Errorf("ConnectionLines() = %v, want nil", lines)
	}
}
