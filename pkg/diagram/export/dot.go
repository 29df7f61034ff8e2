package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ascfix/pkg/diagram"
)

// ToDOT converts inv to Graphviz DOT. Each box becomes a node labelled with
// its first text row, with its grid rectangle as the tooltip. Arrows that
// run between two boxes become edges, and vertical-arrow labels become edge
// labels. Nesting is drawn as a dashed, headless edge from parent to child.
func ToDOT(inv diagram.Inventory) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, fontname=\"monospace\", fontsize=14];\n")
	buf.WriteString("\n")

	for i, b := range inv.Boxes {
		attrs := []string{
			fmt.Sprintf("label=%q", boxText(inv, i)),
			fmt.Sprintf("tooltip=\"(%d,%d)-(%d,%d)\"", b.Top(), b.Left(), b.Bottom(), b.Right()),
		}
		switch b.Style {
		case diagram.Rounded:
			attrs = append(attrs, "style=rounded")
		case diagram.Double:
			attrs = append(attrs, "peripheries=2")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(i), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i, b := range inv.Boxes {
		for _, c := range b.Children {
			fmt.Fprintf(&buf, "  %s -> %s [style=dashed, arrowhead=none];\n", nodeID(i), nodeID(c))
		}
	}
	for _, a := range inv.HorizontalArrows {
		from, to, ok := horizontalEnds(inv, a)
		if !ok {
			continue
		}
		attrs := ""
		if a.TailChar != 0 {
			attrs = " [dir=both]"
		}
		fmt.Fprintf(&buf, "  %s -> %s%s;\n", nodeID(from), nodeID(to), attrs)
	}
	for i, a := range inv.VerticalArrows {
		from, to, ok := verticalEnds(inv, a)
		if !ok {
			continue
		}
		var attrs []string
		if label := arrowLabel(inv, i); label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", label))
		}
		if !a.HasTip() {
			attrs = append(attrs, "arrowhead=none")
		} else if a.TailChar != 0 {
			attrs = append(attrs, "dir=both")
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %s -> %s [%s];\n", nodeID(from), nodeID(to), strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(from), nodeID(to))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return fmt.Sprintf("box%d", i) }

func boxText(inv diagram.Inventory, i int) string {
	for _, t := range inv.TextRows {
		if j, ok := inv.BoxForTextRow(t); ok && j == i {
			return strings.TrimSpace(t.Content)
		}
	}
	return nodeID(i)
}

func arrowLabel(inv diagram.Inventory, i int) string {
	var parts []string
	for _, l := range inv.Labels {
		if l.AttachedTo == diagram.ArrowAttachment(i) {
			parts = append(parts, l.Content)
		}
	}
	return strings.Join(parts, " ")
}

// horizontalEnds finds the boxes an arrow leaves and enters: the nearest box
// ending left of the run and the nearest box starting right of it, both
// spanning the arrow's row.
func horizontalEnds(inv diagram.Inventory, a diagram.HorizontalArrow) (from, to int, ok bool) {
	leftIdx, rightIdx := -1, -1
	for i, b := range inv.Boxes {
		if a.Row < b.Top() || a.Row > b.Bottom() {
			continue
		}
		if b.Right() < a.StartCol && (leftIdx < 0 || b.Right() > inv.Boxes[leftIdx].Right()) {
			leftIdx = i
		}
		if b.Left() > a.EndCol && (rightIdx < 0 || b.Left() < inv.Boxes[rightIdx].Left()) {
			rightIdx = i
		}
	}
	if leftIdx < 0 || rightIdx < 0 {
		return 0, 0, false
	}
	if a.Rightward {
		return leftIdx, rightIdx, true
	}
	return rightIdx, leftIdx, true
}

func verticalEnds(inv diagram.Inventory, a diagram.VerticalArrow) (from, to int, ok bool) {
	above, below := -1, -1
	for i, b := range inv.Boxes {
		if a.Col < b.Left() || a.Col > b.Right() {
			continue
		}
		if b.Bottom() < a.StartRow && (above < 0 || b.Bottom() > inv.Boxes[above].Bottom()) {
			above = i
		}
		if b.Top() > a.EndRow && (below < 0 || b.Top() < inv.Boxes[below].Top()) {
			below = i
		}
	}
	if above < 0 || below < 0 {
		return 0, 0, false
	}
	if a.Downward {
		return above, below, true
	}
	return below, above, true
}

// RenderSVG lays out a DOT graph and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
