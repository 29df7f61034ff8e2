package export

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/matzehuels/ascfix/pkg/diagram"
)

const (
	cellWidth  = 8.0
	cellHeight = 16.0
	fontSize   = 12.0
	arrowSize  = 4.0
)

// RenderPNG paints inv as a PNG image. Every grid cell is cellWidth by
// cellHeight pixels before scaling; a scale of 2 suits high-DPI displays.
func RenderPNG(inv diagram.Inventory, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	h, w := inv.Bounds()
	cw, ch := cellWidth*scale, cellHeight*scale
	dc := gg.NewContext(int(math.Ceil(float64(max(w, 1))*cw)), int(math.Ceil(float64(max(h, 1))*ch)))
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	dc.SetLineWidth(scale)

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	p := painter{dc: dc, cw: cw, ch: ch}
	for _, b := range inv.Boxes {
		p.box(b)
	}
	for _, t := range inv.TextRows {
		p.text(t.Row, t.StartCol, t.EndCol, t.Content)
	}
	for _, a := range inv.HorizontalArrows {
		p.line(diagram.Point{Row: a.Row, Col: a.Tail()}, diagram.Point{Row: a.Row, Col: a.Head()}, true, a.TailChar != 0)
	}
	for _, a := range inv.VerticalArrows {
		p.line(diagram.Point{Row: a.Tail(), Col: a.Col}, diagram.Point{Row: a.Head(), Col: a.Col}, a.HasTip(), a.TailChar != 0)
	}
	for _, c := range inv.ConnectionLines {
		for _, s := range c.Segments {
			from, to := s.Endpoints()
			p.line(from, to, false, false)
		}
	}
	for _, l := range inv.Labels {
		p.text(l.Row, l.Col, l.Col+l.Len()-1, l.Content)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type painter struct {
	dc     *gg.Context
	cw, ch float64
}

func (p painter) center(pt diagram.Point) (x, y float64) {
	return (float64(pt.Col) + 0.5) * p.cw, (float64(pt.Row) + 0.5) * p.ch
}

func (p painter) box(b diagram.Box) {
	x, y := p.center(b.TopLeft)
	w, h := float64(b.Width()-1)*p.cw, float64(b.Height()-1)*p.ch
	switch b.Style {
	case diagram.Rounded:
		p.dc.DrawRoundedRectangle(x, y, w, h, p.cw/2)
	case diagram.Double:
		inset := p.cw / 4
		p.dc.DrawRectangle(x-inset, y-inset, w+2*inset, h+2*inset)
		p.dc.Stroke()
		p.dc.DrawRectangle(x+inset, y+inset, w-2*inset, h-2*inset)
	default:
		p.dc.DrawRectangle(x, y, w, h)
	}
	p.dc.Stroke()
}

// text draws one rune per cell so columns line up with the source grid.
func (p painter) text(row, startCol, endCol int, s string) {
	col := startCol
	for _, r := range s {
		if col > endCol {
			return
		}
		if r != ' ' {
			x, y := p.center(diagram.Point{Row: row, Col: col})
			p.dc.DrawStringAnchored(string(r), x, y, 0.5, 0.35)
		}
		col++
	}
}

func (p painter) line(from, to diagram.Point, head, tail bool) {
	x1, y1 := p.center(from)
	x2, y2 := p.center(to)
	p.dc.DrawLine(x1, y1, x2, y2)
	p.dc.Stroke()
	if head {
		p.arrowhead(x1, y1, x2, y2)
	}
	if tail {
		p.arrowhead(x2, y2, x1, y1)
	}
}

func (p painter) arrowhead(fromX, fromY, tipX, tipY float64) {
	angle := math.Atan2(tipY-fromY, tipX-fromX)
	size := arrowSize * p.cw / cellWidth
	p.dc.MoveTo(tipX, tipY)
	p.dc.LineTo(tipX-size*math.Cos(angle-math.Pi/6), tipY-size*math.Sin(angle-math.Pi/6))
	p.dc.LineTo(tipX-size*math.Cos(angle+math.Pi/6), tipY-size*math.Sin(angle+math.Pi/6))
	p.dc.ClosePath()
	p.dc.Fill()
}
