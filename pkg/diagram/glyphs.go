package diagram

import "fmt"

// BoxStyle selects the glyph set a box is drawn with.
type BoxStyle int

const (
	Single BoxStyle = iota
	Double
	Rounded
)

// Glyphs is the six-glyph table of a box style.
type Glyphs struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

var styleGlyphs = map[BoxStyle]Glyphs{
	Single:  {Horizontal: '─', Vertical: '│', TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘'},
	Double:  {Horizontal: '═', Vertical: '║', TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝'},
	Rounded: {Horizontal: '─', Vertical: '│', TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯'},
}

// Glyphs returns the glyph table for s. Unknown styles use the Single table.
func (s BoxStyle) Glyphs() Glyphs {
	if g, ok := styleGlyphs[s]; ok {
		return g
	}
	return styleGlyphs[Single]
}

func (s BoxStyle) String() string {
	switch s {
	case Double:
		return "double"
	case Rounded:
		return "rounded"
	default:
		return "single"
	}
}

func (s BoxStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *BoxStyle) UnmarshalText(b []byte) error {
	style, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = style
	return nil
}

// ParseStyle parses "single", "double" or "rounded".
func ParseStyle(name string) (BoxStyle, error) {
	switch name {
	case "single", "":
		return Single, nil
	case "double":
		return Double, nil
	case "rounded":
		return Rounded, nil
	}
	return Single, fmt.Errorf("unknown box style %q", name)
}

// Has reports whether r is one of the style's six glyphs.
func (g Glyphs) Has(r rune) bool {
	switch r {
	case g.Horizontal, g.Vertical, g.TopLeft, g.TopRight, g.BottomLeft, g.BottomRight:
		return true
	}
	return false
}

// StyleFromCorner infers the style from a top-left corner glyph. Unknown
// glyphs map to Single.
func StyleFromCorner(r rune) BoxStyle {
	switch r {
	case '╔':
		return Double
	case '╭':
		return Rounded
	default:
		return Single
	}
}

// IsBoxChar reports whether r takes part in box flood fill.
func IsBoxChar(r rune) bool {
	switch r {
	case '─', '│', '┌', '┐', '└', '┘',
		'═', '║', '╔', '╗', '╚', '╝',
		'╭', '╮', '╰', '╯',
		'├', '┤', '┼', '┬', '┴', '┃':
		return true
	}
	return false
}

// IsCorner reports whether r is a corner glyph of any style.
func IsCorner(r rune) bool {
	switch r {
	case '┌', '┐', '└', '┘', '╔', '╗', '╚', '╝', '╭', '╮', '╰', '╯':
		return true
	}
	return false
}

// IsJunction reports whether r is a T or cross junction glyph.
func IsJunction(r rune) bool {
	switch r {
	case '├', '┤', '┼', '┬', '┴':
		return true
	}
	return false
}

// IsHorizontalTip reports whether r is a horizontal arrow tip.
func IsHorizontalTip(r rune) bool {
	switch r {
	case '→', '←', '⇒', '⇐', '⟶', '⟹':
		return true
	}
	return false
}

// IsLeftTip reports whether r points left.
func IsLeftTip(r rune) bool {
	return r == '←' || r == '⇐'
}

// IsHorizontalArrowChar reports whether r can appear in a horizontal arrow run.
func IsHorizontalArrowChar(r rune) bool {
	return r == '─' || IsHorizontalTip(r)
}

// IsVerticalTip reports whether r is a vertical arrow tip.
func IsVerticalTip(r rune) bool {
	switch r {
	case '↓', '↑', '⇓', '⇑':
		return true
	}
	return false
}

// IsUpTip reports whether r points up.
func IsUpTip(r rune) bool {
	return r == '↑' || r == '⇑'
}

// IsVerticalArrowChar reports whether r can appear in a vertical arrow run.
func IsVerticalArrowChar(r rune) bool {
	return r == '│' || r == '┃' || IsVerticalTip(r)
}

// IsArrowTip reports whether r is any arrow tip.
func IsArrowTip(r rune) bool {
	return IsHorizontalTip(r) || IsVerticalTip(r)
}

// IsDiagramGlyph reports whether r is drawn by the renderer: box glyphs,
// junctions, arrow shafts and tips.
func IsDiagramGlyph(r rune) bool {
	return IsBoxChar(r) || IsArrowTip(r)
}
