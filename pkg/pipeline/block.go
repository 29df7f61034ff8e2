package pipeline

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/ascfix/pkg/diagram"
	"github.com/matzehuels/ascfix/pkg/diagram/detect"
	"github.com/matzehuels/ascfix/pkg/diagram/normalize"
	"github.com/matzehuels/ascfix/pkg/diagram/render"
	"github.com/matzehuels/ascfix/pkg/grid"
	"github.com/matzehuels/ascfix/pkg/markdown"
)

// RepairBlock runs the diagram stages over one block of lines and applies
// the safety gates. The returned report holds the replacement lines in
// After when the outcome is OutcomeRepaired.
func RepairBlock(lines []string, opts Options) BlockReport {
	rep := BlockReport{Before: lines, EndLine: len(lines)}
	rep.Outcome = repair(lines, opts, &rep)
	if rep.Outcome != OutcomeRepaired {
		rep.After = nil
	}
	return rep
}

func repair(lines []string, opts Options, rep *BlockReport) Outcome {
	maxLen := opts.MaxLineLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}
	for _, l := range lines {
		if utf8.RuneCountInString(l) > maxLen {
			return SkipLineTooLong
		}
		if opts.PreserveUnicode && hasWideRune(l) {
			return SkipWideRunes
		}
	}

	masked := make([]string, len(lines))
	spans := make([][]markdown.InlineCodeSpan, len(lines))
	for i, l := range lines {
		masked[i], spans[i] = markdown.MaskProtected(l)
	}

	g := grid.FromLines(masked)
	inv := detect.Detect(g)
	if len(inv.Boxes) == 0 {
		return SkipNoBoxes
	}

	norm, changes := normalize.Normalize(inv)
	rep.Changes = changes
	if len(norm.OverlappingBoxes()) > 0 {
		return SkipOverlap
	}

	out := render.RenderOntoGrid(g, norm)
	if opts.ValidateDiagrams && hasBrokenBorder(render.Validate(out, norm)) {
		return SkipInvalid
	}

	rendered := renderedLines(out, len(lines))
	if !sameText(masked, rendered) {
		return SkipTextChanged
	}

	after := make([]string, len(rendered))
	for i, l := range rendered {
		if i < len(lines) {
			if !spanCellsBlank(l, spans[i]) {
				return SkipTextChanged
			}
			l = markdown.RestoreInlineCode(l, spans[i])
			// Keep untouched lines byte for byte, trailing spaces included.
			if l == strings.TrimRightFunc(lines[i], unicode.IsSpace) {
				l = lines[i]
			}
		}
		after[i] = l
	}

	if slices.Equal(after, lines) {
		return OutcomeUnchanged
	}
	rep.After = after
	q := Quality(lines, after)
	rep.Quality = &q
	return OutcomeRepaired
}

// renderedLines returns the trimmed rows of g without the blank rows it
// grew past n.
func renderedLines(g *grid.Grid, n int) []string {
	lines := g.TrimmedLines()
	for len(lines) > n && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// widthCondition measures runes with East Asian ambiguous runes as narrow,
// whatever the locale. Box-drawing glyphs and arrows are ambiguous and must
// stay one cell wide.
var widthCondition = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

func hasWideRune(s string) bool {
	for _, r := range s {
		if widthCondition.RuneWidth(r) > 1 {
			return true
		}
	}
	return false
}

func hasBrokenBorder(issues []render.Issue) bool {
	for _, is := range issues {
		if is.Kind == render.BrokenBorder {
			return true
		}
	}
	return false
}

// sameText reports whether a and b hold the same multiset of characters
// once diagram glyphs and whitespace are ignored.
func sameText(a, b []string) bool {
	count := make(map[rune]int)
	for _, l := range a {
		for _, r := range l {
			if isText(r) {
				count[r]++
			}
		}
	}
	for _, l := range b {
		for _, r := range l {
			if isText(r) {
				count[r]--
			}
		}
	}
	for _, n := range count {
		if n != 0 {
			return false
		}
	}
	return true
}

func isText(r rune) bool {
	return !unicode.IsSpace(r) && !diagram.IsDiagramGlyph(r)
}

func spanCellsBlank(line string, spans []markdown.InlineCodeSpan) bool {
	runes := []rune(line)
	for _, s := range spans {
		for c := s.StartCol; c <= s.EndCol && c < len(runes); c++ {
			if runes[c] != ' ' {
				return false
			}
		}
	}
	return true
}
