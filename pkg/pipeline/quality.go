package pipeline

import (
	"fmt"
	"math"
	"unicode"

	"github.com/matzehuels/ascfix/pkg/diagram"
)

// QualityIssueKind classifies a problem found by [Quality].
type QualityIssueKind string

const (
	// IssueTextCorruption marks a glyph written between two letters where
	// the input had something else.
	IssueTextCorruption QualityIssueKind = "text_corruption"
	// IssueDataLoss marks text characters of the input missing from the
	// output.
	IssueDataLoss QualityIssueKind = "data_loss"
	// IssueMalformedBox marks a line whose top or bottom corners do not pair.
	IssueMalformedBox QualityIssueKind = "malformed_box"
)

// QualityIssue is one problem in a before/after comparison. Line and Col
// are 0-based positions in the output.
type QualityIssue struct {
	Kind    QualityIssueKind `json:"kind"`
	Line    int              `json:"line"`
	Col     int              `json:"col"`
	Message string           `json:"message"`
}

// QualityMetrics are the measurements behind a [QualityReport]. Ratios
// run from 0 to 1.
type QualityMetrics struct {
	TextPreservation      float64 `json:"text_preservation"`
	StructurePreservation float64 `json:"structure_preservation"`
	VisualConsistency     float64 `json:"visual_consistency"`
	LineCountDelta        int     `json:"line_count_delta"`
	TextCorruption        int     `json:"text_corruption"`
	DataLoss              int     `json:"data_loss"`
}

// QualityReport scores how faithfully after reproduces before.
type QualityReport struct {
	Score   float64        `json:"score"`
	Metrics QualityMetrics `json:"metrics"`
	Issues  []QualityIssue `json:"issues,omitempty"`
}

// Acceptable reports whether the score is at least 0.8.
func (q QualityReport) Acceptable() bool { return q.Score >= 0.8 }

// Quality compares a block before and after repair. Text preservation is
// the share of the input's text runes (diagram glyphs and whitespace
// excluded) still present; structure preservation compares corner counts;
// visual consistency drops by 0.1 for each output line whose corners do
// not pair. The score multiplies the three ratios and subtracts 0.2 per
// corrupted cell and 0.02 per added or removed line, capped at 0.1.
func Quality(before, after []string) QualityReport {
	var q QualityReport
	m := &q.Metrics

	in, out := textRunes(before), textRunes(after)
	total, kept := 0, 0
	for r, n := range in {
		total += n
		kept += min(n, out[r])
	}
	m.TextPreservation = ratio(kept, total)
	if m.DataLoss = total - kept; m.DataLoss > 0 {
		q.Issues = append(q.Issues, QualityIssue{
			Kind:    IssueDataLoss,
			Message: fmt.Sprintf("%d of %d text characters missing", m.DataLoss, total),
		})
	}

	cb, ca := countCorners(before), countCorners(after)
	m.StructurePreservation = ratio(min(cb, ca), max(cb, ca))

	m.VisualConsistency = 1
	for i, l := range after {
		if col, ok := unpairedCorner(l); ok {
			m.VisualConsistency = math.Max(0, m.VisualConsistency-0.1)
			q.Issues = append(q.Issues, QualityIssue{
				Kind:    IssueMalformedBox,
				Line:    i,
				Col:     col,
				Message: "corners on this line do not pair",
			})
		}
	}

	for i, l := range after {
		var prev []rune
		if i < len(before) {
			prev = []rune(before[i])
		}
		runes := []rune(l)
		for c := 1; c+1 < len(runes); c++ {
			r := runes[c]
			if !diagram.IsArrowTip(r) && r != '│' {
				continue
			}
			if c < len(prev) && prev[c] == r {
				continue
			}
			if unicode.IsLetter(runes[c-1]) && unicode.IsLetter(runes[c+1]) {
				m.TextCorruption++
				q.Issues = append(q.Issues, QualityIssue{
					Kind:    IssueTextCorruption,
					Line:    i,
					Col:     c,
					Message: fmt.Sprintf("%q written inside text", r),
				})
			}
		}
	}

	m.LineCountDelta = len(after) - len(before)

	score := m.TextPreservation * m.StructurePreservation * m.VisualConsistency
	score -= 0.2 * float64(m.TextCorruption)
	score -= math.Min(0.1, 0.02*math.Abs(float64(m.LineCountDelta)))
	q.Score = math.Max(0, math.Min(1, score))
	return q
}

func textRunes(lines []string) map[rune]int {
	count := make(map[rune]int)
	for _, l := range lines {
		for _, r := range l {
			if isText(r) {
				count[r]++
			}
		}
	}
	return count
}

func countCorners(lines []string) int {
	n := 0
	for _, l := range lines {
		for _, r := range l {
			if diagram.IsCorner(r) {
				n++
			}
		}
	}
	return n
}

// unpairedCorner returns the column of the first corner on line that has
// no partner: every opening corner (┌ ╔ ╭ and └ ╚ ╰) must be followed by a
// closing one before the next opening corner.
func unpairedCorner(line string) (int, bool) {
	open := -1
	for c, r := range []rune(line) {
		switch r {
		case '┌', '╔', '╭', '└', '╚', '╰':
			if open >= 0 {
				return open, true
			}
			open = c
		case '┐', '╗', '╮', '┘', '╝', '╯':
			if open < 0 {
				return c, true
			}
			open = -1
		}
	}
	return open, open >= 0
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 1
	}
	return float64(n) / float64(d)
}
