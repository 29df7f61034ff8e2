package markdown

import (
	"slices"
	"strings"

	"github.com/matzehuels/ascfix/pkg/diagram"
)

var (
	ignoreStart = []string{"<!-- ascfix:ignore -->", "<!-- ascfix-ignore-start -->"}
	ignoreEnd   = []string{"<!-- /ascfix:ignore -->", "<!-- ascfix-ignore-end -->"}
)

// DiagramBlock is a run of consecutive non-blank lines that may hold a
// diagram. StartLine is the 0-based index of its first line in the
// document.
type DiagramBlock struct {
	StartLine int      `json:"start_line"`
	Lines     []string `json:"lines"`
}

// EndLine returns the index one past the block's last line.
func (b DiagramBlock) EndLine() int { return b.StartLine + len(b.Lines) }

// LineKind classifies a document line for the scanner.
type LineKind int

const (
	NormalLine LineKind = iota
	FenceMarkerLine
	FencedLine
	IgnoreMarkerLine
	IgnoredLine
)

// ClassifyLines labels each line. Fences are paired as in [PairFences]: a
// run of three or more backticks or tildes opens a block, which closes on a
// bare run of the same character at least as long, or at the end of the
// document. Ignore markers take precedence over fences.
func ClassifyLines(lines []string) []LineKind {
	kinds := make([]LineKind, len(lines))
	visible := slices.Clone(lines)
	inIgnore := false
	for i, line := range lines {
		switch {
		case containsAny(line, ignoreStart):
			inIgnore = true
			kinds[i] = IgnoreMarkerLine
		case containsAny(line, ignoreEnd):
			inIgnore = false
			kinds[i] = IgnoreMarkerLine
		case inIgnore:
			kinds[i] = IgnoredLine
		default:
			continue
		}
		visible[i] = ""
	}

	for _, b := range PairFences(DetectFences(visible)) {
		end := len(lines)
		if b.Closing != nil {
			end = b.Closing.Line
			kinds[end] = FenceMarkerLine
		}
		kinds[b.Opening.Line] = FenceMarkerLine
		for i := b.Opening.Line + 1; i < end; i++ {
			if kinds[i] == NormalLine {
				kinds[i] = FencedLine
			}
		}
	}
	return kinds
}

func containsAny(line string, markers []string) bool {
	return slices.ContainsFunc(markers, func(m string) bool { return strings.Contains(line, m) })
}

// Scan returns the diagram candidates in content: runs of non-blank normal
// lines, ended by a blank line or any non-normal line, that contain at
// least one diagram glyph.
func Scan(content string) []DiagramBlock {
	lines, _ := SplitLines(content)
	return ScanLines(lines)
}

// ScanLines is [Scan] over pre-split lines.
func ScanLines(lines []string) []DiagramBlock {
	kinds := ClassifyLines(lines)

	var blocks []DiagramBlock
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		if b := (DiagramBlock{StartLine: start, Lines: lines[start:end]}); hasDiagramGlyph(b.Lines) {
			blocks = append(blocks, b)
		}
		start = -1
	}

	for i, line := range lines {
		if kinds[i] != NormalLine || strings.TrimSpace(line) == "" {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(lines))
	return blocks
}

func hasDiagramGlyph(lines []string) bool {
	for _, line := range lines {
		masked, _ := MaskProtected(line)
		if strings.ContainsFunc(masked, diagram.IsDiagramGlyph) {
			return true
		}
	}
	return false
}

// ReplaceBlock returns a copy of lines with b's lines swapped for
// newLines. Lines before and after the block are copied unchanged. The
// block may grow or shrink.
func ReplaceBlock(lines []string, b DiagramBlock, newLines []string) []string {
	if b.StartLine < 0 || b.EndLine() > len(lines) {
		return slices.Clone(lines)
	}
	out := make([]string, 0, len(lines)-len(b.Lines)+len(newLines))
	out = append(out, lines[:b.StartLine]...)
	out = append(out, newLines...)
	out = append(out, lines[b.EndLine():]...)
	return out
}
