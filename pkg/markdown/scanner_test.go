package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantStarts []int
		wantLens   []int
	}{
		{
			name:       "single diagram",
			content:    "┌─┐\n│ │\n└─┘",
			wantStarts: []int{0},
			wantLens:   []int{3},
		},
		{
			name:       "prose is not a candidate",
			content:    "Line 1\nLine 2\n\nLine 4",
			wantStarts: nil,
		},
		{
			name:       "blocks split on blank lines",
			content:    "intro\n\n┌─┐\n└─┘\n\n\ntext\nA → B\n",
			wantStarts: []int{2, 6},
			wantLens:   []int{2, 2},
		},
		{
			name:       "fenced code skipped",
			content:    "```\n┌─┐\n└─┘\n```\n\n→ x",
			wantStarts: []int{5},
			wantLens:   []int{1},
		},
		{
			name:       "tilde fence skipped",
			content:    "~~~text\n→\n~~~\n",
			wantStarts: nil,
		},
		{
			name:       "long backtick fence skipped",
			content:    "``````\n┌──┐\n│a │\n└──┘\n``````\n",
			wantStarts: nil,
		},
		{
			name:       "shorter run inside long fence",
			content:    "````\n```\n┌─┐\n└─┘\n````\n\n→ x",
			wantStarts: []int{6},
			wantLens:   []int{1},
		},
		{
			name:       "unclosed fence runs to end",
			content:    "```\n┌─┐\n└─┘\n",
			wantStarts: nil,
		},
		{
			name:       "inline triple backticks are prose",
			content:    "run ```x``` first\n→ next",
			wantStarts: []int{0},
			wantLens:   []int{2},
		},
		{
			name:       "fence marker ends block",
			content:    "a → b\n```\ncode\n```\nc → d",
			wantStarts: []int{0, 4},
			wantLens:   []int{1, 1},
		},
		{
			name:       "ignore region",
			content:    "<!-- ascfix:ignore -->\n┌─┐\n└─┘\n<!-- /ascfix:ignore -->\n\n┌┐\n└┘",
			wantStarts: []int{5},
			wantLens:   []int{2},
		},
		{
			name:       "ignore start end markers",
			content:    "<!-- ascfix-ignore-start -->\n→\n\n→\n<!-- ascfix-ignore-end -->",
			wantStarts: nil,
		},
		{
			name:       "glyph only in inline code",
			content:    "use `→` for arrows",
			wantStarts: nil,
		},
		{
			name:       "empty",
			content:    "",
			wantStarts: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Scan(tt.content)
			var starts, lens []int
			for _, b := range blocks {
				starts = append(starts, b.StartLine)
				lens = append(lens, len(b.Lines))
			}
			if !reflect.DeepEqual(starts, tt.wantStarts) {
				t.Errorf("Scan() starts = %v, want %v", starts, tt.wantStarts)
			}
			if tt.wantLens != nil && !reflect.DeepEqual(lens, tt.wantLens) {
				t.Errorf("Scan() lengths = %v, want %v", lens, tt.wantLens)
			}
		})
	}
}

func TestClassifyLinesLongFence(t *testing.T) {
	lines := []string{"``````", "┌──┐", "│a │", "└──┘", "``````"}
	want := []LineKind{FenceMarkerLine, FencedLine, FencedLine, FencedLine, FenceMarkerLine}
	if got := ClassifyLines(lines); !reflect.DeepEqual(got, want) {
		t.Errorf("ClassifyLines() = %v, want %v", got, want)
	}
	if blocks := ScanLines(lines); len(blocks) != 0 {
		t.Errorf("ScanLines() = %d blocks, want 0", len(blocks))
	}
}

func TestReplaceBlock(t *testing.T) {
	lines := []string{"keep  ", "┌┐", "└┘", "", "tail\t"}
	b := DiagramBlock{StartLine: 1, Lines: lines[1:3]}

	tests := []struct {
		name     string
		newLines []string
		want     []string
	}{
		{"same size", []string{"╔╗", "╚╝"}, []string{"keep  ", "╔╗", "╚╝", "", "tail\t"}},
		{"grows", []string{"┌─┐", "│ │", "└─┘"}, []string{"keep  ", "┌─┐", "│ │", "└─┘", "", "tail\t"}},
		{"shrinks", []string{"x"}, []string{"keep  ", "x", "", "tail\t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReplaceBlock(lines, b, tt.newLines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReplaceBlock() = %q, want %q", got, tt.want)
			}
		})
	}
	if lines[1] != "┌┐" {
		t.Error("ReplaceBlock mutated its input")
	}
}

func TestReplaceBlockOutOfRange(t *testing.T) {
	lines := []string{"a"}
	got := ReplaceBlock(lines, DiagramBlock{StartLine: 3, Lines: []string{"x"}}, []string{"y"})
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("ReplaceBlock() = %q, want input unchanged", got)
	}
}

func TestSplitJoinLines(t *testing.T) {
	for _, content := range []string{"", "a", "a\n", "a\n\nb", "a\r\nb\n", "\n"} {
		lines, trailing := SplitLines(content)
		if got := JoinLines(lines, trailing); got != content {
			t.Errorf("JoinLines(SplitLines(%q)) = %q", content, got)
		}
	}
}

func TestInlineCode(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantMasked string
		wantSpans  int
	}{
		{"none", "plain │ text", "plain │ text", 0},
		{"one span", "a `┌─┐` b", "a       b", 1},
		{"two spans", "`x` and `y`", "    and    ", 2},
		{"escaped tick", "a \\`b` c", "a \\`b` c", 0},
		{"unbalanced", "a `b c", "a `b c", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked, spans := MaskInlineCode(tt.line)
			if masked != tt.wantMasked {
				t.Errorf("MaskInlineCode() = %q, want %q", masked, tt.wantMasked)
			}
			if len(spans) != tt.wantSpans {
				t.Errorf("MaskInlineCode() spans = %d, want %d", len(spans), tt.wantSpans)
			}
			if got := RestoreInlineCode(masked, spans); got != tt.line {
				t.Errorf("RestoreInlineCode() = %q, want %q", got, tt.line)
			}
		})
	}
}

func TestRestoreInlineCodeAfterTrim(t *testing.T) {
	masked, spans := MaskInlineCode("x `code`")
	trimmed := strings.TrimRight(masked, " ")
	if got := RestoreInlineCode(trimmed, spans); got != "x `code`" {
		t.Errorf("RestoreInlineCode() = %q, want %q", got, "x `code`")
	}
}
