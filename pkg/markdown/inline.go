package markdown

// InlineCodeSpan is a backtick-delimited span on one line. StartCol and
// EndCol are rune columns of the opening and closing backticks; Content
// holds the span including both backticks.
type InlineCodeSpan struct {
	StartCol int    `json:"start_col"`
	EndCol   int    `json:"end_col"`
	Content  string `json:"content"`
}

// InlineCodeSpans finds the closed inline code spans on line. A backtick
// preceded by a backslash neither opens nor closes a span, and an opening
// backtick with no partner is left as text.
func InlineCodeSpans(line string) []InlineCodeSpan {
	runes := []rune(line)
	var spans []InlineCodeSpan
	for i := 0; i < len(runes); i++ {
		if !isTick(runes, i) {
			continue
		}
		for j := i + 1; j < len(runes); j++ {
			if isTick(runes, j) {
				spans = append(spans, InlineCodeSpan{StartCol: i, EndCol: j, Content: string(runes[i : j+1])})
				i = j
				break
			}
		}
	}
	return spans
}

func isTick(runes []rune, i int) bool {
	return runes[i] == '`' && (i == 0 || runes[i-1] != '\\')
}

// MaskInlineCode replaces every inline code span on line, backticks
// included, with spaces. Column positions are preserved.
func MaskInlineCode(line string) (string, []InlineCodeSpan) {
	spans := InlineCodeSpans(line)
	if len(spans) == 0 {
		return line, nil
	}
	runes := []rune(line)
	for _, s := range spans {
		for c := s.StartCol; c <= s.EndCol && c < len(runes); c++ {
			runes[c] = ' '
		}
	}
	return string(runes), spans
}

// RestoreInlineCode writes spans back at their columns, padding line with
// spaces if it was trimmed shorter than a span.
func RestoreInlineCode(line string, spans []InlineCodeSpan) string {
	if len(spans) == 0 {
		return line
	}
	runes := []rune(line)
	for _, s := range spans {
		content := []rune(s.Content)
		for len(runes) < s.StartCol+len(content) {
			runes = append(runes, ' ')
		}
		copy(runes[s.StartCol:], content)
	}
	return string(runes)
}
