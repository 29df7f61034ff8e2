package markdown

import "strings"

// SplitLines splits content on "\n". A trailing newline does not produce an
// empty last line; it is reported separately so [JoinLines] can restore it.
func SplitLines(content string) (lines []string, trailingNewline bool) {
	if content == "" {
		return nil, false
	}
	trailingNewline = strings.HasSuffix(content, "\n")
	lines = strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	return lines, trailingNewline
}

// JoinLines is the inverse of [SplitLines].
func JoinLines(lines []string, trailingNewline bool) string {
	s := strings.Join(lines, "\n")
	if trailingNewline {
		s += "\n"
	}
	return s
}
