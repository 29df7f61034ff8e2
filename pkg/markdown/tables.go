package markdown

import "strings"

// HasWrappedCells reports whether content holds a table row that continues
// the row above it.
func HasWrappedCells(content string) bool {
	lines, _ := SplitLines(content)
	kinds := ClassifyLines(lines)
	for i := 1; i < len(lines); i++ {
		if kinds[i] == NormalLine && kinds[i-1] == NormalLine && continues(lines[i-1], lines[i]) {
			return true
		}
	}
	return false
}

// UnwrapTables joins continuation rows into the row above them. Each
// non-empty continuation cell is appended to the matching cell with a
// single space, and the joined row is rewritten as "| a | b |". Rows in
// fenced code and ignore regions are left alone.
func UnwrapTables(content string) string {
	lines, trailing := SplitLines(content)
	kinds := ClassifyLines(lines)

	out := make([]string, 0, len(lines))
	prevKind := LineKind(-1)
	for i, line := range lines {
		if n := len(out); n > 0 && kinds[i] == NormalLine && prevKind == NormalLine && continues(out[n-1], line) {
			out[n-1] = joinRows(out[n-1], line)
			continue
		}
		out = append(out, line)
		prevKind = kinds[i]
	}
	return JoinLines(out, trailing)
}

// continues reports whether row wraps onto prev: both are table rows with
// the same cell count, prev is not a separator, and row has an empty first
// cell plus at least one non-empty cell.
func continues(prev, row string) bool {
	if !isTableRow(prev) || !isTableRow(row) || isSeparatorRow(prev) || isSeparatorRow(row) {
		return false
	}
	p, c := splitCells(prev), splitCells(row)
	if len(p) != len(c) || len(c) < 2 || strings.TrimSpace(c[0]) != "" {
		return false
	}
	for _, cell := range c[1:] {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}

func joinRows(prev, row string) string {
	p, c := splitCells(prev), splitCells(row)
	cells := make([]string, len(p))
	for i := range p {
		a, b := strings.TrimSpace(p[i]), strings.TrimSpace(c[i])
		switch {
		case b == "":
			cells[i] = a
		case a == "":
			cells[i] = b
		default:
			cells[i] = a + " " + b
		}
	}
	indent := prev[:len(prev)-len(strings.TrimLeft(prev, " "))]
	return indent + "| " + strings.Join(cells, " | ") + " |"
}

func isTableRow(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= 2 && strings.HasPrefix(t, "|") && strings.HasSuffix(t, "|")
}

func isSeparatorRow(line string) bool {
	t := strings.Trim(strings.TrimSpace(line), "|")
	return t != "" && strings.Trim(t, "-:| ") == "" && strings.Contains(t, "-")
}

// splitCells returns the cells between the outer pipes. Pipes inside
// inline code or a link do not separate cells.
func splitCells(line string) []string {
	t := strings.TrimSpace(line)
	t = t[1 : len(t)-1]
	masked, _ := MaskProtected(t)
	runes, mrunes := []rune(t), []rune(masked)
	var cells []string
	start := 0
	for i, r := range mrunes {
		if r == '|' {
			cells = append(cells, string(runes[start:i]))
			start = i + 1
		}
	}
	return append(cells, string(runes[start:]))
}
