package markdown

import "strings"

// ListItem is one line that opens a list item.
type ListItem struct {
	Line    int    `json:"line"`
	Indent  int    `json:"indent"`
	Level   int    `json:"level"`
	Marker  string `json:"marker"`
	Ordered bool   `json:"ordered,omitempty"`
	Task    bool   `json:"task,omitempty"`
	Checked bool   `json:"checked,omitempty"`
	Content string `json:"content"`

	// gap is the number of spaces between the marker and the content.
	gap int
}

// List is a run of items, with their continuation lines and single blank
// lines between items, outside fenced code. EndLine is the index of the
// last line that belongs to the list.
type List struct {
	StartLine int        `json:"start_line"`
	EndLine   int        `json:"end_line"`
	Ordered   bool       `json:"ordered"`
	Items     []ListItem `json:"items"`
}

// parseListItem recognizes "- ", "* " and "+ " bullets, "1." and "1)"
// ordered markers followed by a space, and the task boxes "[ ]", "[x]" and
// "[X]" after a bullet. Thematic breaks such as "* * *" are not items.
func parseListItem(line string) (ListItem, bool) {
	indent, rest := leadingIndent(line)
	if rest == "" || isThematicBreak(rest) {
		return ListItem{}, false
	}

	var it ListItem
	switch rest[0] {
	case '-', '*', '+':
		it.Marker = rest[:1]
	default:
		n := 0
		for n < len(rest) && n < 9 && rest[n] >= '0' && rest[n] <= '9' {
			n++
		}
		if n == 0 || n >= len(rest) || (rest[n] != '.' && rest[n] != ')') {
			return ListItem{}, false
		}
		it.Marker = rest[:n+1]
		it.Ordered = true
	}

	after := rest[len(it.Marker):]
	content := strings.TrimLeft(after, " ")
	if len(content) == len(after) {
		return ListItem{}, false
	}
	it.Indent = indent
	it.gap = max(1, min(len(after)-len(content), 4))

	if !it.Ordered {
		for _, box := range []string{"[ ] ", "[x] ", "[X] "} {
			if strings.HasPrefix(content, box) {
				it.Task = true
				it.Checked = box != "[ ] "
				content = content[len(box):]
				break
			}
		}
	}
	it.Content = content
	return it, true
}

// leadingIndent returns the indentation width of line, with tabs advancing
// to the next multiple of four, and the rest of the line.
func leadingIndent(line string) (int, string) {
	width := 0
	for i, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4 - width%4
		default:
			return width, line[i:]
		}
	}
	return width, ""
}

func isThematicBreak(s string) bool {
	c := s[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case c:
			n++
		case ' ', '\t':
		default:
			return false
		}
	}
	return n >= 3
}

// listFrame is one open nesting level: the source indent of its last item,
// the indent that item is rewritten to and the width of its marker plus gap.
type listFrame struct {
	indent, out, width int
}

// listLevels assigns nesting levels. The first level whose source indent
// is at least the item's indent takes it; deeper levels are closed. An item
// indented past every open level opens a new one.
type listLevels []listFrame

func (s *listLevels) place(it *ListItem) int {
	level := len(*s)
	for i, f := range *s {
		if it.Indent <= f.indent {
			level = i
			break
		}
	}
	*s = (*s)[:level]
	out := 0
	if level > 0 {
		p := (*s)[level-1]
		out = p.out + p.width
	}
	*s = append(*s, listFrame{indent: it.Indent, out: out, width: len(it.Marker) + it.gap})
	it.Level = level
	return out
}

func (s *listLevels) reset() { *s = (*s)[:0] }

// listCandidates marks the lines that may hold list items: normal lines
// outside diagram blocks.
func listCandidates(lines []string) []bool {
	kinds := ClassifyLines(lines)
	ok := make([]bool, len(lines))
	for i, k := range kinds {
		ok[i] = k == NormalLine
	}
	for _, b := range ScanLines(lines) {
		for i := b.StartLine; i < b.EndLine(); i++ {
			ok[i] = false
		}
	}
	return ok
}

// DetectLists returns the lists in content. Items in fenced code, ignore
// regions and diagram blocks are skipped.
func DetectLists(content string) []List {
	lines, _ := SplitLines(content)
	ok := listCandidates(lines)

	var (
		lists  []List
		cur    *List
		levels listLevels
	)
	closeList := func() {
		if cur != nil {
			lists = append(lists, *cur)
			cur = nil
		}
		levels.reset()
	}

	for i, line := range lines {
		if !ok[i] {
			closeList()
			continue
		}
		if it, isItem := parseListItem(line); isItem {
			it.Line = i
			levels.place(&it)
			if cur == nil {
				cur = &List{StartLine: i, Ordered: it.Ordered}
			}
			cur.Items = append(cur.Items, it)
			cur.EndLine = i
			continue
		}
		if cur == nil {
			continue
		}
		blank := strings.TrimSpace(line) == ""
		switch {
		case blank && i+1 < len(lines) && ok[i+1] && isItemLine(lines[i+1]):
		case !blank && startsIndented(line):
			cur.EndLine = i
		default:
			closeList()
		}
	}
	closeList()
	return lists
}

func isItemLine(line string) bool {
	_, ok := parseListItem(line)
	return ok
}

func startsIndented(line string) bool {
	n, _ := leadingIndent(line)
	return n >= 2
}

// NormalizeLists rewrites the indentation of list items so that each
// nesting level sits under the content of its parent item: two spaces per
// level below a bullet, the marker width below an ordered item. Only the
// indentation changes. Levels restart at a line that is neither an item,
// blank nor indented. Lines in fenced code, ignore regions and diagram
// blocks are left alone. It returns the new content and the number of items
// rewritten.
func NormalizeLists(content string) (string, int) {
	lines, trailing := SplitLines(content)
	ok := listCandidates(lines)

	var levels listLevels
	changed := 0
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line
		if !ok[i] {
			levels.reset()
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		it, isItem := parseListItem(line)
		if !isItem {
			if !startsIndented(line) {
				levels.reset()
			}
			continue
		}
		if fixed := strings.Repeat(" ", levels.place(&it)) + strings.TrimLeft(line, " \t"); fixed != line {
			out[i] = fixed
			changed++
		}
	}
	return JoinLines(out, trailing), changed
}
