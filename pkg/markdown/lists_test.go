package markdown

import "testing"

func TestParseListItem(t *testing.T) {
	tests := []struct {
		line    string
		ok      bool
		marker  string
		indent  int
		task    bool
		checked bool
		content string
	}{
		{"- item", true, "-", 0, false, false, "item"},
		{"* item", true, "*", 0, false, false, "item"},
		{"  + item", true, "+", 2, false, false, "item"},
		{"\t- item", true, "-", 4, false, false, "item"},
		{"1. first", true, "1.", 0, false, false, "first"},
		{"12) twelfth", true, "12)", 0, false, false, "twelfth"},
		{"- [ ] todo", true, "-", 0, true, false, "todo"},
		{"- [x] done", true, "-", 0, true, true, "done"},
		{"* [X] done", true, "*", 0, true, true, "done"},
		{"1. [x] not a box", true, "1.", 0, false, false, "[x] not a box"},
		{"-item", false, "", 0, false, false, ""},
		{"3.14 is pi", false, "", 0, false, false, ""},
		{"**bold**", false, "", 0, false, false, ""},
		{"* * *", false, "", 0, false, false, ""},
		{"- - -", false, "", 0, false, false, ""},
		{"---", false, "", 0, false, false, ""},
		{"-", false, "", 0, false, false, ""},
		{"", false, "", 0, false, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			it, ok := parseListItem(tt.line)
			if ok != tt.ok {
				t.Fatalf("parseListItem(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if !ok {
				return
			}
			if it.Marker != tt.marker || it.Indent != tt.indent || it.Task != tt.task || it.Checked != tt.checked || it.Content != tt.content {
				t.Errorf("parseListItem(%q) = %+v", tt.line, it)
			}
		})
	}
}

func TestNormalizeLists(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		changed int
	}{
		{
			name:    "four spaces become two",
			content: "- Item 1\n    - Nested item\n- Item 2",
			want:    "- Item 1\n  - Nested item\n- Item 2",
			changed: 1,
		},
		{
			name:    "deep nesting",
			content: "- Level 1\n    - Level 2\n        - Level 3\n- Back to 1",
			want:    "- Level 1\n  - Level 2\n    - Level 3\n- Back to 1",
			changed: 2,
		},
		{
			name:    "already normalized",
			content: "- Item 1\n  - Nested\n  - Another nested\n- Item 2\n",
			want:    "- Item 1\n  - Nested\n  - Another nested\n- Item 2\n",
		},
		{
			name:    "mixed two and four",
			content: "- Item 1\n  - Two space\n    - Four space\n- Item 2",
			want:    "- Item 1\n  - Two space\n    - Four space\n- Item 2",
		},
		{
			name:    "indented top level",
			content: "   * a\n   * b",
			want:    "* a\n* b",
			changed: 2,
		},
		{
			name:    "nested under ordered item",
			content: "1. first\n    - detail\n2. second",
			want:    "1. first\n   - detail\n2. second",
			changed: 1,
		},
		{
			name:    "tab indent",
			content: "- a\n\t- b",
			want:    "- a\n  - b",
			changed: 1,
		},
		{
			name:    "task box kept",
			content: "- [ ] a\n      - [x] b",
			want:    "- [ ] a\n  - [x] b",
			changed: 1,
		},
		{
			name:    "levels survive blank lines",
			content: "- a\n    - b\n\n    - c",
			want:    "- a\n  - b\n\n  - c",
			changed: 2,
		},
		{
			name:    "paragraph restarts levels",
			content: "- a\n    - b\n\nProse.\n\n  - c",
			want:    "- a\n  - b\n\nProse.\n\n- c",
			changed: 2,
		},
		{
			name:    "continuation text untouched",
			content: "- a\n    more text\n    - b",
			want:    "- a\n    more text\n  - b",
			changed: 1,
		},
		{
			name:    "fenced code untouched",
			content: "```\n- a\n    - b\n```",
			want:    "```\n- a\n    - b\n```",
		},
		{
			name:    "ignore region untouched",
			content: "<!-- ascfix:ignore -->\n- a\n    - b\n<!-- /ascfix:ignore -->",
			want:    "<!-- ascfix:ignore -->\n- a\n    - b\n<!-- /ascfix:ignore -->",
		},
		{
			name:    "diagram block untouched",
			content: "┌───┐\n│ a │\n└───┘\n    - b",
			want:    "┌───┐\n│ a │\n└───┘\n    - b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := NormalizeLists(tt.content)
			if got != tt.want {
				t.Errorf("NormalizeLists() = %q, want %q", got, tt.want)
			}
			if changed != tt.changed {
				t.Errorf("NormalizeLists() changed = %d, want %d", changed, tt.changed)
			}
			if again, n := NormalizeLists(got); again != got || n != 0 {
				t.Errorf("NormalizeLists() is not idempotent: %q (%d)", again, n)
			}
		})
	}
}

func TestDetectLists(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []List
	}{
		{
			name:    "no lists",
			content: "This is just a paragraph.\nNo lists here.",
		},
		{
			name:    "mixed bullets",
			content: "- a\n* b\n+ c",
			want:    []List{{StartLine: 0, EndLine: 2, Items: make([]ListItem, 3)}},
		},
		{
			name:    "ordered",
			content: "1. a\n2. b\n3) c",
			want:    []List{{StartLine: 0, EndLine: 2, Ordered: true, Items: make([]ListItem, 3)}},
		},
		{
			name:    "blank line between items",
			content: "- a\n\n- b",
			want:    []List{{StartLine: 0, EndLine: 2, Items: make([]ListItem, 2)}},
		},
		{
			name:    "continuation line",
			content: "- a\n  wrapped\n- b",
			want:    []List{{StartLine: 0, EndLine: 2, Items: make([]ListItem, 2)}},
		},
		{
			name:    "two lists",
			content: "- a\n- b\n\nProse.\n\n1. c",
			want: []List{
				{StartLine: 0, EndLine: 1, Items: make([]ListItem, 2)},
				{StartLine: 5, EndLine: 5, Ordered: true, Items: make([]ListItem, 1)},
			},
		},
		{
			name:    "in fenced code",
			content: "```\n- a\n- b\n```",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectLists(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("DetectLists() = %d lists, want %d", len(got), len(tt.want))
			}
			for i, l := range got {
				w := tt.want[i]
				if l.StartLine != w.StartLine || l.EndLine != w.EndLine || l.Ordered != w.Ordered || len(l.Items) != len(w.Items) {
					t.Errorf("DetectLists()[%d] = {%d %d %v %d items}, want {%d %d %v %d items}",
						i, l.StartLine, l.EndLine, l.Ordered, len(l.Items), w.StartLine, w.EndLine, w.Ordered, len(w.Items))
				}
			}
		})
	}
}

func TestDetectListsLevels(t *testing.T) {
	lists := DetectLists("- a\n    - b\n        - c\n    - d\n- e")
	if len(lists) != 1 {
		t.Fatalf("DetectLists() = %d lists, want 1", len(lists))
	}
	want := []int{0, 1, 2, 1, 0}
	for i, it := range lists[0].Items {
		if it.Level != want[i] {
			t.Errorf("item %d level = %d, want %d", i, it.Level, want[i])
		}
		if it.Line != i {
			t.Errorf("item %d line = %d, want %d", i, it.Line, i)
		}
	}
}
