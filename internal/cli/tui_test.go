package cli

import (
	stderrors "errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/ascfix/pkg/config"
	"github.com/matzehuels/ascfix/pkg/pipeline"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testBlocks() []pipeline.BlockReport {
	return []pipeline.BlockReport{
		{StartLine: 2, EndLine: 3, Outcome: pipeline.OutcomeRepaired, Before: []string{"old 1"}, After: []string{"new 1"}},
		{StartLine: 6, EndLine: 7, Outcome: pipeline.OutcomeRepaired, Before: []string{"old 2"}, After: []string{"new 2"}},
		{StartLine: 9, EndLine: 10, Outcome: pipeline.OutcomeRepaired, Before: []string{"old 3"}, After: []string{"new 3"}},
	}
}

func press(m ReviewModel, keys ...string) (ReviewModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(ReviewModel)
	}
	return m, cmd
}

func TestReviewModelDecisions(t *testing.T) {
	m := NewReviewModel("doc.md", testBlocks())

	m, _ = press(m, "a", "r", "a")
	want := []Decision{Accepted, Rejected, Accepted}
	for i, d := range m.Decisions {
		if d != want[i] {
			t.Errorf("Decisions[%d] = %v, want %v", i, d, want[i])
		}
	}
	acc := m.Accepted()
	if len(acc) != 2 || acc[0].StartLine != 2 || acc[1].StartLine != 9 {
		t.Errorf("Accepted() = %+v", acc)
	}
}

func TestReviewModelNavigation(t *testing.T) {
	m := NewReviewModel("doc.md", testBlocks())

	m, _ = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after up at top, want 0", m.Cursor)
	}
	m, _ = press(m, "down", "j", "j", "down")
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped)", m.Cursor)
	}
	m, _ = press(m, "k")
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}
}

func TestReviewModelWriteAndQuit(t *testing.T) {
	tests := []struct {
		key       string
		wantWrite bool
	}{
		{"w", true},
		{"q", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, cmd := press(NewReviewModel("doc.md", testBlocks()), tt.key)
			if m.Write != tt.wantWrite {
				t.Errorf("Write = %v, want %v", m.Write, tt.wantWrite)
			}
			if cmd == nil {
				t.Fatal("expected a quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("command is not tea.Quit")
			}
		})
	}
}

func TestReviewModelCopy(t *testing.T) {
	var copied string
	m := NewReviewModel("doc.md", testBlocks())
	m.copy = func(s string) error { copied = s; return nil }

	m, _ = press(m, "j", "c")
	if copied != "new 2" {
		t.Errorf("copied %q, want %q", copied, "new 2")
	}
	if !strings.Contains(m.View(), "copied repaired block") {
		t.Error("View() does not confirm the copy")
	}

	m.copy = func(string) error { return stderrors.New("no clipboard") }
	m, _ = press(m, "c")
	if !strings.Contains(m.View(), "copy failed: no clipboard") {
		t.Error("View() does not report the copy failure")
	}
}

func TestReviewModelView(t *testing.T) {
	m := NewReviewModel("doc.md", testBlocks())
	m, _ = press(m, "a")
	view := m.View()
	for _, want := range []string{"Review doc.md", "block at line 3", "- old 2", "+ new 2", "[2/3] 1 accepted"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	empty := NewReviewModel("doc.md", nil)
	if !strings.Contains(empty.View(), "No repaired blocks.") {
		t.Error("empty View() should say there is nothing to review")
	}
	empty, _ = press(empty, "a", "r", "c")
	if len(empty.Accepted()) != 0 {
		t.Error("empty model accepted a block")
	}
}

func TestReviewBlocks(t *testing.T) {
	base, blocks, err := reviewBlocks(document, config.Default())
	if err != nil {
		t.Fatalf("reviewBlocks() error: %v", err)
	}
	if base != document {
		t.Errorf("base changed a document without tables")
	}
	if len(blocks) != 1 || blocks[0].StartLine != 4 {
		t.Fatalf("blocks = %+v", blocks)
	}
	if got := pipeline.ApplyBlocks(base, blocks); got != repaired {
		t.Errorf("ApplyBlocks() =\n%s\nwant\n%s", got, repaired)
	}
}

func TestRenderDiff(t *testing.T) {
	got := renderDiff([]string{"same", "old"}, []string{"same", "new", "extra"})
	for _, want := range []string{"  same", "- old", "+ new", "+ extra"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderDiff() missing %q:\n%s", want, got)
		}
	}
	if got := renderDiff(nil, nil); got != "" {
		t.Errorf("renderDiff(nil, nil) = %q, want empty", got)
	}
	if got := renderDiff(nil, []string{"only"}); strings.Contains(got, "- ") || !strings.Contains(got, "+ only") {
		t.Errorf("renderDiff(nil, [only]) = %q", got)
	}
}
