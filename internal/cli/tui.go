package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/ascfix/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	diffBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// Decision is the reviewer's verdict on one repaired block.
type Decision int

const (
	Undecided Decision = iota
	Accepted
	Rejected
)

// =============================================================================
// ReviewModel - Interactive accept/reject of repaired blocks
// =============================================================================

// ReviewModel is the bubbletea model behind `ascfix review`.
type ReviewModel struct {
	Path      string
	Blocks    []pipeline.BlockReport
	Decisions []Decision
	Cursor    int
	Height    int
	Offset    int

	// Write is set when the user asked to write accepted blocks.
	Write bool

	status string
	copy   func(string) error
}

// NewReviewModel creates a review model for the repaired blocks of path.
func NewReviewModel(path string, blocks []pipeline.BlockReport) ReviewModel {
	return ReviewModel{
		Path:      path,
		Blocks:    blocks,
		Decisions: make([]Decision, len(blocks)),
		Height:    8,
		copy:      clipboard.WriteAll,
	}
}

// Accepted returns the blocks the user accepted.
func (m ReviewModel) Accepted() []pipeline.BlockReport {
	var out []pipeline.BlockReport
	for i, d := range m.Decisions {
		if d == Accepted {
			out = append(out, m.Blocks[i])
		}
	}
	return out
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "a":
			if len(m.Blocks) > 0 {
				m.Decisions[m.Cursor] = Accepted
				m.move(1)
			}
		case "r":
			if len(m.Blocks) > 0 {
				m.Decisions[m.Cursor] = Rejected
				m.move(1)
			}
		case "c":
			if len(m.Blocks) == 0 {
				return m, nil
			}
			if err := m.copy(strings.Join(m.Blocks[m.Cursor].After, "\n")); err != nil {
				m.status = "copy failed: " + err.Error()
			} else {
				m.status = "copied repaired block"
			}
		case "w":
			m.Write = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height/4, 3)
	}
	return m, nil
}

func (m *ReviewModel) move(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.Blocks) {
		return
	}
	m.Cursor = next
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ReviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Review " + m.Path))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  a accept  r reject  c copy  w write  q quit"))
	b.WriteString("\n\n")

	if len(m.Blocks) == 0 {
		b.WriteString(listDimStyle.Render("No repaired blocks."))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Blocks))
	for i := m.Offset; i < end; i++ {
		blk := m.Blocks[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s block at line %d", cursor, decisionMark(m.Decisions[i]), blk.StartLine+1)
		detail := listDimStyle.Render(fmt.Sprintf("  %d widened · %d expanded · %d snapped",
			blk.Changes.BoxesWidened, blk.Changes.ParentsExpanded, blk.Changes.ArrowsSnapped))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString(detail)
		b.WriteString("\n")
	}

	cur := m.Blocks[m.Cursor]
	b.WriteString("\n")
	b.WriteString(diffBoxStyle.Render(strings.TrimRight(renderDiff(cur.Before, cur.After), "\n")))
	b.WriteString("\n\n")

	accepted := len(m.Accepted())
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d accepted", m.Cursor+1, len(m.Blocks), accepted)))
	if m.status != "" {
		b.WriteString("  " + StyleHighlight.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

func decisionMark(d Decision) string {
	switch d {
	case Accepted:
		return StyleSuccess.Render(iconSuccess)
	case Rejected:
		return StyleError.Render(iconError)
	default:
		return listDimStyle.Render("·")
	}
}
