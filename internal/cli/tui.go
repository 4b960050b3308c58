package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// SuggestionListModel - Interactive repository selection
// =============================================================================

// SuggestionListModel is the bubbletea model for picking one of the
// repositories returned by a suggestion lookup.
type SuggestionListModel struct {
	Query       string
	Suggestions []string
	Cursor      int
	Selected    string
	Height      int
	Offset      int
}

// NewSuggestionListModel creates a new suggestion list model.
func NewSuggestionListModel(query string, suggestions []string) SuggestionListModel {
	return SuggestionListModel{
		Query:       query,
		Suggestions: suggestions,
		Height:      10,
	}
}

func (m SuggestionListModel) Init() tea.Cmd {
	return nil
}

func (m SuggestionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Suggestions)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Suggestions) == 0 {
				return m, nil
			}
			m.Selected = m.Suggestions[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m SuggestionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Repository"))
	if m.Query != "" {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  matching %q", m.Query)))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ cite  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Suggestions))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		owner, name, _ := strings.Cut(m.Suggestions[i], "/")
		rows = append(rows, []string{cursor, owner, name})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Owner", "Repository").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Suggestions))))

	return b.String()
}
