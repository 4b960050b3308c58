package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m SuggestionListModel, msg tea.Msg) (SuggestionListModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(SuggestionListModel), cmd
}

func TestSuggestionListNavigation(t *testing.T) {
	m := NewSuggestionListModel("cob", []string{"spf13/cobra", "a/cobble", "b/cobalt"})

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("j"))
	m, _ = update(t, m, key("down"))
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", m.Cursor)
	}

	m, _ = update(t, m, key("k"))
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	m, cmd := update(t, m, key("enter"))
	if m.Selected != "a/cobble" {
		t.Errorf("selected = %q, want a/cobble", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestSuggestionListQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m := NewSuggestionListModel("x", []string{"a/b"})
		m, cmd := update(t, m, key(k))
		if cmd == nil {
			t.Errorf("%s should quit", k)
		}
		if m.Selected != "" {
			t.Errorf("%s selected %q", k, m.Selected)
		}
	}
}

func TestSuggestionListEmptyEnter(t *testing.T) {
	m := NewSuggestionListModel("x", nil)
	m, cmd := update(t, m, key("enter"))
	if cmd != nil || m.Selected != "" {
		t.Error("enter on empty list should do nothing")
	}
}

func TestSuggestionListScrolls(t *testing.T) {
	m := NewSuggestionListModel("x", []string{"a/1", "a/2", "a/3", "a/4", "a/5"})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 8})
	if m.Height != 3 {
		t.Fatalf("height = %d, want 3", m.Height)
	}

	for range 4 {
		m, _ = update(t, m, key("down"))
	}
	if m.Cursor != 4 || m.Offset != 2 {
		t.Errorf("cursor=%d offset=%d, want 4 and 2", m.Cursor, m.Offset)
	}

	for range 4 {
		m, _ = update(t, m, key("up"))
	}
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("cursor=%d offset=%d, want 0 and 0", m.Cursor, m.Offset)
	}
}

func TestSuggestionListView(t *testing.T) {
	m := NewSuggestionListModel("cob", []string{"spf13/cobra", "a/cobble"})
	view := m.View()

	for _, want := range []string{"Select Repository", "spf13", "cobra", "cobble", "[1/2]", "▸"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
