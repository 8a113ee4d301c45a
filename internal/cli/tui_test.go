package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestSheetListNavigation(t *testing.T) {
	m := NewSheetListModel([]string{"Revenue", "Costs", "Forecast"})

	next, _ := m.Update(keyMsg("down"))
	m = next.(SheetListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("down"))
	m = next.(SheetListModel)
	next, _ = m.Update(keyMsg("down"))
	m = next.(SheetListModel)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want clamped at 2", m.Cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(SheetListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
}

func TestSheetListSelection(t *testing.T) {
	m := NewSheetListModel([]string{"Revenue", "Costs"})

	next, _ := m.Update(keyMsg("down"))
	m = next.(SheetListModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(SheetListModel)

	if m.Selected != "Costs" {
		t.Errorf("Selected = %q, want Costs", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestSheetListQuitWithoutSelection(t *testing.T) {
	m := NewSheetListModel([]string{"Revenue"})

	next, cmd := m.Update(keyMsg("q"))
	m = next.(SheetListModel)
	if m.Selected != "" {
		t.Errorf("Selected = %q, want empty", m.Selected)
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestSheetListView(t *testing.T) {
	m := NewSheetListModel([]string{"Revenue", "Costs"})
	view := m.View()

	for _, sheet := range m.Sheets {
		if !strings.Contains(view, sheet) {
			t.Errorf("view should list sheet %q", sheet)
		}
	}
	if !strings.Contains(view, "[1/2]") {
		t.Error("view should show the cursor position")
	}
}
