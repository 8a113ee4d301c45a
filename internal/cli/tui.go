package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SheetListModel - Interactive XLSX sheet selection
// =============================================================================

// SheetListModel is the bubbletea model for interactive sheet selection.
type SheetListModel struct {
	Sheets   []string
	Cursor   int
	Selected string
}

// NewSheetListModel creates a new sheet list model.
func NewSheetListModel(sheets []string) SheetListModel {
	return SheetListModel{Sheets: sheets}
}

func (m SheetListModel) Init() tea.Cmd {
	return nil
}

func (m SheetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Sheets)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Sheets[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SheetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Sheet"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, sheet := range m.Sheets {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + sheet
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Sheets))))

	return b.String()
}

// runSheetPicker runs the interactive sheet picker and returns the selection.
func runSheetPicker(sheets []string) (string, error) {
	model, err := tea.NewProgram(NewSheetListModel(sheets)).Run()
	if err != nil {
		return "", fmt.Errorf("sheet picker: %w", err)
	}
	final, ok := model.(SheetListModel)
	if !ok || final.Selected == "" {
		return "", fmt.Errorf("no sheet selected")
	}
	return final.Selected, nil
}
