package board

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobboard/internal/config"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(1, 0, 0, 2)
)

const (
	pickerPending = -1
	pickerQuit    = -2
)

type pickerModel struct {
	catalogs []config.CatalogConfig
	cursor   int
	chosen   int
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		m.chosen = pickerQuit
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.catalogs)-1)
	case "enter":
		m.chosen = m.cursor
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("Job Board · Select a catalog"))
	b.WriteByte('\n')

	for i, c := range m.catalogs {
		where := c.File
		if c.Kind() == "remote" {
			where = c.URL
		}
		label := fmt.Sprintf("%s (%s)", c.Name, where)
		if i == m.cursor {
			b.WriteString(pickerSelectedStyle.Render("> " + label))
		} else {
			b.WriteString(pickerItemStyle.Render(label))
		}
		b.WriteByte('\n')
	}

	b.WriteString(pickerHintStyle.Render("↑/↓/j/k navigate  enter select  q quit"))
	return b.String()
}

// RunPicker shows an interactive catalog selector.
// Returns the index of the chosen catalog, or -1 if the user quit.
func RunPicker(catalogs []config.CatalogConfig) (int, error) {
	p := tea.NewProgram(pickerModel{catalogs: catalogs, chosen: pickerPending})
	result, err := p.Run()
	if err != nil {
		return -1, err
	}
	if chosen := result.(pickerModel).chosen; chosen >= 0 {
		return chosen, nil
	}
	return -1, nil
}
