package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Action runs on Enter.
type MenuItem struct {
	Label  string
	Hint   string
	Action func() tea.Cmd
}

// Menu is a vertical list of actions with a cursor that wraps around.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	n := len(m.Items)
	switch key.String() {
	case "up", "k", "shift+tab":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % n
	case "enter":
		if a := m.Items[m.Selected].Action; a != nil {
			return m, a()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	hint := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		line := theme.Unselected.Render("    " + item.Label)
		if i == m.Selected {
			line = theme.Selected.Render("  ▸ " + item.Label)
		}
		if item.Hint != "" {
			line += "  " + hint.Render(item.Hint)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n") + "\n"
}
