package components

import (
	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for cards on a screen
// of the given width.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 2).
		Render(content)
}

// Panel is a Card with a bold heading.
func Panel(title, body string, cw int) string {
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(title)
	return Card(heading+"\n\n"+body, cw)
}

// StatBox renders a small labelled figure for dashboard rows.
func StatBox(label, value string, width int) string {
	v := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(value)
	l := lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width).
		Align(lipgloss.Center).
		Render(v + "\n" + l)
}

// Notice renders a one-line status message. ok selects the success color.
func Notice(msg string, ok bool) string {
	if msg == "" {
		return ""
	}
	c := theme.Error
	if ok {
		c = theme.Success
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(msg)
}
