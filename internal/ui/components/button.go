package components

import (
	"strings"

	"github.com/edututor/edututor/internal/ui/theme"
)

// Button is a focusable push button. The owning screen decides what a
// press does.
type Button struct {
	Label   string
	Focused bool
}

// View renders the button.
func (b Button) View() string {
	if b.Focused {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow renders buttons side by side with the focused one highlighted.
func ButtonRow(labels []string, focused int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = Button{Label: l, Focused: i == focused}.View()
	}
	return strings.Join(parts, "  ")
}
