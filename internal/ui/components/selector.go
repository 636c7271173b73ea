package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/ui/theme"
)

// Selector cycles through a fixed list of values with left and right.
type Selector struct {
	Label   string
	Options []string
	Index   int
	Focused bool
}

// NewSelector creates a selector positioned on initial, or the first option
// when initial is absent.
func NewSelector(label string, options []string, initial string) Selector {
	s := Selector{Label: label, Options: options}
	for i, o := range options {
		if o == initial {
			s.Index = i
		}
	}
	return s
}

// Value returns the selected option.
func (s Selector) Value() string {
	if len(s.Options) == 0 {
		return ""
	}
	return s.Options[s.Index]
}

// SetOptions replaces the options and resets to the first one.
func (s *Selector) SetOptions(options []string) {
	s.Options = options
	s.Index = 0
}

// Update handles left/right. The bool is true when the value changed.
func (s Selector) Update(msg tea.Msg) (Selector, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(s.Options) == 0 {
		return s, false
	}
	switch kmsg.String() {
	case "left", "h":
		s.Index = (s.Index - 1 + len(s.Options)) % len(s.Options)
		return s, true
	case "right", "l":
		s.Index = (s.Index + 1) % len(s.Options)
		return s, true
	}
	return s, false
}

// View renders "Label  ‹ value ›".
func (s Selector) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(14)
	value := theme.Unselected
	arrows := lipgloss.NewStyle().Foreground(theme.Border)
	if s.Focused {
		label = label.Foreground(theme.Primary).Bold(true)
		value = theme.Selected
		arrows = lipgloss.NewStyle().Foreground(theme.Primary)
	}
	return label.Render(s.Label) + arrows.Render("‹ ") + value.Render(s.Value()) + arrows.Render(" ›")
}
