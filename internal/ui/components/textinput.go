package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and EduTutor styling.
type TextInput struct {
	Label string
	Model textinput.Model
}

// NewTextInput creates an unfocused input. A secret input masks what is
// typed.
func NewTextInput(label, placeholder string, secret bool, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if limit > 0 {
		ti.CharLimit = limit
	}
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return TextInput{Label: label, Model: ti}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update forwards msg to the wrapped input.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label above the input.
func (t TextInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Focused() {
		label = theme.Selected
	}
	return label.Render(t.Label) + "\n" + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}
