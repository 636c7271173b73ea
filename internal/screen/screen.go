// Package screen defines the contract between the router and the
// EduTutor screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/edututor/edututor/internal/ui/layout"
)

// Screen is one full page of the TUI. The router owns the stack of screens
// and only the top one receives messages.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between the header and the footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler lets a screen consume Esc before the router pops it, e.g. to
// leave a sub-view. Back reports whether it handled the key.
type BackHandler interface {
	Back() (bool, tea.Cmd)
}
