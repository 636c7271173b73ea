// Package screens holds what every EduTutor screen shares: the services
// they read and write, and factories for the screens they navigate to.
package screens

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/router"
	"github.com/edututor/edututor/internal/screen"
	"github.com/edututor/edututor/internal/session"
	"github.com/edututor/edututor/internal/store"
)

// Deps is passed to every screen constructor. The factories are filled in
// by the app so that screens can navigate without importing each other.
type Deps struct {
	Session *session.Manager
	Quizzes *quizgen.Service
	Events  store.EventRepo
	Now     func() time.Time

	// Quiz setup starts on these values.
	DefaultSubject    string
	DefaultDifficulty quizgen.Difficulty

	Login     func() screen.Screen
	Dashboard func() screen.Screen
	Quiz      func() screen.Screen
	Analytics func() screen.Screen
	Profile   func() screen.Screen
}

// Clock returns d.Now, or time.Now when unset.
func (d *Deps) Clock() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// Push returns a command that pushes the screen built by f.
func Push(f func() screen.Screen) tea.Cmd {
	if f == nil {
		return nil
	}
	s := f()
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// Replace returns a command that swaps the active screen for the one built
// by f.
func Replace(f func() screen.Screen) tea.Cmd {
	if f == nil {
		return nil
	}
	s := f()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

// Reset returns a command that clears the navigation history and shows
// the screen built by f.
func Reset(f func() screen.Screen) tea.Cmd {
	if f == nil {
		return nil
	}
	s := f()
	return func() tea.Msg { return router.ResetScreenMsg{Screen: s} }
}

// Pop returns a command that returns to the previous screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}
