// Package router keeps the stack of screens the TUI navigates through.
// Screens never touch the stack directly; they return commands that
// produce the messages below and the app forwards them here.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/edututor/edututor/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the previous screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// ResetScreenMsg drops the whole history and leaves Screen as the only one,
// as on logout.
type ResetScreenMsg struct {
	Screen screen.Screen
}

// Router is a stack of screens. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Active returns the screen on top, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[r.top()]
}

// Depth is the number of stacked screens.
func (r *Router) Depth() int { return len(r.stack) }

// Push stacks s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop discards the active screen unless it is the last one. The revealed
// screen keeps its state and is not re-initialised.
func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack[r.top()] = nil
		r.stack = r.stack[:r.top()]
	}
}

// Replace swaps the active screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[r.top()] = s
	return s.Init()
}

// Reset leaves s as the only screen and returns its Init command.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	clear(r.stack)
	r.stack = append(r.stack[:0], s)
	return s.Init()
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case ResetScreenMsg:
		return r.Reset(msg.Screen)
	}

	if len(r.stack) == 0 {
		return nil
	}
	next, cmd := r.stack[r.top()].Update(msg)
	r.stack[r.top()] = next
	return cmd
}

// View renders the active screen into width x height.
func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}
