// Package welcome is the splash screen shown before login.
package welcome

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/screen"
	"github.com/edututor/edututor/internal/screens"
	"github.com/edututor/edututor/internal/ui/theme"
)

const (
	frameEvery = 50 * time.Millisecond
	logoAt     = 400 * time.Millisecond
	// One tagline rune is revealed per frame from typingAt, so typing
	// finishes before featuresAt.
	typingAt   = 900 * time.Millisecond
	featuresAt = 2500 * time.Millisecond
	autoSkipAt = 4000 * time.Millisecond
)

const tagline = "Your personal AI study companion"

var features = []string{
	"AI-generated quizzes across 35 subjects",
	"Instant scoring with explanations",
	"Learning analytics and study tips",
}

type frameMsg struct{}

// WelcomeScreen animates the logo and tagline, then replaces itself with
// the next screen on any key or once the animation has run its course.
type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return frame() }

func frame() tea.Cmd {
	return tea.Tick(frameEvery, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if w.done {
		return w, nil
	}
	switch msg.(type) {
	case frameMsg:
		w.elapsed += frameEvery
		if w.elapsed >= autoSkipAt {
			return w, w.leave()
		}
		return w, frame()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

// leave builds the next screen exactly once.
func (w *WelcomeScreen) leave() tea.Cmd {
	w.done = true
	return screens.Replace(w.next)
}

// typed returns the part of the tagline revealed so far.
func (w *WelcomeScreen) typed() string {
	if w.elapsed < typingAt {
		return ""
	}
	runes := []rune(tagline)
	n := min(int((w.elapsed-typingAt)/frameEvery)+1, len(runes))
	return string(runes[:n])
}

func (w *WelcomeScreen) View(width, height int) string {
	var rows []string
	if w.elapsed >= logoAt {
		rows = append(rows, RenderBanner(width), "")
	}
	if t := w.typed(); t != "" {
		cursor := ""
		if w.elapsed < featuresAt {
			cursor = lipgloss.NewStyle().Foreground(theme.Accent).Render("▌")
		}
		rows = append(rows, theme.Body.Bold(true).Render(t)+cursor, "")
	}
	if w.elapsed >= featuresAt {
		bullet := lipgloss.NewStyle().Foreground(theme.Secondary)
		for _, f := range features {
			rows = append(rows, bullet.Render("◆ ")+theme.Body.Render(f))
		}
		rows = append(rows, "")
	}
	rows = append(rows, theme.Hint.Render("press any key to continue"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, rows...))
}
