// Package dashboard implements the home screen shown after login.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/analytics"
	"github.com/edututor/edututor/internal/screen"
	"github.com/edututor/edututor/internal/screens"
	"github.com/edututor/edututor/internal/store"
	"github.com/edututor/edututor/internal/ui/components"
	"github.com/edututor/edututor/internal/ui/layout"
	"github.com/edututor/edututor/internal/ui/theme"
)

const recentLimit = 5

// DashboardScreen greets the learner with their stats, recent quizzes and
// recommendations, and links to the rest of the app.
type DashboardScreen struct {
	deps *screens.Deps
	menu components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard.
func New(deps *screens.Deps) *DashboardScreen {
	d := &DashboardScreen{deps: deps}
	d.menu = components.NewMenu([]components.MenuItem{
		{Label: "Take Quiz", Hint: "generate a new quiz", Action: func() tea.Cmd { return screens.Push(deps.Quiz) }},
		{Label: "View Analytics", Hint: "progress and insights", Action: func() tea.Cmd { return screens.Push(deps.Analytics) }},
		{Label: "Profile", Hint: "account and usage", Action: func() tea.Cmd { return screens.Push(deps.Profile) }},
		{Label: "Logout", Action: d.logout},
	})
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (d *DashboardScreen) logout() tea.Cmd {
	d.deps.Session.Logout()
	return screens.Reset(d.deps.Login)
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

// recent returns up to n attempts, newest first.
func recent(history []store.Attempt, n int) []store.Attempt {
	out := make([]store.Attempt, 0, n)
	for i := len(history) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, history[i])
	}
	return out
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	name := ""
	if u := d.deps.Session.CurrentUser(); u != nil {
		name = u.Username
	}
	history, _ := d.deps.Session.History(context.Background())
	history = analytics.Sorted(history)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render(fmt.Sprintf("Welcome back, %s!", name)))

	if len(history) == 0 {
		sections = append(sections, components.Panel("Welcome to EduTutor AI", gettingStarted(), cw))
	} else {
		sections = append(sections,
			statsRow(analytics.Summarize(history), cw),
			components.Panel("Recent Quizzes", recentList(recent(history, recentLimit)), cw),
		)
	}

	recs := analytics.Personalized(history)
	var rb strings.Builder
	for _, r := range recs {
		rb.WriteString("• " + r + "\n")
	}
	sections = append(sections,
		components.Panel("Recommendations", strings.TrimRight(rb.String(), "\n"), cw),
		d.menu.View(),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n"))
}

func gettingStarted() string {
	steps := []string{
		"1. Choose a subject from 35 topics",
		"2. Pick a difficulty and number of questions",
		"3. Answer the AI-generated questions",
		"4. Review explanations and track your progress",
	}
	return strings.Join(steps, "\n")
}

func statsRow(o analytics.Overview, cw int) string {
	box := cw/4 - 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		components.StatBox("Total Quizzes", fmt.Sprintf("%d", o.Total), box),
		components.StatBox("Average Score", fmt.Sprintf("%.1f%%", o.Average), box),
		components.StatBox("Best Score", fmt.Sprintf("%.1f%%", o.Best), box),
		components.StatBox("Favorite", o.FavoriteSubject, box),
	)
}

func recentList(attempts []store.Attempt) string {
	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	for _, a := range attempts {
		score := lipgloss.NewStyle().Foreground(theme.ScoreColor(a.Score)).Bold(true).
			Render(fmt.Sprintf("%5.1f%%", a.Score))
		fmt.Fprintf(&b, "%s  %s %s\n", score, a.Subject,
			dim.Render(fmt.Sprintf("· %s · %s", a.Difficulty, a.Timestamp.Format("Jan 2 15:04"))))
	}
	return strings.TrimRight(b.String(), "\n")
}
