// Package analytics implements the learning analytics screen.
package analytics

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	report "github.com/edututor/edututor/internal/analytics"
	"github.com/edututor/edututor/internal/screen"
	"github.com/edututor/edututor/internal/screens"
	"github.com/edututor/edututor/internal/ui/components"
	"github.com/edututor/edututor/internal/ui/layout"
	"github.com/edututor/edututor/internal/ui/theme"
)

const noDataMessage = "Take some quizzes to see your learning analytics and insights here!"

// AnalyticsScreen renders the learner's report as a scrollable page.
type AnalyticsScreen struct {
	deps         *screens.Deps
	scrollOffset int
	lastHeight   int
}

var _ screen.Screen = (*AnalyticsScreen)(nil)
var _ screen.KeyHintProvider = (*AnalyticsScreen)(nil)

// New creates the analytics screen.
func New(deps *screens.Deps) *AnalyticsScreen {
	return &AnalyticsScreen{deps: deps}
}

func (s *AnalyticsScreen) Init() tea.Cmd {
	return nil
}

func (s *AnalyticsScreen) Title() string {
	return "Learning Analytics"
}

func (s *AnalyticsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "PgUp/PgDn", Description: "Page"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AnalyticsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	page := max(s.lastHeight-1, 1)
	switch kmsg.String() {
	case "up", "k":
		s.scrollOffset--
	case "down", "j":
		s.scrollOffset++
	case "pgup":
		s.scrollOffset -= page
	case "pgdown", "space", " ":
		s.scrollOffset += page
	case "home", "g":
		s.scrollOffset = 0
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
	return s, nil
}

func (s *AnalyticsScreen) View(width, height int) string {
	s.lastHeight = height
	cw := components.ContentWidth(width)

	history, _ := s.deps.Session.History(context.Background())
	if len(history) == 0 {
		msg := components.Panel("Learning Analytics", theme.Body.Render(noDataMessage), cw)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	r := report.Build(report.Sorted(history), s.deps.Clock())
	page := strings.Join([]string{
		overviewSection(r, cw),
		subjectSection(r, cw),
		difficultySection(r, cw),
		weekdaySection(r, cw),
		progressSection(r, cw),
		listSection("Insights", r.Insights, cw),
		listSection("Study Recommendations", r.Recommendations, cw),
	}, "\n")

	lines := strings.Split(page, "\n")
	maxOffset := max(len(lines)-height, 0)
	if s.scrollOffset > maxOffset {
		s.scrollOffset = maxOffset
	}
	end := min(s.scrollOffset+height, len(lines))
	visible := lines[s.scrollOffset:end]

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(visible, "\n"))
}

func overviewSection(r report.Report, cw int) string {
	box := cw/4 - 2
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		components.StatBox("Average Score", fmt.Sprintf("%.1f%%", r.Overview.Average), box),
		components.StatBox("Best Score", fmt.Sprintf("%.1f%%", r.Overview.Best), box),
		components.StatBox("Progress", r.ProgressTrend, box),
		components.StatBox("Consistency", fmt.Sprintf("%.1f", r.Consistency), box),
	)
	return row
}

func bar(label string, score float64, cw int) string {
	pb := components.NewProgressBar(label, score/100, true, cw-6)
	return pb.View()
}

func subjectSection(r report.Report, cw int) string {
	var b strings.Builder
	labelW := 0
	for _, st := range r.Subjects {
		labelW = max(labelW, lipgloss.Width(st.Subject))
	}
	for _, st := range r.Subjects {
		label := fmt.Sprintf("%-*s", labelW, st.Subject)
		b.WriteString(bar(label, st.Average, cw) + "\n")
		dim := lipgloss.NewStyle().Foreground(theme.TextDim)
		perf := lipgloss.NewStyle().Foreground(theme.ScoreColor(st.Average)).Render(st.Label)
		b.WriteString(dim.Render(fmt.Sprintf("  %d quizzes · σ %.1f · last %s · ", st.Count, st.StdDev,
			st.LastAttempt.Format("Jan 2"))) + perf + "\n")
	}
	return components.Panel("Performance by Subject", strings.TrimRight(b.String(), "\n"), cw)
}

func difficultySection(r report.Report, cw int) string {
	var b strings.Builder
	for _, d := range r.Difficulties {
		label := fmt.Sprintf("%-6s (%d)", d.Difficulty, d.Attempts)
		b.WriteString(bar(label, d.Average, cw) + "\n")
	}
	return components.Panel("Performance by Difficulty", strings.TrimRight(b.String(), "\n"), cw)
}

func weekdaySection(r report.Report, cw int) string {
	most := 0
	for _, w := range r.Weekdays {
		most = max(most, w.Count)
	}
	var b strings.Builder
	for _, w := range r.Weekdays {
		share := 0.0
		if most > 0 {
			share = float64(w.Count) / float64(most)
		}
		pb := components.NewProgressBar(fmt.Sprintf("%-9s", w.Name), share, false, cw-14)
		fmt.Fprintf(&b, "%s  %d\n", pb.View(), w.Count)
	}
	return components.Panel("Activity by Day", strings.TrimRight(b.String(), "\n"), cw)
}

func progressSection(r report.Report, cw int) string {
	body := fmt.Sprintf("Learning streak: %d days\nQuizzes this week: %d\nMonthly average: %.1f quizzes\nAverage gap: %.1f days\nTrend: %s",
		r.Streak, r.ThisWeek, r.MonthlyAverage, r.AverageGapDays, r.Overview.Trend)
	return components.Panel("Progress Tracking", body, cw)
}

func listSection(title string, items []string, cw int) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for _, it := range items {
		b.WriteString("• " + it + "\n")
	}
	return components.Panel(title, strings.TrimRight(b.String(), "\n"), cw)
}
