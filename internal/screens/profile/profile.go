// Package profile implements the account and usage screen.
package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/screen"
	"github.com/edututor/edututor/internal/screens"
	"github.com/edututor/edututor/internal/store"
	"github.com/edututor/edututor/internal/ui/components"
	"github.com/edututor/edututor/internal/ui/layout"
	"github.com/edututor/edututor/internal/ui/theme"
)

// ProfileScreen shows the account, quiz totals and AI usage.
type ProfileScreen struct {
	deps *screens.Deps
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates the profile screen.
func New(deps *screens.Deps) *ProfileScreen {
	return &ProfileScreen{deps: deps}
}

func (s *ProfileScreen) Init() tea.Cmd                           { return nil }
func (s *ProfileScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *ProfileScreen) Title() string                           { return "Profile" }

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	ctx := context.Background()

	u := s.deps.Session.CurrentUser()
	if u == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Not logged in."))
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16)
	row := func(k, v string) string { return label.Render(k) + theme.Body.Render(v) }

	account := strings.Join([]string{
		row("Username", u.Username),
		row("Email", u.Email),
		row("Member since", u.CreatedAt.Format("January 2, 2006")),
	}, "\n")

	stats, _ := s.deps.Session.Stats(ctx)
	totals := strings.Join([]string{
		row("Total quizzes", fmt.Sprintf("%d", stats.Total)),
		row("Average score", fmt.Sprintf("%.1f%%", stats.Average)),
		row("Best score", fmt.Sprintf("%.1f%%", stats.Best)),
		row("Favorite", stats.FavoriteSubject),
	}, "\n")

	sections := []string{
		components.Panel("Account", account, cw),
		components.Panel("Learning Stats", totals, cw),
		components.Panel("AI Usage", s.usage(ctx), cw),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func (s *ProfileScreen) usage(ctx context.Context) string {
	if s.deps.Events == nil {
		return theme.Hint.Render("Usage tracking unavailable.")
	}
	models, err := s.deps.Events.LLMUsageByModel(ctx)
	if err != nil {
		return theme.Hint.Render("Could not load usage: " + err.Error())
	}
	if len(models) == 0 {
		return theme.Hint.Render("No AI requests yet.")
	}

	out := usageTable(models)
	if purposes, err := s.deps.Events.LLMUsageByPurpose(ctx); err == nil {
		parts := make([]string, len(purposes))
		for i, p := range purposes {
			parts[i] = fmt.Sprintf("%s %d (avg %dms)", p.Purpose, p.Calls, p.AvgLatencyMs)
		}
		out += "\nBy purpose: " + strings.Join(parts, ", ")
	}
	if last, err := s.deps.Events.QueryLLMEvents(ctx, store.QueryOpts{Limit: 1}); err == nil && len(last) == 1 {
		out += "\n" + lastRequest(last[0])
	}
	return out
}

func lastRequest(e store.LLMRequestEventRecord) string {
	status := theme.Correct.Render("ok")
	if !e.Success {
		status = theme.Incorrect.Render("failed")
		if e.ErrorMessage != "" {
			status += theme.Hint.Render(" " + e.ErrorMessage)
		}
	}
	return fmt.Sprintf("Last request: %s %s at %s, ", e.Provider, e.Purpose, e.Timestamp.Format("15:04:05")) + status
}

func usageTable(models []store.LLMModelUsage) string {
	var b strings.Builder
	var calls int
	var cost float64
	known := true
	for _, m := range models {
		fmt.Fprintf(&b, "%-28s %4d requests  %7d tokens  %s\n",
			m.Model, m.Calls, m.InputTokens+m.OutputTokens, formatCost(m.CostUSD, m.CostKnown))
		calls += m.Calls
		cost += m.CostUSD
		known = known && m.CostKnown
	}
	fmt.Fprintf(&b, "\nTotal: %d requests, estimated cost %s", calls, formatCost(cost, known))
	return b.String()
}

func formatCost(usd float64, known bool) string {
	if !known {
		return "n/a"
	}
	return fmt.Sprintf("$%.4f", usd)
}
