package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/ui/components"
	"github.com/edututor/edututor/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.phase {
	case phaseSetup:
		body = s.renderSetup(cw)
	case phaseGenerating:
		body = s.renderGenerating()
	case phaseAnswering:
		body = s.renderQuestion(cw)
	case phaseResults:
		body = s.renderResults(cw)
	}
	if s.notice != "" {
		body += "\n\n" + components.Notice(s.notice, s.ok)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *QuizScreen) renderSetup(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Create Your Quiz") + "\n\n")
	for _, sel := range []components.Selector{s.category, s.subject, s.difficulty, s.count} {
		b.WriteString(sel.View() + "\n")
	}

	d := quizgen.Difficulty(s.difficulty.Value())
	n, _ := strconv.Atoi(s.count.Value())
	hint := lipgloss.NewStyle().Foreground(theme.TextDim)
	b.WriteString("\n" + hint.Render(fmt.Sprintf("%s: %s", d.Label(), d.Description())) + "\n")
	b.WriteString(hint.Render(fmt.Sprintf("Estimated time: %d minutes", quizgen.EstimatedMinutes(n))) + "\n\n")

	b.WriteString(components.Button{Label: "Generate Quiz", Focused: s.setupFocus == focusGenerate}.View())

	if !s.deps.Quizzes.Configured() {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Warning).
			Render("Demo Mode: no AI provider is configured, so questions come from the built-in bank."))
	}
	return components.Card(b.String(), cw)
}

func (s *QuizScreen) renderGenerating() string {
	req := s.request()
	return s.spinner.View() + " " + theme.Body.Render("Generating your personalized quiz...") + "\n\n" +
		theme.Hint.Render(fmt.Sprintf("%d %s questions on %s", req.Count, req.Difficulty, req.Subject))
}

func (s *QuizScreen) renderQuestion(cw int) string {
	q := s.deps.Session.Quiz()
	if q == nil || len(q.Questions) == 0 {
		return theme.Hint.Render("No quiz in progress.")
	}

	answered := len(s.deps.Session.Answers())
	total := len(q.Questions)

	var b strings.Builder
	header := fmt.Sprintf("Question %d of %d", s.current+1, total)
	b.WriteString(theme.Selected.Render(header))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("   %s · %s", q.Subject, q.Difficulty)) + "\n")
	b.WriteString(components.NewProgressBar("Answered", float64(answered)/float64(total), true, cw-6).View() + "\n\n")
	b.WriteString(s.choice.View(cw - 6))

	if q.Source == quizgen.SourceFallback {
		note := "Practice questions from the built-in bank."
		if s.deps.Quizzes.Configured() {
			note = "AI generation was unavailable, showing practice questions instead."
		}
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Warning).Render(note))
	}
	return components.Card(b.String(), cw)
}

func (s *QuizScreen) renderResults(cw int) string {
	r := s.result()
	if r == nil {
		return theme.Hint.Render("No results.")
	}

	var b strings.Builder
	score := lipgloss.NewStyle().Foreground(theme.ScoreColor(r.ScorePercentage)).Bold(true).
		Render(fmt.Sprintf("%.1f%%", r.ScorePercentage))
	b.WriteString(theme.Title.Render("Quiz Complete!") + "\n\n")
	fmt.Fprintf(&b, "Score %s   %d/%d correct   %s\n", score, r.CorrectAnswers, r.TotalQuestions,
		theme.Selected.Render(string(r.Level)))
	b.WriteString(theme.Body.Render(r.Feedback) + "\n\n")

	if len(r.Details) > 0 {
		d := r.Details[s.review]
		mark := theme.Correct.Render("✓ Correct")
		if !d.Correct {
			mark = theme.Incorrect.Render("✗ Incorrect")
		}
		fmt.Fprintf(&b, "Review %d/%d  %s\n", s.review+1, len(r.Details), mark)

		if q, ok := s.quizQuestion(d.QuestionID); ok {
			mc := components.NewMultiChoice(q, d.UserAnswer)
			mc.Reveal = true
			b.WriteString(mc.View(cw - 6))
		} else {
			b.WriteString(theme.Body.Render(d.Question) + "\n")
		}
		if d.Explanation != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-6).
				Render("Explanation: "+d.Explanation) + "\n")
		}
		b.WriteString("\n")
	}

	for i, a := range resultActions {
		if i == s.actionFocus {
			b.WriteString(theme.Selected.Render("▸ "+a) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+a) + "\n")
		}
	}
	return components.Card(strings.TrimRight(b.String(), "\n"), cw)
}

func (s *QuizScreen) quizQuestion(id int) (*quizgen.Question, bool) {
	q := s.deps.Session.Quiz()
	if q == nil {
		return nil, false
	}
	return q.Question(id)
}
