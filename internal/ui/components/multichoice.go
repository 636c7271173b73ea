package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/ui/theme"
)

// MultiChoice is an A-D option picker for one question. Cursor moves with
// the arrow keys; enter, space or a letter key chooses.
type MultiChoice struct {
	Question *quizgen.Question
	Cursor   int
	Chosen   quizgen.Letter

	// Reveal shows the correct answer and disables input.
	Reveal bool
}

// NewMultiChoice creates a picker for q with chosen preselected.
func NewMultiChoice(q *quizgen.Question, chosen quizgen.Letter) MultiChoice {
	m := MultiChoice{Question: q, Chosen: chosen}
	for i, l := range quizgen.Letters {
		if l == chosen {
			m.Cursor = i
		}
	}
	return m
}

// Update handles keyboard navigation and selection. The bool result is true
// when the chosen letter changed.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.Reveal || m.Question == nil {
		return m, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, false
	case "down", "j":
		if m.Cursor < len(quizgen.Letters)-1 {
			m.Cursor++
		}
		return m, false
	case "enter", "space", " ":
		return m.choose(quizgen.Letters[m.Cursor])
	}

	if l, ok := quizgen.ParseLetter(key); ok && len(key) == 1 {
		for i, k := range quizgen.Letters {
			if k == l {
				m.Cursor = i
			}
		}
		return m.choose(l)
	}
	return m, false
}

func (m MultiChoice) choose(l quizgen.Letter) (MultiChoice, bool) {
	changed := m.Chosen != l
	m.Chosen = l
	return m, changed
}

// View renders the question and its options, wrapped to width.
func (m MultiChoice) View(width int) string {
	if m.Question == nil {
		return ""
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(wrap.Foreground(theme.Text).Bold(true).Render(m.Question.Text))
	b.WriteString("\n\n")

	for i, l := range quizgen.Letters {
		prefix := "  "
		if i == m.Cursor && !m.Reveal {
			prefix = "▸ "
		}
		mark := "○"
		if l == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s) %s", prefix, mark, l, m.Question.Options[l])

		style := wrap.Foreground(theme.Text)
		switch {
		case m.Reveal && l == m.Question.CorrectAnswer:
			style = wrap.Foreground(theme.Success).Bold(true)
		case m.Reveal && l == m.Chosen:
			style = wrap.Foreground(theme.Error).Bold(true)
		case m.Reveal:
			style = wrap.Foreground(theme.TextDim)
		case i == m.Cursor:
			style = wrap.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

// IsCorrect reports whether the chosen option is the right one.
func (m MultiChoice) IsCorrect() bool {
	return m.Question != nil && m.Chosen != "" && m.Chosen == m.Question.CorrectAnswer
}
