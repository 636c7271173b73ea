// Package quiz implements the quiz screen: setup, generation, answering
// and results.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/screen"
	"github.com/edututor/edututor/internal/screens"
	"github.com/edututor/edututor/internal/scoring"
	sess "github.com/edututor/edututor/internal/session"
	"github.com/edututor/edututor/internal/ui/components"
	"github.com/edututor/edututor/internal/ui/layout"
	"github.com/edututor/edututor/internal/ui/theme"
)

type phase int

const (
	phaseSetup phase = iota
	phaseGenerating
	phaseAnswering
	phaseResults
)

// Setup focus positions.
const (
	focusCategory = iota
	focusSubject
	focusDifficulty
	focusCount
	focusGenerate
)

var resultActions = []string{"Take Another Quiz", "View Analytics", "Back to Dashboard"}

// QuizScreen walks the learner through one quiz. The quiz itself lives in
// the session so that leaving and re-entering the screen resumes it.
type QuizScreen struct {
	deps  *screens.Deps
	phase phase

	category   components.Selector
	subject    components.Selector
	difficulty components.Selector
	count      components.Selector
	setupFocus int

	spinner spinner.Model

	current int
	choice  components.MultiChoice

	review      int
	actionFocus int

	notice string
	ok     bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen. It resumes whatever quiz the session holds.
func New(deps *screens.Deps) *QuizScreen {
	cfg := deps.Quizzes.Config()

	s := &QuizScreen{
		deps: deps,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(theme.Selected),
		),
	}

	category := quizgen.CategoryOf(deps.DefaultSubject)
	if category == "" {
		category = quizgen.Catalog[0].Name
	}
	s.category = components.NewSelector("Category", categoryNames(), category)
	s.subject = components.NewSelector("Subject", subjectsOf(category), deps.DefaultSubject)

	var levels []string
	for _, d := range quizgen.Difficulties {
		levels = append(levels, string(d))
	}
	def := deps.DefaultDifficulty
	if def == "" {
		def = quizgen.DifficultyMedium
	}
	s.difficulty = components.NewSelector("Difficulty", levels, string(def))

	var counts []string
	for n := cfg.MinCount; n <= cfg.MaxCount; n++ {
		counts = append(counts, strconv.Itoa(n))
	}
	s.count = components.NewSelector("Questions", counts, strconv.Itoa(cfg.ClampCount(0)))
	s.focusSetup(focusCategory)

	switch deps.Session.Phase() {
	case sess.PhaseAnswering:
		s.enterAnswering()
	case sess.PhaseResults:
		s.phase = phaseResults
	}
	return s
}

func categoryNames() []string {
	names := make([]string, len(quizgen.Catalog))
	for i, c := range quizgen.Catalog {
		names[i] = c.Name
	}
	return names
}

func subjectsOf(category string) []string {
	for _, c := range quizgen.Catalog {
		if c.Name == category {
			return c.Subjects
		}
	}
	return nil
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	switch s.phase {
	case phaseAnswering:
		if q := s.deps.Session.Quiz(); q != nil {
			return q.Subject + " Quiz"
		}
	case phaseResults:
		return "Quiz Results"
	}
	return "New Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseSetup:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Field"},
			{Key: "←→", Description: "Change"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseGenerating:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "←→", Description: "Prev/Next"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Pause"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Review"},
		{Key: "↑↓", Description: "Action"},
		{Key: "Enter", Description: "Select"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s, s.handleQuizReady(msg)

	case spinner.TickMsg:
		if s.phase != phaseGenerating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch s.phase {
		case phaseSetup:
			return s, s.handleSetupKey(msg)
		case phaseAnswering:
			return s, s.handleAnswerKey(msg)
		case phaseResults:
			return s, s.handleResultsKey(msg)
		}
	}
	return s, nil
}

// --- setup ---

func (s *QuizScreen) focusSetup(i int) {
	s.setupFocus = (i + focusGenerate + 1) % (focusGenerate + 1)
	s.category.Focused = s.setupFocus == focusCategory
	s.subject.Focused = s.setupFocus == focusSubject
	s.difficulty.Focused = s.setupFocus == focusDifficulty
	s.count.Focused = s.setupFocus == focusCount
}

func (s *QuizScreen) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k", "shift+tab":
		s.focusSetup(s.setupFocus - 1)
		return nil
	case "down", "j", "tab":
		s.focusSetup(s.setupFocus + 1)
		return nil
	case "enter":
		return s.generate()
	}

	var changed bool
	switch s.setupFocus {
	case focusCategory:
		s.category, changed = s.category.Update(msg)
		if changed {
			s.subject.SetOptions(subjectsOf(s.category.Value()))
		}
	case focusSubject:
		s.subject, _ = s.subject.Update(msg)
	case focusDifficulty:
		s.difficulty, _ = s.difficulty.Update(msg)
	case focusCount:
		s.count, _ = s.count.Update(msg)
	}
	return nil
}

func (s *QuizScreen) request() quizgen.Request {
	n, _ := strconv.Atoi(s.count.Value())
	return quizgen.Request{
		Subject:    s.subject.Value(),
		Difficulty: quizgen.Difficulty(s.difficulty.Value()),
		Count:      n,
	}
}

func (s *QuizScreen) generate() tea.Cmd {
	s.phase = phaseGenerating
	s.notice = ""
	req := s.request()
	svc := s.deps.Quizzes
	gen := func() tea.Msg {
		q, err := svc.Generate(context.Background(), req)
		return quizReadyMsg{Quiz: q, Err: err}
	}
	return tea.Batch(s.spinner.Tick, gen)
}

func (s *QuizScreen) handleQuizReady(msg quizReadyMsg) tea.Cmd {
	if s.phase != phaseGenerating {
		return nil
	}
	if msg.Err != nil {
		s.phase = phaseSetup
		s.setNotice(fmt.Sprintf("Could not generate a quiz: %v", msg.Err), false)
		return nil
	}
	s.deps.Session.StartQuiz(msg.Quiz)
	s.enterAnswering()
	return nil
}

// --- answering ---

func (s *QuizScreen) enterAnswering() {
	s.phase = phaseAnswering
	s.current = 0
	s.notice = ""
	s.loadQuestion()
}

func (s *QuizScreen) loadQuestion() {
	q := s.deps.Session.Quiz()
	if q == nil || len(q.Questions) == 0 {
		return
	}
	question := &q.Questions[s.current]
	s.choice = components.NewMultiChoice(question, s.deps.Session.Answers()[question.ID])
}

func (s *QuizScreen) move(delta int) {
	q := s.deps.Session.Quiz()
	if q == nil {
		return
	}
	next := s.current + delta
	if next < 0 || next >= len(q.Questions) {
		return
	}
	s.current = next
	s.loadQuestion()
}

func (s *QuizScreen) handleAnswerKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "right", "n", "l":
		s.move(1)
		return nil
	case "left", "p", "h":
		s.move(-1)
		return nil
	case "s", "S":
		return s.submit()
	}

	var changed bool
	s.choice, changed = s.choice.Update(msg)
	if changed {
		if err := s.deps.Session.Answer(s.choice.Question.ID, s.choice.Chosen); err != nil {
			s.setNotice(err.Error(), false)
			return nil
		}
		s.notice = ""
	}
	return nil
}

func (s *QuizScreen) submit() tea.Cmd {
	_, err := s.deps.Session.SubmitQuiz(context.Background())
	if errors.Is(err, sess.ErrIncompleteQuiz) {
		left := len(s.deps.Session.Unanswered())
		s.setNotice(fmt.Sprintf("Please answer all questions. %d remaining.", left), false)
		return nil
	}
	if err != nil {
		s.setNotice(err.Error(), false)
		return nil
	}
	s.phase = phaseResults
	s.review = 0
	s.actionFocus = 0
	s.notice = ""
	return nil
}

// --- results ---

func (s *QuizScreen) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	r := s.deps.Session.Result()
	switch msg.String() {
	case "right", "l":
		if r != nil && s.review < len(r.Details)-1 {
			s.review++
		}
	case "left", "h":
		if s.review > 0 {
			s.review--
		}
	case "up", "k":
		if s.actionFocus > 0 {
			s.actionFocus--
		}
	case "down", "j":
		if s.actionFocus < len(resultActions)-1 {
			s.actionFocus++
		}
	case "enter":
		return s.runAction(s.actionFocus)
	}
	return nil
}

func (s *QuizScreen) runAction(i int) tea.Cmd {
	s.deps.Session.ResetQuiz()
	switch i {
	case 0:
		s.phase = phaseSetup
		s.focusSetup(focusGenerate)
		return nil
	case 1:
		return screens.Replace(s.deps.Analytics)
	default:
		return screens.Pop()
	}
}

func (s *QuizScreen) setNotice(msg string, ok bool) {
	s.notice = msg
	s.ok = ok
}

// result is the submitted result, or nil.
func (s *QuizScreen) result() *scoring.Result {
	return s.deps.Session.Result()
}
