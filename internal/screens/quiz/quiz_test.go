package quiz

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/router"
	"github.com/edututor/edututor/internal/screen"
	"github.com/edututor/edututor/internal/screens"
	"github.com/edututor/edututor/internal/session"
	"github.com/edututor/edututor/internal/store"
)

type stubScreen struct{ name string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.name }
func (s *stubScreen) Title() string                           { return s.name }

func newTestDeps(t *testing.T) *screens.Deps {
	t.Helper()
	sess := session.NewManager(store.New())
	if err := sess.LoginDemo(context.Background()); err != nil {
		t.Fatalf("login: %v", err)
	}
	return &screens.Deps{
		Session:           sess,
		Quizzes:           quizgen.NewService(nil, quizgen.DefaultConfig()),
		DefaultSubject:    "Physics",
		DefaultDifficulty: quizgen.DifficultyEasy,
		Analytics:         func() screen.Screen { return &stubScreen{name: "analytics"} },
	}
}

func key(s *QuizScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

// runCmd executes cmd, expanding batches, and feeds the results back
// into the screen.
func runCmd(s *QuizScreen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmd(s, c)
		}
		return
	}
	if _, ok := msg.(quizReadyMsg); ok {
		s.Update(msg)
	}
}

// startQuiz generates a quiz through the setup screen.
func startQuiz(t *testing.T, s *QuizScreen) *quizgen.Quiz {
	t.Helper()
	cmd := key(s, tea.KeyEnter)
	if s.phase != phaseGenerating {
		t.Fatalf("phase = %v, want generating", s.phase)
	}
	runCmd(s, cmd)
	if s.phase != phaseAnswering {
		t.Fatalf("phase = %v, want answering", s.phase)
	}
	q := s.deps.Session.Quiz()
	if q == nil {
		t.Fatal("session should hold the generated quiz")
	}
	return q
}

func answerAll(s *QuizScreen, q *quizgen.Quiz, correct bool) {
	for i, question := range q.Questions {
		letter := question.CorrectAnswer
		if !correct {
			for _, l := range quizgen.Letters {
				if l != question.CorrectAnswer {
					letter = l
					break
				}
			}
		}
		key(s, rune(strings.ToLower(string(letter))[0]))
		if i < len(q.Questions)-1 {
			key(s, tea.KeyRight)
		}
	}
}

func TestSetupDefaults(t *testing.T) {
	s := New(newTestDeps(t))

	if got := s.category.Value(); got != "Mathematics & Sciences" {
		t.Fatalf("category = %q", got)
	}
	if got := s.subject.Value(); got != "Physics" {
		t.Fatalf("subject = %q", got)
	}
	if got := s.difficulty.Value(); got != "Easy" {
		t.Fatalf("difficulty = %q", got)
	}
	if got := s.count.Value(); got != "5" {
		t.Fatalf("count = %q", got)
	}

	view := s.View(120, 40)
	for _, want := range []string{"Estimated time: 10 minutes", "Demo Mode", "Beginner"} {
		if !strings.Contains(view, want) {
			t.Fatalf("setup view missing %q", want)
		}
	}
}

func TestSetupSelectors(t *testing.T) {
	s := New(newTestDeps(t))

	key(s, tea.KeyRight) // next category
	if got := s.category.Value(); got != "General Studies" {
		t.Fatalf("category = %q", got)
	}
	if got := s.subject.Value(); got != "History" {
		t.Fatalf("subject should reset to the category's first, got %q", got)
	}

	key(s, tea.KeyDown)
	key(s, tea.KeyDown)
	key(s, tea.KeyDown) // count
	for i := 0; i < 10; i++ {
		key(s, tea.KeyRight)
	}
	if got := s.count.Value(); got != "7" {
		t.Fatalf("count after wrapping = %q", got)
	}
	if !strings.Contains(s.View(120, 40), "Estimated time: 14 minutes") {
		t.Fatal("estimated time should follow the count")
	}
}

func TestGenerateAndAnswer(t *testing.T) {
	s := New(newTestDeps(t))
	q := startQuiz(t, s)

	if len(q.Questions) != 5 {
		t.Fatalf("questions = %d, want 5", len(q.Questions))
	}
	if q.Subject != "Physics" || q.Difficulty != quizgen.DifficultyEasy {
		t.Fatalf("quiz = %s/%s", q.Subject, q.Difficulty)
	}
	if !strings.Contains(s.View(120, 40), "Question 1 of 5") {
		t.Fatal("expected the first question")
	}

	key(s, 'b')
	if got := s.deps.Session.Answers()[q.Questions[0].ID]; got != quizgen.LetterB {
		t.Fatalf("answer = %q, want B", got)
	}

	key(s, 'c')
	if got := s.deps.Session.Answers()[q.Questions[0].ID]; got != quizgen.LetterC {
		t.Fatalf("changed answer = %q, want C", got)
	}

	key(s, tea.KeyRight)
	if s.current != 1 {
		t.Fatalf("current = %d", s.current)
	}
	key(s, tea.KeyLeft)
	key(s, tea.KeyLeft)
	if s.current != 0 {
		t.Fatalf("current = %d, should stop at the first question", s.current)
	}
	if s.choice.Chosen != quizgen.LetterC {
		t.Fatal("navigating back should restore the chosen answer")
	}
}

func TestSubmitIncomplete(t *testing.T) {
	s := New(newTestDeps(t))
	startQuiz(t, s)

	key(s, 'a')
	key(s, 's')

	if s.phase != phaseAnswering {
		t.Fatal("an incomplete quiz should not be submitted")
	}
	if s.notice != "Please answer all questions. 4 remaining." {
		t.Fatalf("notice = %q", s.notice)
	}
}

func TestSubmitShowsResults(t *testing.T) {
	s := New(newTestDeps(t))
	q := startQuiz(t, s)
	answerAll(s, q, true)
	key(s, 's')

	if s.phase != phaseResults {
		t.Fatalf("phase = %v, want results", s.phase)
	}
	r := s.deps.Session.Result()
	if r == nil || r.ScorePercentage != 100 {
		t.Fatalf("result = %+v", r)
	}

	view := s.View(120, 60)
	for _, want := range []string{"Quiz Complete!", "100.0%", "5/5 correct", "Excellent", "Review 1/5"} {
		if !strings.Contains(view, want) {
			t.Fatalf("results view missing %q", want)
		}
	}

	key(s, tea.KeyRight)
	if s.review != 1 {
		t.Fatalf("review = %d", s.review)
	}

	h, err := s.deps.Session.History(context.Background())
	if err != nil || len(h) != 1 {
		t.Fatalf("history = %d, %v", len(h), err)
	}
}

func TestResultActions(t *testing.T) {
	t.Run("take another", func(t *testing.T) {
		s := New(newTestDeps(t))
		answerAll(s, startQuiz(t, s), false)
		key(s, 's')

		if cmd := key(s, tea.KeyEnter); cmd != nil {
			t.Fatal("take another should stay on the screen")
		}
		if s.phase != phaseSetup {
			t.Fatalf("phase = %v, want setup", s.phase)
		}
		if s.deps.Session.Phase() != session.PhaseIdle {
			t.Fatal("quiz state should be reset")
		}
	})

	t.Run("analytics", func(t *testing.T) {
		s := New(newTestDeps(t))
		answerAll(s, startQuiz(t, s), false)
		key(s, 's')
		key(s, tea.KeyDown)

		cmd := key(s, tea.KeyEnter)
		msg, ok := cmd().(router.ReplaceScreenMsg)
		if !ok || msg.Screen.Title() != "analytics" {
			t.Fatalf("expected replace with analytics, got %#v", msg)
		}
		if s.deps.Session.Phase() != session.PhaseIdle {
			t.Fatal("quiz state should be reset")
		}
	})

	t.Run("dashboard", func(t *testing.T) {
		s := New(newTestDeps(t))
		answerAll(s, startQuiz(t, s), false)
		key(s, 's')
		key(s, tea.KeyDown)
		key(s, tea.KeyDown)

		cmd := key(s, tea.KeyEnter)
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Fatal("expected PopScreenMsg")
		}
		if s.deps.Session.Phase() != session.PhaseIdle {
			t.Fatal("quiz state should be reset")
		}
	})
}

func TestResumesQuizInProgress(t *testing.T) {
	deps := newTestDeps(t)
	first := New(deps)
	q := startQuiz(t, first)
	key(first, 'a')

	second := New(deps)
	if second.phase != phaseAnswering {
		t.Fatalf("phase = %v, want answering", second.phase)
	}
	if second.choice.Chosen != quizgen.LetterA {
		t.Fatal("resumed screen should show the saved answer")
	}
	if second.Title() != q.Subject+" Quiz" {
		t.Fatalf("title = %q", second.Title())
	}
}

func TestStaleQuizReadyIgnored(t *testing.T) {
	s := New(newTestDeps(t))
	s.Update(quizReadyMsg{Quiz: &quizgen.Quiz{Subject: "x"}})
	if s.phase != phaseSetup {
		t.Fatal("a quiz arriving outside generation should be ignored")
	}
	if s.deps.Session.Quiz() != nil {
		t.Fatal("session should not start a stale quiz")
	}
}
