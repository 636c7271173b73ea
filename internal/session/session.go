// Package session holds one learner's state: who is logged in, the quiz in
// progress, and access to their attempt history.
package session

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/edututor/edututor/internal/analytics"
	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/scoring"
	"github.com/edututor/edututor/internal/store"
)

// Account and quiz errors. Their messages are shown to the learner as is.
var (
	ErrUsernameTaken    = errors.New("username already exists")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrUnknownUser      = errors.New("username not found")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrNotAuthenticated = errors.New("not logged in")

	ErrNoQuiz          = errors.New("no quiz in progress")
	ErrQuizSubmitted   = errors.New("quiz already submitted")
	ErrIncompleteQuiz  = errors.New("please answer all questions")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidAnswer   = errors.New("answer must be one of A, B, C or D")
)

// Demo account credentials.
const (
	DemoUsername = "demo"
	DemoEmail    = "demo@example.com"
	DemoPassword = "demo123"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// Manager is one learner session. It is safe for concurrent use.
type Manager struct {
	users    store.UserRepo
	attempts store.AttemptRepo
	now      func() time.Time

	mu   sync.Mutex
	user *store.User
	quiz *QuizState
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the clock used for quiz timestamps and analytics.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates an unauthenticated session over st.
func NewManager(st *store.Store, opts ...Option) *Manager {
	m := &Manager{
		users:    st.UserRepo(),
		attempts: st.AttemptRepo(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register creates an account. It does not log the new user in.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if _, err := m.users.Get(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("register: %w", err)
	}
	if len(username) < minUsernameLen {
		return ErrUsernameTooShort
	}
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	err := m.users.Create(ctx, store.User{
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: m.now(),
	})
	if errors.Is(err, store.ErrUserExists) {
		return ErrUsernameTaken
	}
	return err
}

// Login authenticates username and makes it the current user. Any quiz in
// progress is discarded.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	u, err := m.users.Get(ctx, strings.TrimSpace(username))
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrUnknownUser
	}
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if u.Password != password {
		return ErrWrongPassword
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u
	m.quiz = nil
	return nil
}

// Logout returns the session to its unauthenticated state.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.quiz = nil
}

// EnsureDemoAccount registers the demo account if it does not exist yet.
func (m *Manager) EnsureDemoAccount(ctx context.Context) error {
	err := m.Register(ctx, DemoUsername, DemoEmail, DemoPassword)
	if err != nil && !errors.Is(err, ErrUsernameTaken) {
		return err
	}
	return nil
}

// LoginDemo logs in to the demo account, creating it first if needed.
func (m *Manager) LoginDemo(ctx context.Context) error {
	if err := m.EnsureDemoAccount(ctx); err != nil {
		return err
	}
	return m.Login(ctx, DemoUsername, DemoPassword)
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (m *Manager) CurrentUser() *store.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Authenticated reports whether a user is logged in.
func (m *Manager) Authenticated() bool {
	return m.CurrentUser() != nil
}

// StartQuiz replaces any quiz in progress with q.
func (m *Manager) StartQuiz(q *quizgen.Quiz) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quiz = NewQuizState(q, m.now())
}

// Quiz returns the quiz in progress, or nil.
func (m *Manager) Quiz() *quizgen.Quiz {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quiz == nil {
		return nil
	}
	return m.quiz.Quiz
}

// Phase reports the phase of the current quiz.
func (m *Manager) Phase() QuizPhase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quiz.Phase()
}

// Answers returns a copy of the answers recorded so far.
func (m *Manager) Answers() map[int]quizgen.Letter {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quiz == nil {
		return nil
	}
	return maps.Clone(m.quiz.Answers)
}

// Answer records letter for questionID. Answers can be changed until the
// quiz is submitted.
func (m *Manager) Answer(questionID int, letter quizgen.Letter) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.quiz.Phase() {
	case PhaseIdle:
		return ErrNoQuiz
	case PhaseResults:
		return ErrQuizSubmitted
	}
	if _, ok := m.quiz.Quiz.Question(questionID); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
	}
	l, ok := quizgen.ParseLetter(string(letter))
	if !ok {
		return ErrInvalidAnswer
	}
	m.quiz.Answers[questionID] = l
	return nil
}

// Unanswered lists the IDs of questions without an answer.
func (m *Manager) Unanswered() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quiz.Unanswered()
}

// SubmitQuiz scores the quiz in progress. Every question must be answered.
// The attempt is added to the history when a user is logged in.
func (m *Manager) SubmitQuiz(ctx context.Context) (*scoring.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.quiz.Phase() {
	case PhaseIdle:
		return nil, ErrNoQuiz
	case PhaseResults:
		return nil, ErrQuizSubmitted
	}
	if left := len(m.quiz.Unanswered()); left > 0 {
		return nil, fmt.Errorf("%w: %d questions remaining", ErrIncompleteQuiz, left)
	}

	result := scoring.Evaluate(m.quiz.Quiz, m.quiz.Answers)

	if m.user != nil {
		a := newAttempt(m.user.Username, m.quiz.Quiz, result, m.now())
		if err := m.attempts.Append(ctx, a); err != nil {
			return nil, fmt.Errorf("save attempt: %w", err)
		}
	}

	m.quiz.Result = &result
	return &result, nil
}

// Result returns the result of the submitted quiz, or nil.
func (m *Manager) Result() *scoring.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quiz == nil {
		return nil
	}
	return m.quiz.Result
}

// ResetQuiz discards the current quiz and its result.
func (m *Manager) ResetQuiz() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quiz = nil
}

// History returns the current user's attempts, oldest first.
func (m *Manager) History(ctx context.Context) ([]store.Attempt, error) {
	u := m.CurrentUser()
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return m.attempts.ListByUser(ctx, u.Username)
}

// Stats summarizes the current user's history.
func (m *Manager) Stats(ctx context.Context) (analytics.Overview, error) {
	h, err := m.History(ctx)
	if err != nil {
		return analytics.Overview{}, err
	}
	return analytics.Summarize(h), nil
}

// Report builds the full analytics report for the current user.
func (m *Manager) Report(ctx context.Context) (analytics.Report, error) {
	h, err := m.History(ctx)
	if err != nil {
		return analytics.Report{}, err
	}
	return analytics.Build(h, m.now()), nil
}

func newAttempt(username string, q *quizgen.Quiz, r scoring.Result, at time.Time) *store.Attempt {
	answers := make([]store.AnswerRecord, len(r.Details))
	for i, d := range r.Details {
		answers[i] = store.AnswerRecord{
			QuestionID:    d.QuestionID,
			Question:      d.Question,
			Topic:         d.Topic,
			Selected:      string(d.UserAnswer),
			CorrectAnswer: string(d.CorrectAnswer),
			Correct:       d.Correct,
		}
	}
	return &store.Attempt{
		Username:       username,
		Subject:        q.Subject,
		Difficulty:     string(q.Difficulty),
		Timestamp:      at,
		TotalQuestions: r.TotalQuestions,
		CorrectAnswers: r.CorrectAnswers,
		Score:          r.ScorePercentage,
		Level:          string(r.Level),
		Source:         string(q.Source),
		Answers:        answers,
	}
}
