package session

import (
	"time"

	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/scoring"
)

// QuizPhase represents where the learner is in the current quiz.
type QuizPhase int

const (
	PhaseIdle      QuizPhase = iota // No quiz in progress
	PhaseAnswering                  // Questions are being answered
	PhaseResults                    // Submitted; showing the result
)

func (p QuizPhase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseResults:
		return "results"
	default:
		return "idle"
	}
}

// QuizState tracks the runtime state of one quiz.
type QuizState struct {
	// Quiz is the quiz being taken.
	Quiz *quizgen.Quiz

	// Answers maps question ID to the selected letter.
	Answers map[int]quizgen.Letter

	// Result is set once the quiz is submitted.
	Result *scoring.Result

	// StartedAt is when the quiz was started.
	StartedAt time.Time
}

// NewQuizState creates a state for a freshly generated quiz.
func NewQuizState(q *quizgen.Quiz, now time.Time) *QuizState {
	return &QuizState{
		Quiz:      q,
		Answers:   make(map[int]quizgen.Letter, len(q.Questions)),
		StartedAt: now,
	}
}

// Phase reports the quiz phase.
func (s *QuizState) Phase() QuizPhase {
	switch {
	case s == nil || s.Quiz == nil:
		return PhaseIdle
	case s.Result != nil:
		return PhaseResults
	default:
		return PhaseAnswering
	}
}

// Unanswered lists question IDs without an answer, in question order.
func (s *QuizState) Unanswered() []int {
	if s == nil || s.Quiz == nil {
		return nil
	}
	var out []int
	for _, q := range s.Quiz.Questions {
		if _, ok := s.Answers[q.ID]; !ok {
			out = append(out, q.ID)
		}
	}
	return out
}
