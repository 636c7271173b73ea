package quiz

import "github.com/edututor/edututor/internal/quizgen"

// quizReadyMsg carries the result of a background generation.
type quizReadyMsg struct {
	Quiz *quizgen.Quiz
	Err  error
}
