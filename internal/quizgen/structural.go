package quizgen

import (
	"fmt"
	"strings"
)

// StructuralValidator checks that the quiz has the requested number of
// questions and that every question carries its text fields.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Quiz, req Request) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf(format, args...),
			Retryable: true,
		}
	}

	if strings.TrimSpace(q.Subject) == "" {
		return fail("subject is empty")
	}
	if strings.TrimSpace(string(q.Difficulty)) == "" {
		return fail("difficulty is empty")
	}
	if q.TotalQuestions != req.Count {
		return fail("total_questions is %d, want %d", q.TotalQuestions, req.Count)
	}
	if len(q.Questions) != req.Count {
		return fail("got %d questions, want %d", len(q.Questions), req.Count)
	}

	for i, question := range q.Questions {
		switch {
		case strings.TrimSpace(question.Text) == "":
			return fail("question %d: question text is empty", i+1)
		case strings.TrimSpace(question.Explanation) == "":
			return fail("question %d: explanation is empty", i+1)
		case strings.TrimSpace(question.Topic) == "":
			return fail("question %d: topic is empty", i+1)
		}
	}
	return nil
}
