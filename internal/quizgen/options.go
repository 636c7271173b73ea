package quizgen

import (
	"fmt"
	"strings"
)

// OptionsValidator checks that every question has exactly the four
// options A-D, each non-empty.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Quiz, _ Request) *ValidationError {
	for i, question := range q.Questions {
		if len(question.Options) != len(Letters) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: has %d options, want 4", i+1, len(question.Options)),
				Retryable: true,
			}
		}
		for _, l := range Letters {
			text, ok := question.Options[l]
			if !ok || strings.TrimSpace(text) == "" {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d: option %s is missing", i+1, l),
					Retryable: true,
				}
			}
		}
	}
	return nil
}

// AnswerKeyValidator checks that each correct answer names one of the
// question's options.
type AnswerKeyValidator struct{}

func (v *AnswerKeyValidator) Name() string { return "answer-key" }

func (v *AnswerKeyValidator) Validate(q *Quiz, _ Request) *ValidationError {
	for i, question := range q.Questions {
		if _, ok := question.Options[question.CorrectAnswer]; !ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: correct answer %q is not an option", i+1, question.CorrectAnswer),
				Retryable: true,
			}
		}
	}
	return nil
}
