package quizgen

import "context"

// Generator produces quizzes.
type Generator interface {
	// Generate produces a quiz for the request. All configured validators
	// are run before returning.
	Generate(ctx context.Context, req Request) (*Quiz, error)
}
