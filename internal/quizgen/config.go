package quizgen

import "time"

// Config controls quiz generation.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// quiz. The first failure stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MinCount and MaxCount bound the number of questions per quiz.
	// DefaultCount is used when a request leaves Count at zero.
	MinCount     int
	MaxCount     int
	DefaultCount int

	// Timeout caps a single call to the primary generator.
	Timeout time.Duration
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
			&AnswerKeyValidator{},
		},
		MaxTokens:    2000,
		Temperature:  0.5,
		MinCount:     3,
		MaxCount:     10,
		DefaultCount: 5,
		Timeout:      45 * time.Second,
	}
}

// ClampCount applies the default and bounds to n.
func (c Config) ClampCount(n int) int {
	if n <= 0 {
		n = c.DefaultCount
	}
	if c.MinCount > 0 && n < c.MinCount {
		n = c.MinCount
	}
	if c.MaxCount > 0 && n > c.MaxCount {
		n = c.MaxCount
	}
	return n
}
