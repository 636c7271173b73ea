package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUserExists is returned when registering a username that is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is returned when looking up an unknown username.
	ErrUserNotFound = errors.New("user not found")
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// User is a registered learner. Credentials are kept as entered.
type User struct {
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
}

// AnswerRecord is one question of a submitted attempt.
type AnswerRecord struct {
	QuestionID    int
	Question      string
	Topic         string
	Selected      string
	CorrectAnswer string
	Correct       bool
}

// Attempt is a submitted quiz with its evaluated score.
type Attempt struct {
	ID             string
	Sequence       int64
	Username       string
	Subject        string
	Difficulty     string
	Timestamp      time.Time
	TotalQuestions int
	CorrectAnswers int
	Score          float64
	Level          string
	Source         string
	Answers        []AnswerRecord
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string

	// CostUSD is the estimated cost. CostKnown is false when the model has
	// no pricing entry.
	CostUSD   float64
	CostKnown bool
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	CostKnown    bool
}

// UserRepo stores registered users.
type UserRepo interface {
	// Create adds a user. Returns ErrUserExists if the username is taken.
	Create(ctx context.Context, u User) error

	// Get returns the user or ErrUserNotFound.
	Get(ctx context.Context, username string) (*User, error)
}

// AttemptRepo stores submitted quiz attempts.
type AttemptRepo interface {
	// Append assigns an ID and sequence to a and stores a copy.
	Append(ctx context.Context, a *Attempt) error

	// ListByUser returns the user's attempts, oldest first.
	ListByUser(ctx context.Context, username string) ([]Attempt, error)
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates usage and estimated cost per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
