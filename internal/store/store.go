package store

import (
	"sync"
	"time"
)

// Store holds session-scoped, in-memory state. Nothing outlives the process.
type Store struct {
	mu  sync.RWMutex
	seq *sequenceCounter
	now func() time.Time

	users    map[string]User
	attempts []Attempt
	events   []LLMRequestEventRecord
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to timestamp events.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		seq:   &sequenceCounter{},
		now:   time.Now,
		users: make(map[string]User),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserRepo returns a UserRepo backed by this store.
func (s *Store) UserRepo() UserRepo {
	return &userRepo{s: s}
}

// AttemptRepo returns an AttemptRepo backed by this store.
func (s *Store) AttemptRepo() AttemptRepo {
	return &attemptRepo{s: s}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{s: s}
}
