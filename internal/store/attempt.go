package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

type attemptRepo struct {
	s *Store
}

func (r *attemptRepo) Append(_ context.Context, a *Attempt) error {
	if a == nil {
		return fmt.Errorf("append attempt: nil attempt")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a.ID = uuid.NewString()
	a.Sequence = r.s.seq.Next()
	if a.Timestamp.IsZero() {
		a.Timestamp = r.s.now()
	}

	stored := *a
	stored.Answers = append([]AnswerRecord(nil), a.Answers...)
	r.s.attempts = append(r.s.attempts, stored)
	return nil
}

func (r *attemptRepo) ListByUser(_ context.Context, username string) ([]Attempt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []Attempt
	for _, a := range r.s.attempts {
		if a.Username != username {
			continue
		}
		a.Answers = append([]AnswerRecord(nil), a.Answers...)
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}
