package store

import (
	"context"
	"fmt"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, u User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.Username]; ok {
		return fmt.Errorf("create %q: %w", u.Username, ErrUserExists)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.s.now()
	}
	r.s.users[u.Username] = u
	return nil
}

func (r *userRepo) Get(_ context.Context, username string) (*User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[username]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", username, ErrUserNotFound)
	}
	return &u, nil
}
