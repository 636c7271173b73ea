package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry maps session IDs to Managers and expires idle ones.
type Registry struct {
	ttl     time.Duration
	newFunc func() *Manager
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	m        *Manager
	lastSeen time.Time
}

// NewRegistry creates a registry whose sessions expire after ttl of
// inactivity. newFunc builds the Manager for each new session.
func NewRegistry(ttl time.Duration, newFunc func() *Manager) *Registry {
	return &Registry{
		ttl:      ttl,
		newFunc:  newFunc,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Get returns the live session for id and marks it as used.
func (r *Registry) Get(id string) (*Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.expired(e, now) {
		delete(r.sessions, id)
		return nil, false
	}
	e.lastSeen = now
	return e.m, true
}

// Create starts a new session and returns its ID.
func (r *Registry) Create() (string, *Manager) {
	id := uuid.NewString()
	m := r.newFunc()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &entry{m: m, lastSeen: r.now()}
	return id, m
}

// Delete drops the session for id.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of tracked sessions, expired or not.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

func (r *Registry) expired(e *entry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.lastSeen) > r.ttl
}
