package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
)

// Sessions keeps sessions in a process-wide map guarded by RWMutex.
// Expired entries are skipped on lookup and stay in the map until DeleteExpired is called.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]Session // token -> session
	now      func() time.Time
}

// Option customizes Sessions.
type Option func(s *Sessions)

// WithClock sets the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Sessions) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSessions makes an empty session store.
func NewSessions(opts ...Option) *Sessions {
	s := &Sessions{sessions: make(map[string]Session), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	log.Printf("[DEBUG] initialized in-memory session store")
	return s
}

// Create stores a new session for token.
// Returns ErrExists if token is already bound to a live session, an expired one is replaced.
func (s *Sessions) Create(_ context.Context, token, owner string, expiresAt time.Time) error {
	if token == "" {
		return fmt.Errorf("failed to create session for %q: empty token", owner)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[token]; ok && existing.Valid(s.now()) {
		return ErrExists
	}
	s.sessions[token] = Session{Token: token, Owner: owner, ExpiresAt: expiresAt}
	return nil
}

// Get returns the session for token.
// Returns ErrNotFound if the token is unknown or the session has expired.
func (s *Sessions) Get(_ context.Context, token string) (Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok || !sess.Valid(s.now()) {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// DeleteExpired drops all expired sessions and returns how many were removed.
func (s *Sessions) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var deleted int64
	for token, sess := range s.sessions {
		if !sess.Valid(now) {
			delete(s.sessions, token)
			deleted++
		}
	}
	return deleted, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
