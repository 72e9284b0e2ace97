// Package store provides in-memory session storage.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a session is unknown or expired.
var ErrNotFound = errors.New("session not found")

// ErrExists is returned when a token is already bound to a live session.
var ErrExists = errors.New("session already exists")

// Session binds an opaque token to its owner until ExpiresAt.
type Session struct {
	Token     string
	Owner     string
	ExpiresAt time.Time
}

// Valid reports whether the session is still alive at the given instant.
func (s Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
