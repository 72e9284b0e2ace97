// Package auth issues and resolves login sessions.
//
// Two modes are supported:
//   - session mode: login binds a random token to the user name in the SessionStore and the client
//     keeps only the token in the "session" cookie
//   - cookie mode: the "name" cookie holds the user name itself and nothing is stored server-side
//
// Sessions expire after LoginTTL (5 minutes by default) and are never extended.
// Expired sessions are ignored on lookup, optional cleanup removes them from the store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/greet/app/enum"
	"github.com/umputun/greet/app/server/internal/cookie"
	"github.com/umputun/greet/app/store"
)

//go:generate moq -out mocks/sessionstore.go -pkg mocks -skip-ensure -fmt goimports . SessionStore

const (
	defaultLoginTTL  = 5 * time.Minute
	maxTokenAttempts = 3
)

// SessionStore is the interface for session storage.
type SessionStore interface {
	Create(ctx context.Context, token, owner string, expiresAt time.Time) error
	Get(ctx context.Context, token string) (store.Session, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// Opts defines auth service parameters.
type Opts struct {
	Mode            enum.Mode
	LoginTTL        time.Duration // 0 means 5 minutes
	CleanupInterval time.Duration // 0 disables cleanup of expired sessions
}

// Service handles login sessions.
type Service struct {
	sessionStore    SessionStore
	mode            enum.Mode
	loginTTL        time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
	newToken        func() string
}

// New makes a Service. Session store is required in session mode and ignored in cookie mode.
func New(sstore SessionStore, opts Opts) (*Service, error) {
	if opts.Mode == enum.ModeSession && sstore == nil {
		return nil, errors.New("session store is required")
	}
	if opts.LoginTTL < 0 {
		return nil, fmt.Errorf("invalid login ttl %s", opts.LoginTTL)
	}
	if opts.CleanupInterval < 0 {
		return nil, fmt.Errorf("invalid cleanup interval %s", opts.CleanupInterval)
	}

	res := &Service{
		sessionStore:    sstore,
		mode:            opts.Mode,
		loginTTL:        opts.LoginTTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
		newToken:        uuid.NewString,
	}
	if res.loginTTL == 0 {
		res.loginTTL = defaultLoginTTL
	}
	return res, nil
}

// Mode returns the configured auth mode.
func (s *Service) Mode() enum.Mode {
	return s.mode
}

// LoginTTL returns the configured login session TTL.
func (s *Service) LoginTTL() time.Duration {
	return s.loginTTL
}

// Activate starts session cleanup if enabled. Returns immediately, cleanup stops with ctx.
func (s *Service) Activate(ctx context.Context) {
	if s.mode != enum.ModeSession || s.cleanupInterval == 0 {
		return
	}
	s.startCleanup(ctx)
}

// Login makes a Set-Cookie value for the user.
// In session mode it creates a new session and the cookie carries its token,
// in cookie mode the cookie carries the user name.
func (s *Service) Login(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", errors.New("empty user name")
	}

	if s.mode == enum.ModeCookie {
		expiresAt := s.now().Add(s.loginTTL)
		return cookie.Serialize(cookie.NameUser, username,
			cookie.Options{ExpiresAt: expiresAt, HTTPOnly: true, Path: cookie.Path}), nil
	}

	token, expiresAt, err := s.CreateSession(ctx, username)
	if err != nil {
		return "", err
	}
	return cookie.Serialize(cookie.NameSession, token,
		cookie.Options{ExpiresAt: expiresAt, HTTPOnly: true, Path: cookie.Path}), nil
}

// CreateSession generates a new session token for the given username.
// Token is a random UUID, regenerated if it collides with a live session.
func (s *Service) CreateSession(ctx context.Context, username string) (token string, expiresAt time.Time, err error) {
	expiresAt = s.now().Add(s.loginTTL)
	for range maxTokenAttempts {
		token = s.newToken()
		err = s.sessionStore.Create(ctx, token, username, expiresAt)
		if err == nil {
			log.Printf("[DEBUG] session %s created for %q, expires %s", MaskToken(token), username,
				expiresAt.Format(time.RFC3339))
			return token, expiresAt, nil
		}
		if !errors.Is(err, store.ErrExists) {
			return "", time.Time{}, fmt.Errorf("failed to create session: %w", err)
		}
		log.Printf("[DEBUG] session token %s collision, regenerating", MaskToken(token))
	}
	return "", time.Time{}, fmt.Errorf("failed to create session after %d attempts: %w", maxTokenAttempts, err)
}

// GetSessionUser returns the username for a valid session.
// Returns empty string and false if session is unknown or expired.
func (s *Service) GetSessionUser(ctx context.Context, token string) (string, bool) {
	if token == "" || s.sessionStore == nil {
		return "", false
	}
	sess, err := s.sessionStore.Get(ctx, token)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[WARN] failed to get session %s: %v", MaskToken(token), err)
		}
		return "", false
	}
	return sess.Owner, true
}

// RequestUser returns the user authenticated by the request cookies.
// Returns empty string and false if there is no valid session (or name cookie in cookie mode).
func (s *Service) RequestUser(r *http.Request) (string, bool) {
	cookies := cookie.FromRequest(r)
	if s.mode == enum.ModeCookie {
		name := cookies[cookie.NameUser]
		return name, name != ""
	}
	return s.GetSessionUser(r.Context(), cookies[cookie.NameSession])
}

// startCleanup starts background cleanup of expired sessions.
// runs periodically until context is canceled.
func (s *Service) startCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Printf("[INFO] session cleanup stopped")
				return
			case <-ticker.C:
				deleted, err := s.sessionStore.DeleteExpired(ctx)
				if err != nil {
					log.Printf("[WARN] failed to cleanup expired sessions: %v", err)
					continue
				}
				if deleted > 0 {
					log.Printf("[INFO] cleaned up %d expired sessions", deleted)
				}
			}
		}
	}()

	log.Printf("[INFO] session cleanup started (interval: %s)", s.cleanupInterval)
}
