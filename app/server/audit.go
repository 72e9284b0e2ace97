package server

import (
	"fmt"
	"net/http"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest/realip"

	"github.com/umputun/greet/app/server/auth"
)

// auditAction describes what a request ended up doing.
type auditAction string

const (
	auditLogin         auditAction = "login"
	auditLoginRejected auditAction = "login-rejected"
	auditLoginFailed   auditAction = "login-failed"
	auditGreet         auditAction = "greet"
	auditPage          auditAction = "page"
	auditPageFailed    auditAction = "page-failed"
	auditOther         auditAction = "other"
)

// responseCapture wraps http.ResponseWriter to capture status code and bytes written.
type responseCapture struct {
	http.ResponseWriter
	status       int
	bytesWritten int
}

// newResponseCapture creates a responseCapture wrapper.
func newResponseCapture(w http.ResponseWriter) *responseCapture {
	return &responseCapture{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader captures the status code and delegates to wrapped writer.
func (rc *responseCapture) WriteHeader(code int) {
	rc.status = code
	rc.ResponseWriter.WriteHeader(code)
}

// Write captures bytes written and delegates to wrapped writer.
func (rc *responseCapture) Write(b []byte) (int, error) {
	n, err := rc.ResponseWriter.Write(b)
	rc.bytesWritten += n
	if err != nil {
		return n, fmt.Errorf("write failed: %w", err)
	}
	return n, nil
}

// Unwrap returns the underlying ResponseWriter (for http.ResponseController).
func (rc *responseCapture) Unwrap() http.ResponseWriter {
	return rc.ResponseWriter
}

// auditMiddleware logs one line per request with action, actor and client ip.
// Session tokens are never logged. Must run after auth.UserMiddleware to see the actor.
func (s *Server) auditMiddleware(next http.Handler) http.Handler {
	if !s.AuditEnabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := newResponseCapture(w)
		next.ServeHTTP(rc, r)

		user, authenticated := auth.UserFromContext(r.Context())
		action := mapAuditAction(r.URL.Path, rc.status, authenticated)
		actor := "-"
		switch {
		case action == auditLogin:
			actor = r.URL.Query().Get("name") // the new session owner, not the one from request cookies
		case authenticated:
			actor = user
		}
		ip, _ := realip.Get(r) // ignore error, fallback to empty string
		log.Printf("[INFO] audit: %s, actor %q, %s %s, status %d, %d bytes, ip %s",
			action, actor, r.Method, r.URL.Path, rc.status, rc.bytesWritten, ip)
	})
}

// mapAuditAction maps request path, response status and auth state to an audit action.
func mapAuditAction(path string, status int, authenticated bool) auditAction {
	if strings.HasPrefix(path, "/login") {
		switch status {
		case http.StatusFound:
			return auditLogin
		case http.StatusBadRequest:
			return auditLoginRejected
		default:
			return auditLoginFailed
		}
	}
	switch {
	case status == http.StatusOK && authenticated:
		return auditGreet
	case status == http.StatusOK:
		return auditPage
	case status == http.StatusInternalServerError && !authenticated:
		return auditPageFailed
	default:
		return auditOther
	}
}
