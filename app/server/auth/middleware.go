package auth

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// UserMiddleware resolves the request user from cookies and keeps it in the request context.
// It never rejects a request, unauthenticated requests pass through without a user.
func (s *Service) UserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if username, ok := s.RequestUser(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, username))
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the user set by UserMiddleware.
func UserFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(ctxKey{}).(string)
	return username, ok && username != ""
}

// MaskToken returns a masked version of token for safe logging (shows first 4 chars).
func MaskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + "****"
}
