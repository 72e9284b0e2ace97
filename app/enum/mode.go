// Package enum defines enumerated types used across the app.
package enum

import (
	"fmt"
	"strings"
)

// Mode defines how the login cookie maps to a user.
type Mode int

const (
	// ModeSession keeps an opaque token in the cookie, resolved through the session store.
	ModeSession Mode = iota
	// ModeCookie keeps the user name itself in the cookie.
	ModeCookie
)

// ModeValues lists all modes.
var ModeValues = []Mode{ModeSession, ModeCookie}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSession:
		return "session"
	case ModeCookie:
		return "cookie"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a mode name to Mode, case-insensitive.
func ParseMode(s string) (Mode, error) {
	for _, m := range ModeValues {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return ModeSession, fmt.Errorf("invalid mode %q", s)
}
