package greet

import (
	"errors"
	"fmt"
)

// sentinel errors for common responses
var (
	ErrNameRequired = errors.New("name is required")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// ResponseError represents an unexpected HTTP response from the server.
type ResponseError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("greet: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("greet: HTTP %d: %s", e.StatusCode, e.Body)
}
