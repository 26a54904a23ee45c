package session

import (
	"errors"
	"fmt"
)

var (
	ErrChallengeUnreachable = errors.New("challenge unreachable")
	ErrChallengeNotFound    = errors.New("challenge not found")
	ErrLoginRejected        = errors.New("login rejected")
	ErrSessionNotFound      = errors.New("session not found")
)

// AuthError reports which handshake stage failed.
type AuthError struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Host is the device the handshake ran against.
	Host string
	// StatusCode is the HTTP status when the stage failed on a response,
	// zero otherwise.
	StatusCode int
	// Err is the underlying cause, if any.
	Err error
}

func (e *AuthError) Error() string {
	msg := fmt.Sprintf("auth %s: %v", e.Host, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *AuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
