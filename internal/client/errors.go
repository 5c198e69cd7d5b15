package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failed console operation.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNetwork    Kind = "network"
	KindServer     Kind = "server"
	KindUnknown    Kind = "unknown"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrValidation = errors.New("validation error")
	ErrNetwork    = errors.New("network error")
	ErrServer     = errors.New("server error")
	ErrUnknown    = errors.New("unknown error")

	// ErrNotAuthenticated is returned by token sources when no session token is stored.
	ErrNotAuthenticated = errors.New("not logged in")
)

// Error is the single error type surfaced to console views.
type Error struct {
	Kind       Kind
	StatusCode int
	Code       string
	Message    string
	Details    map[string]string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "; %s: %s", k, e.Details[k])
		}
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrServer:
		return e.Kind == KindServer
	case ErrUnknown:
		return e.Kind == KindUnknown
	}
	return false
}

// ValidationError builds a validation failure detected before any request is sent.
func ValidationError(message string, details map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: message, Details: details}
}

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
