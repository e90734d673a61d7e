package domain

import (
	"errors"
	"fmt"
)

// Malformed input.
var (
	// ErrEmptyInput is reported when an activation carries no link at all.
	ErrEmptyInput = errors.New("empty input")

	// ErrBadScheme is reported when a deep link does not start with the app scheme.
	ErrBadScheme = errors.New("unexpected scheme")

	// ErrBadPrefix is reported when a universal link or deep link path does not start with the public prefix.
	ErrBadPrefix = errors.New("unexpected prefix")
)

// ErrUnsupportedActivation is reported when a handoff is not a web browsing handoff.
var ErrUnsupportedActivation = errors.New("unsupported activation type")

// ErrDecode is reported when an encoded payload is undecodable or empty after decoding.
var ErrDecode = errors.New("payload decode failed")

// ErrNoRoute is reported when no rule of the cascade matches the path.
var ErrNoRoute = errors.New("no route matches path")

// ErrDenied is reported when the presentability table rejects a request.
var ErrDenied = errors.New("transition denied")

// Missing dependencies at transition time.
var (
	ErrNoSurface = errors.New("no presentation surface")
	ErrNoView    = errors.New("no view built for screen")
	ErrSnapshot  = errors.New("snapshot unavailable")
)

// ResolveError carries the literal input that failed to resolve.
type ResolveError struct {
	Input string
	Err   error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.Input, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// NewResolveError wraps err with the offending input.
func NewResolveError(input string, err error) *ResolveError {
	return &ResolveError{Input: input, Err: err}
}
