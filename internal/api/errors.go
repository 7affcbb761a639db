package api

import (
	"errors"
	"fmt"
)

// ErrNotLoggedIn is returned before any request when no token is set.
var ErrNotLoggedIn = errors.New("not logged in")

// ErrHTTPStatus indicates the platform rejected a request with a 4xx status.
type ErrHTTPStatus struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
}

func (e *ErrHTTPStatus) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}

// ErrUnauthorized indicates a missing, invalid or expired token.
type ErrUnauthorized struct {
	Err error
}

func (e *ErrUnauthorized) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unauthorized: %v", e.Err)
	}
	return "unauthorized"
}

func (e *ErrUnauthorized) Unwrap() error { return e.Err }

// ErrUnavailable indicates the platform is down or unreachable. It is the
// only error class the retry decorator retries.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("platform unavailable: %v", e.Err)
	}
	return "platform unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is an *ErrUnauthorized.
func IsUnauthorized(err error) bool {
	var ue *ErrUnauthorized
	return errors.As(err, &ue)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *ErrHTTPStatus
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
