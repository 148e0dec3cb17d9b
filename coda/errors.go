package coda

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for every non-2xx response.  The body is kept verbatim so callers can
// decide for themselves what went wrong.
type APIError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Sprintf("coda: authentication failed: %s", e.Body)
	case http.StatusForbidden:
		return fmt.Sprintf("coda: forbidden: %s %s: %s", e.Method, e.URL, e.Body)
	case http.StatusNotFound:
		return fmt.Sprintf("coda: not found: %s %s: %s", e.Method, e.URL, e.Body)
	case http.StatusTooManyRequests:
		return fmt.Sprintf("coda: rate limited: %s", e.Body)
	}
	return fmt.Sprintf("coda: unexpected HTTP response status: %s: %s %s: %s", e.Status, e.Method, e.URL, e.Body)
}

// IsNotFound reports whether err carries a 404 from the service.  Export status polls return this
// for a while after the export was started.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ValidationError means the input was rejected before anything was sent.
type ValidationError struct {
	Op  string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("coda: invalid input for %s: %v", e.Op, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ShapeError means the service answered 2xx but the body isn't what we expected.
type ShapeError struct {
	URL string
	Err error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("coda: unexpected response shape from %s: %v", e.URL, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }
