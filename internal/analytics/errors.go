package analytics

import (
	"errors"
	"fmt"
	"net/http"
)

// Argument validation errors. These are returned before any I/O.
var (
	ErrInvalidProfileID   = errors.New("profile id must be >= 1")
	ErrInvalidGranularity = errors.New("granularity must be daily or hourly")
	ErrInvalidDays        = errors.New("days must be >= 1")
)

// ErrResponseTooLarge is returned when a response body exceeds the read limit.
var ErrResponseTooLarge = errors.New("response too large")

// APIError is returned when the backend answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Endpoint   string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
