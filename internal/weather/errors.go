package weather

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when geocoding yields no results for a place.
type NotFoundError struct {
	Place string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("place not found: %s", e.Place)
}

// UpstreamError reports a failed or malformed response from a weather API.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Kind returns a short name for the failure kind of err.
func Kind(err error) string {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return "NotFoundError"
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return "UpstreamError"
	}
	return "Error"
}
