package steam

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when the community endpoint does not answer in time.
	ErrTimeout = errors.New("steam request timed out")

	// ErrMalformedPayload is returned when the response body is not a usable inventory.
	ErrMalformedPayload = errors.New("steam returned an unexpected payload")
)

// StatusError is returned for a non-2xx upstream response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("steam responded with status %d", e.StatusCode)
}
