package mavensearch

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when the search index has no document for the
// requested coordinates.
var ErrNotFound = errors.New("artifact not found in search index")

// ErrUnexpectedStatus is returned for any non-200 search response.
type ErrUnexpectedStatus struct {
	StatusCode int
	RetryAfter time.Duration
}

func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status from search: %d", e.StatusCode)
}

// Temporary reports whether the request may succeed when repeated.
func (e *ErrUnexpectedStatus) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// ErrInvalidResponse indicates the search body could not be decoded.
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid search response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
