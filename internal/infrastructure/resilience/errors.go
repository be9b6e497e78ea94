package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// StatusError reports a non-2xx HTTP response from a supplier API.
type StatusError struct {
	StatusCode int
	Status     string
}

// NewStatusError creates a StatusError from an HTTP status code and line.
func NewStatusError(statusCode int, status string) *StatusError {
	return &StatusError{StatusCode: statusCode, Status: status}
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("unexpected status: %s", e.Status)
	}
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// transientStatusCodes are supplier responses worth retrying: rate
// limiting and transient upstream failures.
var transientStatusCodes = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// IsTransient reports whether an error is worth retrying: HTTP 429 or
// 5xx gateway-class responses, timeouts, and reset connections.
// Client errors (4xx other than 429) and context cancellation are not
// transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return transientStatusCodes[statusErr.StatusCode]
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	return false
}
