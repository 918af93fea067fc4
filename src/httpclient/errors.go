package httpclient

import (
	"errors"
	"fmt"
)

var ErrConnectionLimitExceeded = errors.New("connection limit exceeded")

// APIError is returned for non-2xx responses and for envelopes with a
// non-zero code.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	TraceID    string
}

func (e *APIError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("openapi error: http %d, code %d: %s (trace id %s)", e.StatusCode, e.Code, e.Message, e.TraceID)
	}

	return fmt.Sprintf("openapi error: http %d, code %d: %s", e.StatusCode, e.Code, e.Message)
}
