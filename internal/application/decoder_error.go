package application

import (
	"errors"
	"fmt"
)

// DecoderError is a failure reported by a remote decoder, either through a
// non-success status or an error inside a success payload.
type DecoderError struct {
	Provider   string
	Code       string
	Message    string
	StatusCode int
}

// DecoderErrorResponse is the error body shape shared by both providers.
type DecoderErrorResponse struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}

func (e *DecoderError) Error() string {
	return fmt.Sprintf("%s decoder error [%s]: %s (status: %d)", e.Provider, e.Code, e.Message, e.StatusCode)
}

// IsRetryable reports whether the same request may succeed later.
// Rate limiting is not retried; another call only spends more quota.
func (e *DecoderError) IsRetryable() bool {
	return e.StatusCode >= 500
}

func IsDecoderError(err error) (*DecoderError, bool) {
	var decErr *DecoderError
	ok := errors.As(err, &decErr)
	return decErr, ok
}
