package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/vin-gateway/internal/domain"
)

// ErrorCategory represents the nature of an error for retry logic
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines error category for retry and logging purposes
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.Canceled) {
		return CategoryPermanent
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTransient
	}

	if domain.IsErrorCode(err, domain.ErrCodeInvalidVIN) ||
		domain.IsErrorCode(err, domain.ErrCodeInvalidProvider) ||
		errors.Is(err, domain.ErrLookupNotFound) {
		return CategoryClientError
	}

	// Checked before ServiceError: a wrapped DecoderError is more specific.
	if decErr, ok := IsDecoderError(err); ok {
		if decErr.IsRetryable() {
			return CategoryTransient
		}
		return CategoryPermanent
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidVIN, ErrCodeMissingAPIKey, ErrCodeInvalidInput, ErrCodeNotFound, ErrCodeNoData:
			return CategoryClientError
		case ErrCodeInternal:
			return CategoryInfrastructure
		case ErrCodeTimeout, ErrCodeDecoderUnavailable:
			return CategoryTransient
		default:
			return CategoryPermanent
		}
	}

	// Transport failures (DNS, refused connections, resets).
	return CategoryTransient
}

// IsRetryable returns true if the error category suggests retry
func IsRetryable(err error) bool {
	category := CategorizeError(err)
	return category == CategoryTransient || category == CategoryInfrastructure
}

// ToServiceError normalizes any error coming out of a decode into a
// ServiceError carrying a user-facing message.
func ToServiceError(err error) *ServiceError {
	if err == nil {
		return nil
	}

	if decErr, ok := IsDecoderError(err); ok {
		return NewDecoderError(decErr)
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr
	}

	switch {
	case domain.IsErrorCode(err, domain.ErrCodeInvalidVIN):
		return NewInvalidVINError(err)
	case domain.IsErrorCode(err, domain.ErrCodeInvalidProvider):
		return NewInvalidInputError(err)
	case errors.Is(err, domain.ErrLookupNotFound):
		return NewNotFoundError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError(err)
	case errors.Is(err, context.Canceled):
		return NewCanceledError(err)
	}

	return NewDecoderUnavailableError(err)
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return ToServiceError(err).HTTPStatus
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if err == nil {
		return ""
	}
	return ToServiceError(err).Code
}

// UserMessage is the single string shown to an end user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return ToServiceError(err).Message
}
