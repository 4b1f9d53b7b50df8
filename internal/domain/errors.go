package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business rule violation
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidVIN      = "INVALID_VIN"
	ErrCodeInvalidProvider = "INVALID_PROVIDER"
	ErrCodeLookupNotFound  = "LOOKUP_NOT_FOUND"
)

// InvalidVINMessage is shown to users whenever a VIN fails the format check.
const InvalidVINMessage = "Please enter a valid 17-character VIN. Letters I, O, and Q are not allowed."

// NoDataMessage is shown when the decoder answered but nothing survived projection.
const NoDataMessage = "VIN found, but no data was returned for this vehicle."

var ErrLookupNotFound = errors.New("lookup not found")

func NewInvalidVINError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidVIN,
		Message: InvalidVINMessage,
		Err:     errors.New(reason),
	}
}

func NewInvalidProviderError(name string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidProvider,
		Message: fmt.Sprintf("unknown decoder provider %q", name),
	}
}

func NewLookupNotFoundError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeLookupNotFound,
		Message: fmt.Sprintf("lookup with ID %s not found", id),
		Err:     ErrLookupNotFound,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
