package application

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DanielPopoola/vin-gateway/internal/domain"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidVIN         = "INVALID_VIN"
	ErrCodeMissingAPIKey      = "MISSING_API_KEY"
	ErrCodeDecoder            = "DECODER_ERROR"
	ErrCodeDecoderUnavailable = "DECODER_UNAVAILABLE"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeNoData             = "NO_DATA"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeTimeout            = "TIMEOUT"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeCanceled           = "REQUEST_CANCELED"
)

// MissingAPIKeyMessage asks the caller for an API-Ninjas key.
const MissingAPIKeyMessage = "Please enter your API-Ninjas API key."

func NewInvalidVINError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidVIN,
		Message:    domain.InvalidVINMessage,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewMissingAPIKeyError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeMissingAPIKey,
		Message:    MissingAPIKeyMessage,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewDecoderError maps an upstream failure onto a gateway response.
// Upstream 5xx becomes 502, rate limiting passes through, any other
// rejection (bad key, unknown VIN) becomes 422.
func NewDecoderError(decErr *DecoderError) *ServiceError {
	svcErr := &ServiceError{
		Code:       ErrCodeDecoder,
		Message:    decErr.Message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Err:        decErr,
	}
	switch {
	case decErr.StatusCode >= 500:
		svcErr.Code = ErrCodeDecoderUnavailable
		svcErr.HTTPStatus = http.StatusBadGateway
	case decErr.StatusCode == http.StatusTooManyRequests:
		svcErr.Code = ErrCodeRateLimited
		svcErr.HTTPStatus = http.StatusTooManyRequests
	}
	return svcErr
}

func NewDecoderUnavailableError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeDecoderUnavailable,
		Message:    "VIN decoding service is unavailable",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewNoDataError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNoData,
		Message:    domain.NoDataMessage,
		HTTPStatus: http.StatusNotFound,
	}
}

func NewNotFoundError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotFound,
		Message:    "Lookup not found",
		HTTPStatus: http.StatusNotFound,
		Err:        err,
	}
}

func NewTimeoutError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeTimeout,
		Message:    "Request timed out waiting for the decoder",
		HTTPStatus: http.StatusGatewayTimeout,
		Err:        err,
	}
}

// StatusClientClosedRequest is the nginx convention for a caller that went
// away before the response was written.
const StatusClientClosedRequest = 499

func NewCanceledError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeCanceled,
		Message:    "Request was canceled",
		HTTPStatus: StatusClientClosedRequest,
		Err:        err,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInvalidInputError(err error) *ServiceError {
	msg := "Invalid input"
	if err != nil {
		msg = err.Error()
	}
	return &ServiceError{
		Code:       ErrCodeInvalidInput,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}
