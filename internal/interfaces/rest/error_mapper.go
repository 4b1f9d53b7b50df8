package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/vin-gateway/internal/api"
	"github.com/DanielPopoola/vin-gateway/internal/application"
)

// BuildErrorResponse maps an application error to its status code and envelope.
func BuildErrorResponse(err error) (int, api.ErrorResponse) {
	svcErr := application.ToServiceError(err)

	return svcErr.HTTPStatus, api.ErrorResponse{
		Success: false,
		Error: api.ErrorDetail{
			Code:    svcErr.Code,
			Message: svcErr.Message,
		},
	}
}

// WriteError maps application errors to HTTP responses. Server-side
// failures are logged with their cause.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode, response := BuildErrorResponse(err)

	if statusCode >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", "status", statusCode, "code", response.Error.Code, "error", err)
	}

	WriteJSON(w, statusCode, response)
}

func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
