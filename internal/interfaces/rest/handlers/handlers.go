package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/vin-gateway/internal/api"
	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/application/services"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/DanielPopoola/vin-gateway/internal/interfaces/rest"
	"github.com/go-playground/validator"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers implements api.ServerInterface.
type Handlers struct {
	decodeService *services.DecodeService
	queryService  *services.QueryService
	db            Pinger
	validate      *validator.Validate
	logger        *slog.Logger
}

func NewHandlers(
	decodeService *services.DecodeService,
	queryService *services.QueryService,
	db Pinger,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		decodeService: decodeService,
		queryService:  queryService,
		db:            db,
		validate:      mustValidator(),
		logger:        logger,
	}
}

// NewValidator returns a validator that understands the "vin" tag.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation("vin", func(fl validator.FieldLevel) bool {
		return domain.IsValidVIN(string(domain.NormalizeVIN(fl.Field().String())))
	})
	if err != nil {
		return nil, fmt.Errorf("register vin validation: %w", err)
	}
	return v, nil
}

func mustValidator() *validator.Validate {
	v, err := NewValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// ParamErrorHandler renders parameter binding failures.
func (h *Handlers) ParamErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	rest.WriteError(w, application.NewInvalidInputError(err), h.logger)
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.Error("health check failed", "error", err)
			rest.WriteJSON(w, http.StatusServiceUnavailable, api.ErrorResponse{
				Success: false,
				Error:   api.ErrorDetail{Code: "UNAVAILABLE", Message: "database unreachable"},
			})
			return
		}
	}

	providers := make([]api.Provider, 0, 2)
	for _, p := range h.decodeService.Providers() {
		providers = append(providers, api.Provider(p))
	}

	rest.WriteJSON(w, http.StatusOK, api.HealthResponse{Status: "ok", Providers: providers})
}

// Ensure Handlers implements ServerInterface
var _ api.ServerInterface = (*Handlers)(nil)
