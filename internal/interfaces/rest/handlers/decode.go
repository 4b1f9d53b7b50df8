package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/DanielPopoola/vin-gateway/internal/api"
	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/application/services"
	"github.com/DanielPopoola/vin-gateway/internal/interfaces/rest"
	"github.com/go-playground/validator"
)

const maxBodyBytes = 1 << 16

func (h *Handlers) DecodeVIN(w http.ResponseWriter, r *http.Request, vin string, params api.DecodeVINParams) {
	cmd := services.DecodeCommand{VIN: vin}
	if params.Provider != nil {
		cmd.Provider = string(*params.Provider)
	}
	if params.NoCache != nil {
		cmd.NoCache = *params.NoCache
	}
	if params.XApiKey != nil {
		cmd.APIKey = *params.XApiKey
	}

	h.decode(w, r, cmd)
}

func (h *Handlers) DecodeVehicle(w http.ResponseWriter, r *http.Request, params api.DecodeVehicleParams) {
	var req api.DecodeRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		rest.WriteError(w, application.NewInvalidInputError(fmt.Errorf("invalid request body: %w", err)), h.logger)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		rest.WriteError(w, validationError(err), h.logger)
		return
	}

	cmd := services.DecodeCommand{VIN: req.Vin}
	if req.Provider != nil {
		cmd.Provider = string(*req.Provider)
	}
	if req.NoCache != nil {
		cmd.NoCache = *req.NoCache
	}
	if params.XApiKey != nil {
		cmd.APIKey = *params.XApiKey
	}

	h.decode(w, r, cmd)
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, cmd services.DecodeCommand) {
	decoded, err := h.decodeService.Decode(r.Context(), cmd)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.VehicleResponse{
		Success: true,
		Data:    rest.ToAPIVehicle(decoded),
	})
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "Vin" {
				return application.NewInvalidVINError(err)
			}
		}
		fe := fieldErrs[0]
		return application.NewInvalidInputError(fmt.Errorf("field %s failed %q validation", fe.Field(), fe.Tag()))
	}
	return application.NewInvalidInputError(err)
}
