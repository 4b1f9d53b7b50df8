package handlers

import (
	"net/http"

	"github.com/DanielPopoola/vin-gateway/internal/api"
)

// Routes registers every API route plus the OpenAPI document on a new mux.
func Routes(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)
	api.HandlerFromMux(h, mux, h.ParamErrorHandler)
	return mux
}
