package handlers

import (
	"net/http"

	"github.com/DanielPopoola/vin-gateway/internal/api"
	"github.com/DanielPopoola/vin-gateway/internal/application/services"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/DanielPopoola/vin-gateway/internal/interfaces/rest"
)

func (h *Handlers) GetLookup(w http.ResponseWriter, r *http.Request, id string) {
	lookup, err := h.queryService.FindByID(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.LookupResponse{
		Success: true,
		Data:    rest.ToAPILookup(lookup),
	})
}

func (h *Handlers) ListLookups(w http.ResponseWriter, r *http.Request, params api.ListLookupsParams) {
	var limit, offset int
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Offset != nil {
		offset = *params.Offset
	}
	limit, offset = services.NormalizePage(limit, offset)

	var (
		lookups []*domain.Lookup
		err     error
	)
	if params.Vin != nil && *params.Vin != "" {
		lookups, err = h.queryService.ListByVIN(r.Context(), *params.Vin, limit, offset)
	} else {
		lookups, err = h.queryService.Recent(r.Context(), limit, offset)
	}
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.LookupListResponse{
		Success: true,
		Data:    rest.ToAPILookups(lookups),
		Page: api.Page{
			Limit:  limit,
			Offset: offset,
			Count:  len(lookups),
		},
	})
}
