package rest

import (
	"github.com/DanielPopoola/vin-gateway/internal/api"
	"github.com/DanielPopoola/vin-gateway/internal/application/services"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
)

func ToAPIAttributes(attrs []domain.Attribute) []api.Attribute {
	out := make([]api.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, api.Attribute{Key: a.Key, Label: a.Label, Value: a.Value})
	}
	return out
}

func ToAPIVehicle(d *services.DecodedVehicle) api.Vehicle {
	return api.Vehicle{
		Vin:        d.Vehicle.VIN.String(),
		Provider:   api.Provider(d.Vehicle.Provider),
		Wmi:        d.Vehicle.VIN.WMI(),
		Attributes: ToAPIAttributes(d.Vehicle.Attributes),
		LookupId:   d.LookupID,
		Cached:     d.Cached,
		DecodedAt:  d.DecodedAt,
	}
}

func ToAPILookup(l *domain.Lookup) api.Lookup {
	return api.Lookup{
		Id:           l.ID,
		Vin:          l.VIN.String(),
		Provider:     api.Provider(l.Provider),
		Status:       api.LookupStatus(l.Status),
		Attributes:   ToAPIAttributes(l.Attributes),
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}
}

func ToAPILookups(lookups []*domain.Lookup) []api.Lookup {
	out := make([]api.Lookup, 0, len(lookups))
	for _, l := range lookups {
		out = append(out, ToAPILookup(l))
	}
	return out
}
