package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/DanielPopoola/vin-gateway/internal/domain"
)

// toDomainModel: maps db model to domain entity
func toDomainModel(m LookupModel) (*domain.Lookup, error) {
	var attrs []domain.Attribute
	if len(m.Attributes) > 0 {
		if err := json.Unmarshal(m.Attributes, &attrs); err != nil {
			return nil, fmt.Errorf("decode attributes of lookup %s: %w", m.ID, err)
		}
	}

	return &domain.Lookup{
		ID:           m.ID,
		VIN:          domain.VIN(m.VIN),
		Provider:     domain.Provider(m.Provider),
		Status:       domain.LookupStatus(m.Status),
		Attributes:   attrs,
		ErrorMessage: m.ErrorMessage,
		CreatedAt:    m.CreatedAt.UTC(),
	}, nil
}

// toDBModel: maps domain entity to db model
func toDBModel(l *domain.Lookup) (*LookupModel, error) {
	attrs := l.Attributes
	if attrs == nil {
		attrs = []domain.Attribute{}
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("encode attributes of lookup %s: %w", l.ID, err)
	}

	return &LookupModel{
		ID:           l.ID,
		VIN:          string(l.VIN),
		Provider:     string(l.Provider),
		Status:       string(l.Status),
		Attributes:   raw,
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}, nil
}
