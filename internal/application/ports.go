package application

import (
	"context"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/domain"
)

// DecodeRequest is what a Decoder needs for one remote call.
type DecodeRequest struct {
	VIN domain.VIN
	// APIKey overrides the decoder's configured key when set.
	APIKey string
}

// DecodeResult carries the raw payload in whichever shape the provider
// returns: a flat object or a list of variable records.
type DecodeResult struct {
	Flat    map[string]any
	Records []domain.Record
}

// Attributes projects the payload against the provider whitelist.
func (r *DecodeResult) Attributes(p domain.Provider) []domain.Attribute {
	if r == nil {
		return nil
	}
	if r.Records != nil {
		return domain.ProjectRecords(r.Records, domain.FieldsFor(p))
	}
	return domain.ProjectFlat(r.Flat, domain.FieldsFor(p))
}

// Decoder is the port for a remote VIN decoding service.
type Decoder interface {
	Provider() domain.Provider
	Decode(ctx context.Context, req DecodeRequest) (*DecodeResult, error)
}

// KeyHolder is implemented by decoders that can fall back to a configured
// API key when the request carries none.
type KeyHolder interface {
	HasAPIKey() bool
}

// LookupRepository is the port for lookup history persistence.
type LookupRepository interface {
	Save(ctx context.Context, lookup *domain.Lookup) error
	FindByID(ctx context.Context, id string) (*domain.Lookup, error)
	FindLatestSuccess(ctx context.Context, vin domain.VIN, provider domain.Provider) (*domain.Lookup, error)
	ListByVIN(ctx context.Context, vin domain.VIN, limit, offset int) ([]*domain.Lookup, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*domain.Lookup, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
