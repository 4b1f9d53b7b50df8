package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type DecodeService struct {
	decoders        map[domain.Provider]application.Decoder
	defaultProvider domain.Provider
	lookupRepo      application.LookupRepository
	cacheTTL        time.Duration
	group           singleflight.Group
	callTimeout     time.Duration
	logger          *slog.Logger
	now             func() time.Time
}

// DefaultCallTimeout bounds a shared upstream decode once it is detached
// from the caller that started it.
const DefaultCallTimeout = 30 * time.Second

// NewDecodeService wires one decoder per provider. lookupRepo may be nil,
// in which case nothing is cached or recorded.
func NewDecodeService(
	decoders []application.Decoder,
	defaultProvider domain.Provider,
	lookupRepo application.LookupRepository,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *DecodeService {
	byProvider := make(map[domain.Provider]application.Decoder, len(decoders))
	for _, d := range decoders {
		byProvider[d.Provider()] = d
	}
	return &DecodeService{
		decoders:        byProvider,
		defaultProvider: defaultProvider,
		lookupRepo:      lookupRepo,
		cacheTTL:        cacheTTL,
		callTimeout:     DefaultCallTimeout,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *DecodeService) Decode(ctx context.Context, cmd DecodeCommand) (*DecodedVehicle, error) {
	provider := s.defaultProvider
	if cmd.Provider != "" {
		p, err := domain.ParseProvider(cmd.Provider)
		if err != nil {
			return nil, application.NewInvalidInputError(err)
		}
		provider = p
	}

	vin, err := domain.ParseVIN(cmd.VIN)
	if err != nil {
		return nil, application.NewInvalidVINError(err)
	}

	decoder, ok := s.decoders[provider]
	if !ok {
		return nil, application.NewInvalidInputError(fmt.Errorf("provider %s is not configured", provider))
	}

	// Checked before the cache so a keyless request never sees paid data.
	if provider.RequiresAPIKey() && strings.TrimSpace(cmd.APIKey) == "" && !hasConfiguredKey(decoder) {
		return nil, application.NewMissingAPIKeyError()
	}

	if !cmd.NoCache {
		if cached := s.findCached(ctx, vin, provider); cached != nil {
			return cached, nil
		}
	}

	// The shared call outlives any single caller; each caller still gives
	// up on its own context.
	key := string(provider) + ":" + string(vin) + ":" + ComputeHash(cmd.APIKey)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.callTimeout)
		defer cancel()
		return s.decodeAndRecord(callCtx, decoder, vin, cmd.APIKey)
	})

	select {
	case <-ctx.Done():
		return nil, application.ToServiceError(ctx.Err())
	case res := <-ch:
		if res.Shared {
			s.logger.Debug("decode shared with concurrent request", "vin", vin, "provider", provider)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*DecodedVehicle), nil
	}
}

func hasConfiguredKey(d application.Decoder) bool {
	if kh, ok := d.(application.KeyHolder); ok {
		return kh.HasAPIKey()
	}
	return true
}

func (s *DecodeService) findCached(ctx context.Context, vin domain.VIN, provider domain.Provider) *DecodedVehicle {
	if s.lookupRepo == nil || s.cacheTTL <= 0 {
		return nil
	}

	lookup, err := s.lookupRepo.FindLatestSuccess(ctx, vin, provider)
	if err != nil {
		if !errors.Is(err, domain.ErrLookupNotFound) {
			s.logger.Warn("lookup cache read failed", "vin", vin, "provider", provider, "error", err)
		}
		return nil
	}

	if !lookup.IsFresh(s.now(), s.cacheTTL) {
		return nil
	}

	s.logger.Debug("serving decode from cache", "vin", vin, "provider", provider, "lookup_id", lookup.ID)

	return &DecodedVehicle{
		Vehicle:   lookup.Vehicle(),
		LookupID:  lookup.ID,
		Cached:    true,
		DecodedAt: lookup.CreatedAt,
	}
}

func (s *DecodeService) decodeAndRecord(
	ctx context.Context,
	decoder application.Decoder,
	vin domain.VIN,
	apiKey string,
) (*DecodedVehicle, error) {
	provider := decoder.Provider()

	lookup, err := domain.NewLookup(uuid.New().String(), vin, provider)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	start := s.now()
	res, err := decoder.Decode(ctx, application.DecodeRequest{VIN: vin, APIKey: apiKey})
	if err != nil {
		svcErr := application.ToServiceError(err)
		s.logger.Warn("vin decode failed",
			"vin", vin,
			"provider", provider,
			"code", svcErr.Code,
			"error", err,
		)

		if svcErr.Code != application.ErrCodeMissingAPIKey {
			lookup.Fail(svcErr.Message)
			s.record(ctx, lookup)
		}
		return nil, svcErr
	}

	lookup.Succeed(res.Attributes(provider))
	s.record(ctx, lookup)

	s.logger.Info("vin decoded",
		"vin", vin,
		"provider", provider,
		"status", lookup.Status,
		"attributes", len(lookup.Attributes),
		"duration", s.now().Sub(start),
	)

	if lookup.Status == domain.LookupNoData {
		return nil, application.NewNoDataError()
	}

	return &DecodedVehicle{
		Vehicle:   lookup.Vehicle(),
		LookupID:  lookup.ID,
		DecodedAt: lookup.CreatedAt,
	}, nil
}

// record persists the lookup without failing the decode; history is
// best-effort.
func (s *DecodeService) record(ctx context.Context, lookup *domain.Lookup) {
	if s.lookupRepo == nil {
		return
	}
	if err := s.lookupRepo.Save(ctx, lookup); err != nil {
		s.logger.Error("failed to record lookup", "lookup_id", lookup.ID, "vin", lookup.VIN, "error", err)
	}
}

// WithCallTimeout overrides DefaultCallTimeout.
func (s *DecodeService) WithCallTimeout(d time.Duration) *DecodeService {
	if d > 0 {
		s.callTimeout = d
	}
	return s
}

// Providers lists the configured providers.
func (s *DecodeService) Providers() []domain.Provider {
	out := make([]domain.Provider, 0, len(s.decoders))
	for _, p := range []domain.Provider{domain.ProviderNinjas, domain.ProviderNHTSA} {
		if _, ok := s.decoders[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
