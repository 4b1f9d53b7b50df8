package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/google/uuid"
)

type QueryService struct {
	lookupRepo application.LookupRepository
}

func NewQueryService(
	lookupRepo application.LookupRepository,
) *QueryService {
	return &QueryService{
		lookupRepo: lookupRepo,
	}
}

func (s *QueryService) FindByID(ctx context.Context, id string) (*domain.Lookup, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, application.NewInvalidInputError(fmt.Errorf("invalid lookup id %q", id))
	}

	lookup, err := s.lookupRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrLookupNotFound) {
			return nil, application.NewNotFoundError(err)
		}
		return nil, application.NewInternalError(err)
	}
	return lookup, nil
}

// ListByVIN returns a VIN's lookups, newest first.
func (s *QueryService) ListByVIN(ctx context.Context, rawVIN string, limit, offset int) ([]*domain.Lookup, error) {
	vin, err := domain.ParseVIN(rawVIN)
	if err != nil {
		return nil, application.NewInvalidVINError(err)
	}

	limit, offset = NormalizePage(limit, offset)
	lookups, err := s.lookupRepo.ListByVIN(ctx, vin, limit, offset)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return lookups, nil
}

func (s *QueryService) Recent(ctx context.Context, limit, offset int) ([]*domain.Lookup, error) {
	limit, offset = NormalizePage(limit, offset)
	lookups, err := s.lookupRepo.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return lookups, nil
}
