// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockDecoder struct {
	mock.Mock
	provider domain.Provider
}

// NewMockDecoder registers expectation assertion on test cleanup.
func NewMockDecoder(t *testing.T, provider domain.Provider) *MockDecoder {
	m := &MockDecoder{provider: provider}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDecoder) Provider() domain.Provider {
	return m.provider
}

func (m *MockDecoder) Decode(ctx context.Context, req application.DecodeRequest) (*application.DecodeResult, error) {
	args := m.Called(ctx, req)
	var res *application.DecodeResult
	if v := args.Get(0); v != nil {
		res = v.(*application.DecodeResult)
	}
	return res, args.Error(1)
}

type MockLookupRepository struct {
	mock.Mock
}

func NewMockLookupRepository(t *testing.T) *MockLookupRepository {
	m := &MockLookupRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLookupRepository) Save(ctx context.Context, lookup *domain.Lookup) error {
	return m.Called(ctx, lookup).Error(0)
}

func (m *MockLookupRepository) FindByID(ctx context.Context, id string) (*domain.Lookup, error) {
	args := m.Called(ctx, id)
	return lookupArg(args, 0), args.Error(1)
}

func (m *MockLookupRepository) FindLatestSuccess(ctx context.Context, vin domain.VIN, provider domain.Provider) (*domain.Lookup, error) {
	args := m.Called(ctx, vin, provider)
	return lookupArg(args, 0), args.Error(1)
}

func (m *MockLookupRepository) ListByVIN(ctx context.Context, vin domain.VIN, limit, offset int) ([]*domain.Lookup, error) {
	args := m.Called(ctx, vin, limit, offset)
	return lookupsArg(args, 0), args.Error(1)
}

func (m *MockLookupRepository) ListRecent(ctx context.Context, limit, offset int) ([]*domain.Lookup, error) {
	args := m.Called(ctx, limit, offset)
	return lookupsArg(args, 0), args.Error(1)
}

func (m *MockLookupRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func lookupArg(args mock.Arguments, i int) *domain.Lookup {
	if v := args.Get(i); v != nil {
		return v.(*domain.Lookup)
	}
	return nil
}

func lookupsArg(args mock.Arguments, i int) []*domain.Lookup {
	if v := args.Get(i); v != nil {
		return v.([]*domain.Lookup)
	}
	return nil
}

var (
	_ application.Decoder          = (*MockDecoder)(nil)
	_ application.LookupRepository = (*MockLookupRepository)(nil)
)
