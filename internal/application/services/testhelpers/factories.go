package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/DanielPopoola/vin-gateway/internal/infrastructure/persistence/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	// TestVIN is a well-formed VIN used across service tests.
	TestVIN = "1HGCM82633A004352"
	// OtherVIN is a second well-formed VIN.
	OtherVIN = "5YJ3E1EA7KF317000"
)

// NewSucceededLookup builds a successful NHTSA lookup created at createdAt.
func NewSucceededLookup(t *testing.T, vin string, createdAt time.Time) *domain.Lookup {
	t.Helper()

	lookup, err := domain.NewLookup(uuid.New().String(), domain.VIN(vin), domain.ProviderNHTSA)
	require.NoError(t, err)

	lookup.Succeed([]domain.Attribute{
		{Key: "Make", Label: "Make", Value: "HONDA"},
		{Key: "Model", Label: "Model", Value: "Accord"},
		{Key: "Model Year", Label: "Model Year", Value: "2003"},
	})
	lookup.CreatedAt = createdAt.UTC()

	return lookup
}

// NewFailedLookup builds a failed NHTSA lookup.
func NewFailedLookup(t *testing.T, vin, message string, createdAt time.Time) *domain.Lookup {
	t.Helper()

	lookup, err := domain.NewLookup(uuid.New().String(), domain.VIN(vin), domain.ProviderNHTSA)
	require.NoError(t, err)

	lookup.Fail(message)
	lookup.CreatedAt = createdAt.UTC()

	return lookup
}

// SaveLookups persists lookups through the real repository.
func SaveLookups(t *testing.T, repo *postgres.LookupRepository, lookups ...*domain.Lookup) {
	t.Helper()

	for _, l := range lookups {
		require.NoError(t, repo.Save(context.Background(), l))
	}
}
