package domain_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLookup(t *testing.T) {
	t.Run("creates lookup", func(t *testing.T) {
		l, err := domain.NewLookup("lk-1", "1HGCM82633A004352", domain.ProviderNinjas)

		require.NoError(t, err)
		assert.Equal(t, "lk-1", l.ID)
		assert.Equal(t, domain.ProviderNinjas, l.Provider)
		assert.NotZero(t, l.CreatedAt)
	})

	t.Run("rejects empty ID", func(t *testing.T) {
		_, err := domain.NewLookup("", "1HGCM82633A004352", domain.ProviderNinjas)
		assert.ErrorContains(t, err, "lookup ID is required")
	})

	t.Run("rejects invalid VIN", func(t *testing.T) {
		_, err := domain.NewLookup("lk-1", "SHORT", domain.ProviderNinjas)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidVIN))
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		_, err := domain.NewLookup("lk-1", "1HGCM82633A004352", "carfax")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidProvider))
	})
}

func TestLookup_Outcomes(t *testing.T) {
	newLookup := func(t *testing.T) *domain.Lookup {
		l, err := domain.NewLookup("lk-1", "1HGCM82633A004352", domain.ProviderNHTSA)
		require.NoError(t, err)
		return l
	}

	t.Run("succeed with attributes", func(t *testing.T) {
		l := newLookup(t)
		l.Succeed([]domain.Attribute{{Key: "Make", Label: "Make", Value: "HONDA"}})

		assert.Equal(t, domain.LookupSucceeded, l.Status)
		assert.Nil(t, l.ErrorMessage)
		assert.Len(t, l.Vehicle().Attributes, 1)
	})

	t.Run("succeed without attributes is no data", func(t *testing.T) {
		l := newLookup(t)
		l.Succeed(nil)

		assert.Equal(t, domain.LookupNoData, l.Status)
		require.NotNil(t, l.ErrorMessage)
		assert.Equal(t, domain.NoDataMessage, *l.ErrorMessage)
	})

	t.Run("fail records message", func(t *testing.T) {
		l := newLookup(t)
		l.Fail("Invalid VIN")

		assert.Equal(t, domain.LookupFailed, l.Status)
		assert.Equal(t, "Invalid VIN", *l.ErrorMessage)
	})
}

func TestLookup_IsFresh(t *testing.T) {
	l, err := domain.NewLookup("lk-1", "1HGCM82633A004352", domain.ProviderNHTSA)
	require.NoError(t, err)
	l.Succeed([]domain.Attribute{{Key: "Make", Label: "Make", Value: "HONDA"}})

	now := l.CreatedAt.Add(time.Minute)
	assert.True(t, l.IsFresh(now, time.Hour))
	assert.False(t, l.IsFresh(now, 30*time.Second))
	assert.False(t, l.IsFresh(now, 0), "zero ttl disables caching")

	l.Fail("boom")
	assert.False(t, l.IsFresh(now, time.Hour), "failures are never served from cache")
}
