package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/DanielPopoola/vin-gateway/internal/infrastructure/persistence/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LookupRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDatabase
	repo   *postgres.LookupRepository
}

func TestLookupRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed suite in short mode")
	}
	suite.Run(t, new(LookupRepositoryTestSuite))
}

func (s *LookupRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDatabase(s.T())
	s.repo = postgres.NewLookupRepository(s.testDB.DB.Pool)
}

func (s *LookupRepositoryTestSuite) TearDownSuite() {
	s.testDB.Cleanup(s.T())
}

func (s *LookupRepositoryTestSuite) TearDownTest() {
	s.testDB.CleanTables(s.T())
}

func (s *LookupRepositoryTestSuite) TestSaveAndFindByID_RoundTripsAttributes() {
	ctx := context.Background()
	t := s.T()

	lookup := testhelpers.NewSucceededLookup(t, testhelpers.TestVIN, time.Now())
	require.NoError(t, s.repo.Save(ctx, lookup))

	got, err := s.repo.FindByID(ctx, lookup.ID)
	require.NoError(t, err)
	assert.Equal(t, lookup.Attributes, got.Attributes)
	assert.Equal(t, domain.ProviderNHTSA, got.Provider)
	assert.Nil(t, got.ErrorMessage)
}

func (s *LookupRepositoryTestSuite) TestSave_FailedLookupHasEmptyAttributes() {
	ctx := context.Background()
	t := s.T()

	lookup := testhelpers.NewFailedLookup(t, testhelpers.TestVIN, "boom", time.Now())
	require.NoError(t, s.repo.Save(ctx, lookup))

	got, err := s.repo.FindByID(ctx, lookup.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Attributes)
	assert.Equal(t, domain.LookupFailed, got.Status)
}

func (s *LookupRepositoryTestSuite) TestFindByID_NotFound() {
	_, err := s.repo.FindByID(context.Background(), uuid.New().String())
	assert.ErrorIs(s.T(), err, domain.ErrLookupNotFound)
}

func (s *LookupRepositoryTestSuite) TestFindLatestSuccess_IgnoresFailures() {
	ctx := context.Background()
	t := s.T()
	now := time.Now()

	older := testhelpers.NewSucceededLookup(t, testhelpers.TestVIN, now.Add(-2*time.Hour))
	latest := testhelpers.NewSucceededLookup(t, testhelpers.TestVIN, now.Add(-time.Hour))
	failed := testhelpers.NewFailedLookup(t, testhelpers.TestVIN, "boom", now)
	testhelpers.SaveLookups(t, s.repo, older, latest, failed)

	got, err := s.repo.FindLatestSuccess(ctx, testhelpers.TestVIN, domain.ProviderNHTSA)
	require.NoError(t, err)
	assert.Equal(t, latest.ID, got.ID)

	_, err = s.repo.FindLatestSuccess(ctx, testhelpers.TestVIN, domain.ProviderNinjas)
	assert.ErrorIs(t, err, domain.ErrLookupNotFound)
}

func (s *LookupRepositoryTestSuite) TestDeleteOlderThan() {
	ctx := context.Background()
	t := s.T()
	now := time.Now()

	expired := testhelpers.NewSucceededLookup(t, testhelpers.TestVIN, now.Add(-48*time.Hour))
	kept := testhelpers.NewSucceededLookup(t, testhelpers.TestVIN, now)
	testhelpers.SaveLookups(t, s.repo, expired, kept)

	deleted, err := s.repo.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = s.repo.FindByID(ctx, expired.ID)
	assert.ErrorIs(t, err, domain.ErrLookupNotFound)

	recent, err := s.repo.ListRecent(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, kept.ID, recent[0].ID)
}
