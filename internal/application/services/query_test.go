package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/application/services"
	"github.com/DanielPopoola/vin-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/vin-gateway/internal/infrastructure/persistence/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type QueryServiceTestSuite struct {
	suite.Suite
	testDB       *testhelpers.TestDatabase
	lookupRepo   *postgres.LookupRepository
	queryService *services.QueryService
}

func TestQueryServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed suite in short mode")
	}
	suite.Run(t, new(QueryServiceTestSuite))
}

func (suite *QueryServiceTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.lookupRepo = postgres.NewLookupRepository(suite.testDB.DB.Pool)
	suite.queryService = services.NewQueryService(suite.lookupRepo)
}

func (suite *QueryServiceTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

// TearDownTest runs after each test
func (suite *QueryServiceTestSuite) TearDownTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *QueryServiceTestSuite) Test_FindByID_Success() {
	ctx := context.Background()
	t := suite.T()

	saved := testhelpers.NewSucceededLookup(t, testhelpers.TestVIN, time.Now())
	testhelpers.SaveLookups(t, suite.lookupRepo, saved)

	got, err := suite.queryService.FindByID(ctx, saved.ID)
	require.NoError(t, err)

	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, saved.VIN, got.VIN)
	assert.Equal(t, saved.Status, got.Status)
	assert.Equal(t, saved.Attributes, got.Attributes)
	assert.WithinDuration(t, saved.CreatedAt, got.CreatedAt, time.Millisecond)
}

func (suite *QueryServiceTestSuite) Test_FindByID_NotFound() {
	_, err := suite.queryService.FindByID(context.Background(), uuid.New().String())

	svcErr, ok := application.IsServiceError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), application.ErrCodeNotFound, svcErr.Code)
}

func (suite *QueryServiceTestSuite) Test_ListByVIN_NewestFirstAndPaged() {
	ctx := context.Background()
	t := suite.T()
	now := time.Now()

	oldest := testhelpers.NewSucceededLookup(t, testhelpers.TestVIN, now.Add(-3*time.Hour))
	failed := testhelpers.NewFailedLookup(t, testhelpers.TestVIN, "API request failed with status: 503", now.Add(-2*time.Hour))
	newest := testhelpers.NewSucceededLookup(t, testhelpers.TestVIN, now.Add(-time.Hour))
	other := testhelpers.NewSucceededLookup(t, testhelpers.OtherVIN, now)
	testhelpers.SaveLookups(t, suite.lookupRepo, oldest, failed, newest, other)

	all, err := suite.queryService.ListByVIN(ctx, testhelpers.TestVIN, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, newest.ID, all[0].ID)
	assert.Equal(t, failed.ID, all[1].ID)
	assert.Equal(t, oldest.ID, all[2].ID)
	require.NotNil(t, all[1].ErrorMessage)
	assert.Equal(t, "API request failed with status: 503", *all[1].ErrorMessage)

	page, err := suite.queryService.ListByVIN(ctx, testhelpers.TestVIN, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, failed.ID, page[0].ID)
}

func (suite *QueryServiceTestSuite) Test_ListByVIN_InvalidVIN() {
	_, err := suite.queryService.ListByVIN(context.Background(), "NOT-A-VIN", 10, 0)

	svcErr, ok := application.IsServiceError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), application.ErrCodeInvalidVIN, svcErr.Code)
}

func (suite *QueryServiceTestSuite) Test_Recent_DefaultsPageSize() {
	ctx := context.Background()
	t := suite.T()

	for i := 0; i < 25; i++ {
		testhelpers.SaveLookups(t, suite.lookupRepo,
			testhelpers.NewSucceededLookup(t, testhelpers.TestVIN, time.Now().Add(-time.Duration(i)*time.Minute)))
	}

	recent, err := suite.queryService.Recent(ctx, 0, -5)
	require.NoError(t, err)
	assert.Len(t, recent, 20)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].CreatedAt.After(recent[i-1].CreatedAt))
	}
}

func (suite *QueryServiceTestSuite) Test_FindByID_MalformedID() {
	_, err := suite.queryService.FindByID(context.Background(), "not-a-uuid")

	svcErr, ok := application.IsServiceError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), application.ErrCodeInvalidInput, svcErr.Code)
}
