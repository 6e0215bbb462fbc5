package services

import (
	"context"
	"errors"
	"testing"

	"github.com/landscan/zoneaudit/internal/analysis"
	"github.com/landscan/zoneaudit/internal/logger"
	"github.com/landscan/zoneaudit/internal/models"
	"github.com/landscan/zoneaudit/internal/zoning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPropertyRepository is a mock implementation of PropertyRepository for testing
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) UpsertBatch(ctx context.Context, properties []models.PropertyRecord) (int, error) {
	args := m.Called(ctx, properties)
	return args.Int(0), args.Error(1)
}

func (m *MockPropertyRepository) ListAll(ctx context.Context) ([]models.PropertyRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyRecord), args.Error(1)
}

func (m *MockPropertyRepository) FindByParcelID(ctx context.Context, parcelID string) (*models.PropertyRecord, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyRecord), args.Error(1)
}

func (m *MockPropertyRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newTestService(repo *MockPropertyRepository) AnalysisService {
	return NewAnalysisService(repo, zoning.DefaultRules(), 10, logger.New("test"))
}

func sampleProperties() []models.PropertyRecord {
	undersized := models.PropertyRecord{
		ParcelID:        "0001-0001",
		Address:         "10 ELM ST",
		Zoning:          "SRB",
		LandUseDesc:     "SINGLE FAM",
		TotalValue:      425000,
		ParcelAreaAcres: 0.2, // 8712 sqft, below the 15000 minimum
	}
	undersized.DeriveAreas()

	conforming := models.PropertyRecord{
		ParcelID:        "0001-0002",
		Address:         "12 ELM ST",
		Zoning:          "GRA",
		LandUseDesc:     "TWO FAM",
		TotalValue:      500000,
		ParcelAreaAcres: 0.5,
	}
	conforming.DeriveAreas()

	return []models.PropertyRecord{undersized, conforming}
}

func TestRunAnalysis_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	service := newTestService(mockRepo)

	ctx := context.Background()
	mockRepo.On("ListAll", ctx).Return(sampleProperties(), nil)

	// Act
	result, err := service.RunAnalysis(ctx)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.TotalPropertiesAnalyzed)
	assert.False(t, result.AnalysisDate.IsZero())
	assert.Contains(t, result.ZoningAnalysis.Zones, "SRB")
	assert.Contains(t, result.ZoningAnalysis.Zones, "GRA")

	srb := result.ViolationAnalysis.ViolationsByZone["SRB"]
	require.NotNil(t, srb)
	assert.Equal(t, 1, srb.ViolationsByType[analysis.ViolationUndersizedLot])

	mockRepo.AssertExpectations(t)
}

func TestRunAnalysis_NoProperties(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	service := newTestService(mockRepo)

	ctx := context.Background()
	mockRepo.On("ListAll", ctx).Return([]models.PropertyRecord{}, nil)

	// Act
	result, err := service.RunAnalysis(ctx)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoProperties)
	mockRepo.AssertExpectations(t)
}

func TestRunAnalysis_RepositoryError(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	service := newTestService(mockRepo)

	ctx := context.Background()
	dbErr := errors.New("connection reset")
	mockRepo.On("ListAll", ctx).Return(nil, dbErr)

	// Act
	result, err := service.RunAnalysis(ctx)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, dbErr)
	mockRepo.AssertExpectations(t)
}

func TestAnalyzeProperties_RetainsLatest(t *testing.T) {
	// Arrange
	mockRepo := new(MockPropertyRepository)
	service := newTestService(mockRepo)

	// Act
	result := service.AnalyzeProperties(sampleProperties())
	latest, err := service.Latest()

	// Assert
	require.NoError(t, err)
	assert.Same(t, result, latest)
	mockRepo.AssertNotCalled(t, "ListAll")
}

func TestLatest_NoAnalysis(t *testing.T) {
	// Arrange
	service := newTestService(new(MockPropertyRepository))

	// Act
	latest, err := service.Latest()

	// Assert
	assert.Nil(t, latest)
	assert.ErrorIs(t, err, ErrNoAnalysis)
}

func TestZoneSummary_Success(t *testing.T) {
	// Arrange
	service := newTestService(new(MockPropertyRepository))
	service.AnalyzeProperties(sampleProperties())

	// Act
	summary, err := service.ZoneSummary("SRB")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, "SRB", summary.Zone)
	require.NotNil(t, summary.Rule)
	assert.Equal(t, 15000.0, summary.Rule.MinLotSizeSqft)
	require.NotNil(t, summary.Metrics)
	assert.Equal(t, 1, summary.Metrics.ParcelCount)
	require.NotNil(t, summary.Violations)
	assert.Equal(t, 1, summary.Violations.ParcelsWithViolations)
}

func TestZoneSummary_RuleOnlyZone(t *testing.T) {
	// A zone in the ordinance with no parcels in the data still resolves,
	// with only the rule populated.
	service := newTestService(new(MockPropertyRepository))
	service.AnalyzeProperties(sampleProperties())

	summary, err := service.ZoneSummary("WB")

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.NotNil(t, summary.Rule)
	assert.Nil(t, summary.Metrics)
	assert.Nil(t, summary.Violations)
}

func TestZoneSummary_UnknownZone(t *testing.T) {
	service := newTestService(new(MockPropertyRepository))
	service.AnalyzeProperties(sampleProperties())

	summary, err := service.ZoneSummary("NOPE")

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestZoneSummary_NoAnalysis(t *testing.T) {
	service := newTestService(new(MockPropertyRepository))

	summary, err := service.ZoneSummary("SRB")

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, ErrNoAnalysis)
}
