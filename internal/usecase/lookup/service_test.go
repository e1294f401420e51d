package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/fipify-backend/internal/domain"
)

// MockValuationSource is a mock implementation of ValuationSource for testing
type MockValuationSource struct {
	mock.Mock
}

func (m *MockValuationSource) Brands(ctx context.Context) ([]domain.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

func (m *MockValuationSource) Models(ctx context.Context, brandCode string) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, brandCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

func (m *MockValuationSource) Years(ctx context.Context, brandCode, modelCode string) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, brandCode, modelCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

func (m *MockValuationSource) Vehicle(ctx context.Context, brandCode, modelCode, yearCode string) (*domain.RawValuation, error) {
	args := m.Called(ctx, brandCode, modelCode, yearCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawValuation), args.Error(1)
}

// MockValuationRepository is a mock implementation of ValuationRepository for testing
type MockValuationRepository struct {
	mock.Mock
}

func (m *MockValuationRepository) Save(ctx context.Context, record *domain.ValuationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockValuationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ValuationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValuationRecord), args.Error(1)
}

var fixedNow = time.Date(2024, time.August, 15, 10, 30, 0, 0, time.UTC)

func rawUno() *domain.RawValuation {
	return &domain.RawValuation{
		Brand:          "Fiat",
		Model:          "Uno Mille 1.0",
		ModelYear:      "2014",
		Price:          "R$ 50.000,00",
		FuelType:       "Gasolina",
		ReferenceCode:  "001004-9",
		ReferenceMonth: "agosto de 2024 ",
	}
}

func newTestService(source *MockValuationSource, repo *MockValuationRepository) *LookupService {
	svc := NewLookupService(source, repo)
	svc.Rate = func() decimal.Decimal { return decimal.RequireFromString("7.3") }
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func TestLookup_NormalizesAndSaves(t *testing.T) {
	ctx := context.Background()
	source := new(MockValuationSource)
	repo := new(MockValuationRepository)

	source.On("Vehicle", ctx, "21", "437", "2014-1").Return(rawUno(), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.ValuationRecord")).Return(nil)

	svc := newTestService(source, repo)
	record, err := svc.Lookup(ctx, VehicleSelection{BrandCode: "21", ModelCode: "437", YearCode: "2014-1"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, "Fiat", record.Brand)
	assert.Equal(t, "agosto de 2024", record.ReferenceMonth)
	assert.True(t, record.CurrentValue.Equal(decimal.NewFromInt(50000)))
	assert.True(t, record.AnnualDepreciationRate.Equal(decimal.RequireFromString("7.3")))
	assert.Equal(t, fixedNow, record.CreatedAt)

	source.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestLookup_DrawsRateOncePerLookup(t *testing.T) {
	ctx := context.Background()
	source := new(MockValuationSource)
	repo := new(MockValuationRepository)
	source.On("Vehicle", ctx, "21", "437", "2014-1").Return(rawUno(), nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	draws := 0
	svc := newTestService(source, repo)
	svc.Rate = func() decimal.Decimal {
		draws++
		return decimal.NewFromInt(6)
	}

	record, err := svc.Lookup(ctx, VehicleSelection{BrandCode: "21", ModelCode: "437", YearCode: "2014-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, draws)

	// reading the record back never draws again
	repo.On("GetByID", ctx, record.ID).Return(record, nil)
	stored, err := svc.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.True(t, stored.AnnualDepreciationRate.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, 1, draws)
}

func TestLookup_IncompleteSelection(t *testing.T) {
	source := new(MockValuationSource)
	svc := newTestService(source, new(MockValuationRepository))

	_, err := svc.Lookup(context.Background(), VehicleSelection{BrandCode: "21", ModelCode: "437"})

	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
	source.AssertNotCalled(t, "Vehicle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLookup_SourceFailure(t *testing.T) {
	ctx := context.Background()
	source := new(MockValuationSource)
	repo := new(MockValuationRepository)
	source.On("Vehicle", ctx, "1", "2", "3").Return(nil, domain.ErrSourceUnavailable)

	svc := newTestService(source, repo)
	_, err := svc.Lookup(ctx, VehicleSelection{BrandCode: "1", ModelCode: "2", YearCode: "3"})

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLookup_UnparseablePrice(t *testing.T) {
	ctx := context.Background()
	source := new(MockValuationSource)
	repo := new(MockValuationRepository)
	raw := rawUno()
	raw.Price = "sob consulta"
	source.On("Vehicle", ctx, "1", "2", "3").Return(raw, nil)

	svc := newTestService(source, repo)
	_, err := svc.Lookup(ctx, VehicleSelection{BrandCode: "1", ModelCode: "2", YearCode: "3"})

	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLookup_SaveFailure(t *testing.T) {
	ctx := context.Background()
	source := new(MockValuationSource)
	repo := new(MockValuationRepository)
	source.On("Vehicle", ctx, "1", "2", "3").Return(rawUno(), nil)
	repo.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

	svc := newTestService(source, repo)
	record, err := svc.Lookup(ctx, VehicleSelection{BrandCode: "1", ModelCode: "2", YearCode: "3"})

	assert.Nil(t, record)
	assert.ErrorContains(t, err, "disk full")
}

func TestLookup_EmptyAnswerIsSourceFailure(t *testing.T) {
	ctx := context.Background()
	source := new(MockValuationSource)
	repo := new(MockValuationRepository)
	source.On("Vehicle", ctx, "1", "2", "3").Return(nil, nil)

	svc := newTestService(source, repo)
	record, err := svc.Lookup(ctx, VehicleSelection{BrandCode: "1", ModelCode: "2", YearCode: "3"})

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestListModels_RequiresBrand(t *testing.T) {
	svc := newTestService(new(MockValuationSource), new(MockValuationRepository))

	_, err := svc.ListModels(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)

	_, err = svc.ListYears(context.Background(), "21", "")
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}

func TestListBrands_Passthrough(t *testing.T) {
	ctx := context.Background()
	source := new(MockValuationSource)
	brands := []domain.CatalogItem{{Code: "21", Name: "Fiat"}, {Code: "22", Name: "Ford"}}
	source.On("Brands", ctx).Return(brands, nil)

	svc := newTestService(source, new(MockValuationRepository))
	got, err := svc.ListBrands(ctx)

	require.NoError(t, err)
	assert.Equal(t, brands, got)
}

func TestComparisons_UsesDisplayPeers(t *testing.T) {
	ctx := context.Background()
	repo := new(MockValuationRepository)
	record := &domain.ValuationRecord{ID: uuid.New(), CurrentValue: decimal.NewFromInt(50000)}
	repo.On("GetByID", ctx, record.ID).Return(record, nil)

	svc := newTestService(new(MockValuationSource), repo)
	entries, err := svc.Comparisons(ctx, record.ID)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Hyundai", entries[0].Brand)
	assert.True(t, entries[0].DerivedValue.Equal(decimal.NewFromInt(52500)))
	assert.True(t, entries[1].DerivedValue.Equal(decimal.NewFromInt(49000)))
	assert.True(t, entries[2].DerivedValue.Equal(decimal.NewFromInt(46000)))
}

func TestComparisons_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockValuationRepository)
	id := uuid.New()
	repo.On("GetByID", ctx, id).Return(nil, domain.ErrRecordNotFound)

	svc := newTestService(new(MockValuationSource), repo)
	_, err := svc.Comparisons(ctx, id)

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestUniformRate_Bounds(t *testing.T) {
	for i := 0; i < 500; i++ {
		rate := UniformRate()
		assert.True(t, rate.GreaterThanOrEqual(MinDrawnRate), rate.String())
		assert.True(t, rate.LessThanOrEqual(MaxDrawnRate), rate.String())
		assert.True(t, rate.Equal(rate.Round(1)), rate.String())
	}
}
