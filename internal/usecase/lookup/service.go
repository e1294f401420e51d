package lookup

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/fipify-backend/internal/domain"
	"github.com/simaogato/fipify-backend/internal/usecase/projection"
)

// Bounds of the depreciation draw, in percent per year
var (
	MinDrawnRate = decimal.NewFromInt(5)
	MaxDrawnRate = decimal.NewFromInt(12)
)

// RateSource yields the annual depreciation rate assigned to a new record
type RateSource func() decimal.Decimal

// UniformRate draws a rate uniformly in [MinDrawnRate, MaxDrawnRate], rounded to one decimal
func UniformRate() decimal.Decimal {
	// tenths of a percent: 50..120 inclusive
	lo := MinDrawnRate.Shift(1).IntPart()
	hi := MaxDrawnRate.Shift(1).IntPart()
	return decimal.New(lo+rand.Int63n(hi-lo+1), -1)
}

// VehicleSelection identifies one vehicle in the price table
type VehicleSelection struct {
	BrandCode string
	ModelCode string
	YearCode  string
}

// Validate ensures every selection code is present
func (v VehicleSelection) Validate() error {
	if strings.TrimSpace(v.BrandCode) == "" || strings.TrimSpace(v.ModelCode) == "" || strings.TrimSpace(v.YearCode) == "" {
		return fmt.Errorf("%w: brand, model and year must all be selected", domain.ErrInvalidRecord)
	}
	return nil
}

// LookupService turns price table answers into stored valuation records
type LookupService struct {
	Source domain.ValuationSource
	Repo   domain.ValuationRepository
	Rate   RateSource
	Now    func() time.Time
}

// NewLookupService creates a new LookupService instance
func NewLookupService(source domain.ValuationSource, repo domain.ValuationRepository) *LookupService {
	return &LookupService{
		Source: source,
		Repo:   repo,
		Rate:   UniformRate,
		Now:    time.Now,
	}
}

// ListBrands lists the brands of the configured vehicle type
func (s *LookupService) ListBrands(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.Source.Brands(ctx)
}

// ListModels lists the models of a brand
func (s *LookupService) ListModels(ctx context.Context, brandCode string) ([]domain.CatalogItem, error) {
	if strings.TrimSpace(brandCode) == "" {
		return nil, fmt.Errorf("%w: brand must be selected", domain.ErrInvalidRecord)
	}
	return s.Source.Models(ctx, brandCode)
}

// ListYears lists the model years of a model
func (s *LookupService) ListYears(ctx context.Context, brandCode, modelCode string) ([]domain.CatalogItem, error) {
	if strings.TrimSpace(brandCode) == "" || strings.TrimSpace(modelCode) == "" {
		return nil, fmt.Errorf("%w: brand and model must be selected", domain.ErrInvalidRecord)
	}
	return s.Source.Years(ctx, brandCode, modelCode)
}

// Lookup performs the single price lookup for a selection and stores the result
// The depreciation rate is drawn here, once; every later read of the record reuses it
func (s *LookupService) Lookup(ctx context.Context, sel VehicleSelection) (*domain.ValuationRecord, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.Source.Vehicle(ctx, sel.BrandCode, sel.ModelCode, sel.YearCode)
	if err != nil {
		return nil, err
	}

	record, err := s.Normalize(raw)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save valuation record: %w", err)
	}

	return record, nil
}

// Normalize maps a raw lookup answer to a new record with a freshly drawn rate
func (s *LookupService) Normalize(raw *domain.RawValuation) (*domain.ValuationRecord, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty lookup answer", domain.ErrSourceUnavailable)
	}

	value, err := domain.ParseCurrency(raw.Price)
	if err != nil {
		return nil, err
	}

	record := &domain.ValuationRecord{
		ID:                     uuid.New(),
		Brand:                  strings.TrimSpace(raw.Brand),
		Model:                  strings.TrimSpace(raw.Model),
		ModelYear:              strings.TrimSpace(raw.ModelYear),
		FuelType:               strings.TrimSpace(raw.FuelType),
		ReferenceCode:          strings.TrimSpace(raw.ReferenceCode),
		ReferenceMonth:         strings.TrimSpace(raw.ReferenceMonth),
		CurrentValue:           value,
		AnnualDepreciationRate: s.Rate(),
		CreatedAt:              s.Now().UTC(),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Get retrieves a stored record
func (s *LookupService) Get(ctx context.Context, id uuid.UUID) (*domain.ValuationRecord, error) {
	return s.Repo.GetByID(ctx, id)
}

// Comparisons prices the on-screen peer set against a stored record
func (s *LookupService) Comparisons(ctx context.Context, id uuid.UUID) ([]domain.ComparisonEntry, error) {
	record, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return projection.Compare(record.CurrentValue, projection.DisplayPeers), nil
}
