package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidRecord is returned when a valuation record is missing a field or carries
	// an unusable value
	ErrInvalidRecord = errors.New("invalid valuation record")

	// ErrRecordNotFound is returned by repositories when no record matches an ID
	ErrRecordNotFound = errors.New("valuation record not found")

	// ErrSourceUnavailable is returned when the external price table cannot answer
	ErrSourceUnavailable = errors.New("valuation source unavailable")
)

// MaxDepreciationRate is the upper bound for AnnualDepreciationRate (percent)
var MaxDepreciationRate = decimal.NewFromInt(100)

// ValuationRecord represents the normalized result of one vehicle price lookup.
// A record is created once, at lookup time, and is never mutated afterwards.
// AnnualDepreciationRate is drawn at creation and travels with the record so the
// on-screen display and the report always agree on it.
type ValuationRecord struct {
	ID                     uuid.UUID
	Brand                  string
	Model                  string
	ModelYear              string
	FuelType               string
	ReferenceCode          string // FIPE code, e.g. "001004-9"
	ReferenceMonth         string // e.g. "agosto de 2024"
	CurrentValue           decimal.Decimal
	AnnualDepreciationRate decimal.Decimal // percent, 0..100
	CreatedAt              time.Time
}

// Validate ensures the record can feed projections and reports
// Returns an error wrapping ErrInvalidRecord if validation fails
func (r *ValuationRecord) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"brand", r.Brand},
		{"model", r.Model},
		{"model year", r.ModelYear},
		{"fuel type", r.FuelType},
		{"reference code", r.ReferenceCode},
		{"reference month", r.ReferenceMonth},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s cannot be empty", ErrInvalidRecord, field.name)
		}
	}

	if r.CurrentValue.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: current value must be positive", ErrInvalidRecord)
	}

	if r.AnnualDepreciationRate.IsNegative() || r.AnnualDepreciationRate.GreaterThan(MaxDepreciationRate) {
		return fmt.Errorf("%w: depreciation rate must be between 0 and 100", ErrInvalidRecord)
	}

	return nil
}

// FormattedValue returns the current value the way the price table prints it
func (r *ValuationRecord) FormattedValue() string {
	return FormatCurrency(r.CurrentValue)
}

// CatalogItem is one selectable entry (brand, model or year) of the price table
type CatalogItem struct {
	Code string
	Name string
}

// RawValuation is the unnormalized lookup answer, with the price still formatted
type RawValuation struct {
	Brand          string
	Model          string
	ModelYear      string
	Price          string // e.g. "R$ 50.000,00"
	FuelType       string
	ReferenceCode  string
	ReferenceMonth string
}
