package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/fipify-backend/internal/domain"
)

// valuationRepository implements domain.ValuationRepository
type valuationRepository struct {
	db *DB
}

// NewValuationRepository creates a new valuation record repository
func NewValuationRepository(db *DB) domain.ValuationRepository {
	return &valuationRepository{db: db}
}

// Save inserts a new record. Records are immutable, so an existing ID is an error.
func (r *valuationRepository) Save(ctx context.Context, record *domain.ValuationRecord) error {
	query := `
		INSERT INTO valuation_records (
			id, brand, model, model_year, fuel_type, reference_code, reference_month,
			current_value, annual_depreciation_rate, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Brand,
		record.Model,
		record.ModelYear,
		record.FuelType,
		record.ReferenceCode,
		record.ReferenceMonth,
		record.CurrentValue.StringFixed(2),
		record.AnnualDepreciationRate.StringFixed(2),
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert valuation record: %w", err)
	}

	return nil
}

// GetByID retrieves a record by its ID
func (r *valuationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ValuationRecord, error) {
	query := `
		SELECT id, brand, model, model_year, fuel_type, reference_code, reference_month,
		       current_value, annual_depreciation_rate, created_at
		FROM valuation_records
		WHERE id = $1
	`

	var record domain.ValuationRecord
	var valueStr, rateStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.Brand,
		&record.Model,
		&record.ModelYear,
		&record.FuelType,
		&record.ReferenceCode,
		&record.ReferenceMonth,
		&valueStr,
		&rateStr,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get valuation record: %w", err)
	}

	// Parse current_value (NUMERIC)
	record.CurrentValue, err = decimal.NewFromString(valueStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current_value: %w", err)
	}

	// Parse annual_depreciation_rate (NUMERIC)
	record.AnnualDepreciationRate, err = decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse annual_depreciation_rate: %w", err)
	}

	return &record, nil
}
