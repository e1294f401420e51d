package domain

import (
	"context"

	"github.com/google/uuid"
)

// ValuationRepository defines the interface for valuation record persistence operations
type ValuationRepository interface {
	// Save stores a newly created record
	Save(ctx context.Context, record *ValuationRecord) error

	// GetByID retrieves a record by its ID
	// Returns an error wrapping ErrRecordNotFound if it does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*ValuationRecord, error)
}

// ValuationSource defines the interface of the external price table
type ValuationSource interface {
	// Brands lists every brand of the configured vehicle type
	Brands(ctx context.Context) ([]CatalogItem, error)

	// Models lists the models of a brand
	Models(ctx context.Context, brandCode string) ([]CatalogItem, error)

	// Years lists the model years (with fuel suffix) of a model
	Years(ctx context.Context, brandCode, modelCode string) ([]CatalogItem, error)

	// Vehicle performs the single price lookup for a brand/model/year selection
	Vehicle(ctx context.Context, brandCode, modelCode, yearCode string) (*RawValuation, error)
}
