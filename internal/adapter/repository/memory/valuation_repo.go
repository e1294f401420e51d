package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/simaogato/fipify-backend/internal/domain"
)

// ValuationRepository keeps records in process memory
// Used when no database is configured and in tests
type ValuationRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]domain.ValuationRecord
}

// NewValuationRepository creates an empty repository
func NewValuationRepository() *ValuationRepository {
	return &ValuationRepository{records: make(map[uuid.UUID]domain.ValuationRecord)}
}

// Save stores a copy of the record. Records are immutable, so an existing ID is an error.
func (r *ValuationRepository) Save(_ context.Context, record *domain.ValuationRecord) error {
	if record == nil {
		return fmt.Errorf("%w: nil record", domain.ErrInvalidRecord)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; exists {
		return fmt.Errorf("valuation record %s already exists", record.ID)
	}
	r.records[record.ID] = *record
	return nil
}

// GetByID returns a copy of the stored record
func (r *ValuationRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.ValuationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}
	return &record, nil
}
