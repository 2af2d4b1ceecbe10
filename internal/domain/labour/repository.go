package labour

import (
	"context"
)

type LabourFilter struct {
	Status     string
	CategoryID string
	Search     string
}

// Counts carries the roster headcounts used by dashboard aggregation.
type Counts struct {
	Total  int64
	Active int64
}

// LabourRepository defines data access methods for the roster.
type LabourRepository interface {
	// Create inserts a new labour
	Create(ctx context.Context, l Labour) (Labour, error)

	// GetByID retrieves a labour by id
	GetByID(ctx context.Context, id string) (Labour, error)

	// Update persists edited fields of an existing labour
	Update(ctx context.Context, l Labour) (Labour, error)

	// Delete removes a labour row; attendance history is voided beforehand
	// by the service (cascade-void retention policy)
	Delete(ctx context.Context, id string) error

	// List retrieves labours with optional filters, newest first
	List(ctx context.Context, filter LabourFilter) ([]Labour, error)

	// CountByStatus returns total and active headcounts in one query
	CountByStatus(ctx context.Context) (Counts, error)
}
