package labour

import (
	"context"
)

// LabourService defines business logic for roster management
type LabourService interface {
	// Create registers a new labour
	Create(ctx context.Context, req CreateLabourRequest) (LabourResponse, error)

	// Get retrieves a single labour by id
	Get(ctx context.Context, id string) (LabourResponse, error)

	// Update edits an existing labour (patch semantics)
	Update(ctx context.Context, req UpdateLabourRequest) (LabourResponse, error)

	// Delete removes a labour. Retention policy: the labour's active
	// attendance records are voided first (cascade-void), so the audit
	// trail of past payroll stays intact.
	Delete(ctx context.Context, id string, actorID string) error

	// List retrieves labours with optional filters
	List(ctx context.Context, filter LabourFilter) ([]LabourResponse, error)
}
