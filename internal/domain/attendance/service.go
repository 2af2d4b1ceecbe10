package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for the attendance ledger.
// The current tenant-local day and the acting admin are explicit parameters
// so the ledger stays free of wall-clock and session coupling.
type AttendanceService interface {
	// Mark records attendance for one labour on one date
	Mark(ctx context.Context, req MarkRequest, today time.Time) (RecordResponse, error)

	// BulkMark applies Mark semantics per entry in a single batched write;
	// the result reports saved and skipped entries individually
	BulkMark(ctx context.Context, req BulkMarkRequest, today time.Time) (BulkMarkResult, error)

	// Void transitions a record to its terminal state, preserving the
	// original status in the audit trail
	Void(ctx context.Context, recordID string, actorID string) error

	// RecordsForDate lists records for a day; audit mode includes voided ones
	RecordsForDate(ctx context.Context, date string, includeVoided bool) ([]RecordResponse, error)

	// RecordsInRange lists non-voided records in an inclusive range, newest first
	RecordsInRange(ctx context.Context, from, to string) ([]RecordResponse, error)
}
