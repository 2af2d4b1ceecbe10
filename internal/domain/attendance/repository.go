package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for the attendance ledger.
// The backing store enforces the uniqueness invariant via a partial unique
// index on (labour_id, date) WHERE status <> 'voided'; Create surfaces a
// violation as a unique_violation error the service maps to
// ErrDuplicateActiveRecord.
type AttendanceRepository interface {
	// Create inserts a new active record
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// GetByID retrieves a record by id
	GetByID(ctx context.Context, id string) (AttendanceRecord, error)

	// BulkInsert writes all records in one batched transaction. Records whose
	// (labour_id, date) key already holds an active record are skipped, not
	// overwritten; the returned slice holds the inserted rows and skipped
	// holds the labour ids that conflicted.
	BulkInsert(ctx context.Context, records []AttendanceRecord) (inserted []AttendanceRecord, skipped []string, err error)

	// MarkVoided transitions a record to the terminal voided state, zeroing
	// the wage and stamping the audit fields. Guarded by status <> 'voided';
	// returns false when the record was already voided.
	MarkVoided(ctx context.Context, id string, previous Status, voidedAt time.Time, voidedBy string) (bool, error)

	// ListByDate returns records for a calendar day, voided ones included
	// only when includeVoided is set (voids ordered last)
	ListByDate(ctx context.Context, date time.Time, includeVoided bool) ([]AttendanceRecord, error)

	// ListRange returns non-voided records in the inclusive range, newest
	// date first
	ListRange(ctx context.Context, from, to time.Time) ([]AttendanceRecord, error)

	// ListByLabour returns a labour's non-voided records in the inclusive range
	ListByLabour(ctx context.Context, labourID string, from, to time.Time) ([]AttendanceRecord, error)

	// VoidAllForLabour voids every active record of a labour (roster cascade)
	VoidAllForLabour(ctx context.Context, labourID string, voidedAt time.Time, voidedBy string) (int64, error)

	// CountMarkedOnDate counts non-voided records for a day
	CountMarkedOnDate(ctx context.Context, date time.Time) (int64, error)
}
