package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the closed set of attendance states. The three active statuses
// are terminal-free; voided is terminal and only reachable through Void.
type Status string

const (
	StatusPresent Status = "present"
	StatusHalfDay Status = "half-day"
	StatusAbsent  Status = "absent"
	StatusVoided  Status = "voided"
)

// IsActive reports whether s is one of the markable (non-voided) statuses.
func (s Status) IsActive() bool {
	return s == StatusPresent || s == StatusHalfDay || s == StatusAbsent
}

// IsValid reports whether s belongs to the closed status set.
func (s Status) IsValid() bool {
	return s.IsActive() || s == StatusVoided
}

type AttendanceRecord struct {
	ID             string
	LabourID       string
	Date           time.Time // calendar day, tenant-local, truncated to midnight
	Status         Status
	WageCalculated decimal.Decimal

	// Audit trail, set only when the record is voided
	PreviousStatus *Status
	VoidedAt       *time.Time
	VoidedBy       *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	LabourName *string
}

// Voided reports whether the record has reached its terminal state.
func (r AttendanceRecord) Voided() bool {
	return r.Status == StatusVoided
}
