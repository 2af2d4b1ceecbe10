package attendance

import (
	"time"

	"github.com/shramik-labs/labour-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkRequest struct {
	LabourID string `json:"labour_id"`
	Date     string `json:"date"` // "YYYY-MM-DD", tenant-local
	Status   string `json:"status"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LabourID) {
		errs = append(errs, validator.ValidationError{
			Field:   "labour_id",
			Message: "labour_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !Status(r.Status).IsActive() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, half-day, absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkEntry struct {
	LabourID string `json:"labour_id"`
	Status   string `json:"status"`
}

type BulkMarkRequest struct {
	Date    string      `json:"date"`
	Entries []BulkEntry `json:"entries"`
}

func (r *BulkMarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entries",
			Message: "at least one entry is required",
		})
	}

	seen := make(map[string]struct{}, len(r.Entries))
	for _, entry := range r.Entries {
		if validator.IsEmpty(entry.LabourID) {
			errs = append(errs, validator.ValidationError{
				Field:   "entries",
				Message: "every entry requires a labour_id",
			})
			break
		}
		if _, dup := seen[entry.LabourID]; dup {
			errs = append(errs, validator.ValidationError{
				Field:   "entries",
				Message: "duplicate labour_id: " + entry.LabourID,
			})
			break
		}
		seen[entry.LabourID] = struct{}{}
		if !Status(entry.Status).IsActive() {
			errs = append(errs, validator.ValidationError{
				Field:   "entries",
				Message: "status must be one of: present, half-day, absent",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VoidRequest struct {
	RecordID string `json:"record_id"`
}

func (r *VoidRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "record_id",
			Message: "record_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID             string  `json:"id"`
	LabourID       string  `json:"labour_id"`
	LabourName     *string `json:"labour_name,omitempty"`
	Date           string  `json:"date"`
	Status         string  `json:"status"`
	WageCalculated string  `json:"wage_calculated"`
	PreviousStatus *string `json:"previous_status,omitempty"`
	VoidedAt       *string `json:"voided_at,omitempty"`
	VoidedBy       *string `json:"voided_by,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// SkippedEntry reports a bulk entry that was not saved and why, so callers
// never get a bare "bulk failed".
type SkippedEntry struct {
	LabourID string `json:"labour_id"`
	Reason   string `json:"reason"`
}

type BulkMarkResult struct {
	Date    string           `json:"date"`
	Saved   []RecordResponse `json:"saved"`
	Skipped []SkippedEntry   `json:"skipped,omitempty"`
}

// ToResponse maps an entity to its transport shape.
func ToResponse(rec AttendanceRecord) RecordResponse {
	resp := RecordResponse{
		ID:             rec.ID,
		LabourID:       rec.LabourID,
		LabourName:     rec.LabourName,
		Date:           rec.Date.Format("2006-01-02"),
		Status:         string(rec.Status),
		WageCalculated: rec.WageCalculated.String(),
		VoidedBy:       rec.VoidedBy,
		CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.PreviousStatus != nil {
		prev := string(*rec.PreviousStatus)
		resp.PreviousStatus = &prev
	}
	if rec.VoidedAt != nil {
		voidedAt := rec.VoidedAt.Format(time.RFC3339)
		resp.VoidedAt = &voidedAt
	}
	return resp
}
