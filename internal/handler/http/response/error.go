package response

import (
	"errors"
	"net/http"

	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
	"github.com/shramik-labs/labour-backend-go/internal/domain/master/category"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/database"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Transport failures surface as 503 so clients can retry instead of
	// treating the day's marking as rejected
	if database.IsUnavailable(err) {
		ServiceUnavailable(w, "Record store unavailable, try again")
		return
	}

	switch {
	// Attendance ledger errors
	case errors.Is(err, attendance.ErrFutureDate):
		BadRequest(w, "Attendance cannot be marked for a future date", nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)
	case errors.Is(err, attendance.ErrDuplicateActiveRecord):
		Conflict(w, "An active attendance record already exists for this labour and date")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyVoided):
		Conflict(w, "Attendance record is already voided")

	// Roster errors
	case errors.Is(err, labour.ErrLabourNotFound):
		NotFound(w, "Labour not found")
	case errors.Is(err, labour.ErrAadhaarExists):
		Conflict(w, "Aadhaar number already registered")

	// Master data errors
	case errors.Is(err, category.ErrCategoryNotFound):
		NotFound(w, "Category not found")
	case errors.Is(err, category.ErrCategoryNameExists):
		Conflict(w, "Category name already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
