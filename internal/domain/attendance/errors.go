package attendance

import "errors"

// Attendance ledger domain errors
var (
	// Marking errors
	ErrFutureDate            = errors.New("cannot mark attendance for a future date")
	ErrDuplicateActiveRecord = errors.New("an active attendance record already exists for this labour and date")
	ErrInvalidStatus         = errors.New("attendance status is outside the allowed set")

	// Voiding errors
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrAlreadyVoided  = errors.New("attendance record has already been voided")
)
