package labour

import "errors"

// Roster domain errors
var (
	ErrLabourNotFound = errors.New("labour not found")
	ErrAadhaarExists  = errors.New("aadhaar number already registered")
)
