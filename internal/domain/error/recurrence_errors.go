// Package error defines domain-specific errors for the Kharcha ledger.
package error

import "errors"

// Recurrence domain errors.
var (
	// ErrCorruptTemplate is returned when a recurring template cannot be advanced.
	ErrCorruptTemplate = errors.New("recurring template is corrupt")

	// ErrRunLockUnavailable is returned when the run lock backend cannot be reached.
	ErrRunLockUnavailable = errors.New("run lock unavailable")

	// ErrRunLockLost is returned when a run no longer owns the run lock.
	ErrRunLockLost = errors.New("run lock lost")

	// ErrBackfillNotFound is returned when a backfill marker does not exist.
	ErrBackfillNotFound = errors.New("backfill marker not found")
)

// RecurrenceErrorCode defines error codes for recurrence errors.
// Format: REC-XXYYYY where XX is the kind block and YYYY is specific error.
type RecurrenceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCorruptTemplate RecurrenceErrorCode = "REC-010001"

	// Conflict errors (03XXXX)
	ErrCodeRunRateLimited RecurrenceErrorCode = "REC-030001"
	ErrCodeRunLockLost    RecurrenceErrorCode = "REC-030002"

	// Not found errors (04XXXX)
	ErrCodeBackfillNotFound RecurrenceErrorCode = "REC-040001"

	// Storage errors (99XXXX)
	ErrCodeRecurrenceStorage  RecurrenceErrorCode = "REC-990001"
	ErrCodeRunLockUnavailable RecurrenceErrorCode = "REC-990002"
)

// RecurrenceError represents a recurrence error with code and message.
type RecurrenceError struct {
	Code    RecurrenceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurrenceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurrenceError) Unwrap() error {
	return e.Err
}

// Kind returns the error classification encoded in the code.
func (e *RecurrenceError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *RecurrenceError) ErrorCode() string {
	return string(e.Code)
}

// NewRecurrenceError creates a new RecurrenceError with the given code and message.
func NewRecurrenceError(code RecurrenceErrorCode, message string, err error) *RecurrenceError {
	return &RecurrenceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
