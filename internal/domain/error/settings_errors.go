// Package error defines domain-specific errors for the Kharcha ledger.
package error

import "errors"

// Settings domain errors.
var (
	// ErrInvalidPercentage is returned when a percentage falls outside 0..100.
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")

	// ErrInvalidMonthlyBudget is returned when the monthly budget is negative.
	ErrInvalidMonthlyBudget = errors.New("monthly budget must not be negative")

	// ErrResetNotConfirmed is returned when a ledger reset is requested without confirmation.
	ErrResetNotConfirmed = errors.New("reset must be confirmed")
)

// SettingsErrorCode defines error codes for settings errors.
// Format: SET-XXYYYY where XX is the kind block and YYYY is specific error.
type SettingsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPercentage    SettingsErrorCode = "SET-010001"
	ErrCodeInvalidMonthlyBudget SettingsErrorCode = "SET-010002"
	ErrCodeResetNotConfirmed    SettingsErrorCode = "SET-010003"

	// Storage errors (99XXXX)
	ErrCodeSettingsStorage SettingsErrorCode = "SET-990001"
	ErrCodeResetFailed     SettingsErrorCode = "SET-990002"
)

// SettingsError represents a settings error with code and message.
type SettingsError struct {
	Code    SettingsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SettingsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SettingsError) Unwrap() error {
	return e.Err
}

// Kind returns the error classification encoded in the code.
func (e *SettingsError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *SettingsError) ErrorCode() string {
	return string(e.Code)
}

// NewSettingsError creates a new SettingsError with the given code and message.
func NewSettingsError(code SettingsErrorCode, message string, err error) *SettingsError {
	return &SettingsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
