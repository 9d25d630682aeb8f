// Package error defines domain-specific errors for the Kharcha ledger.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidPeriod is returned when a period is not in YYYY-MM form.
	ErrInvalidPeriod = errors.New("period must be in YYYY-MM format")

	// ErrInvalidYear is returned when a year cannot be parsed.
	ErrInvalidYear = errors.New("year must be a four digit number")

	// ErrInvalidWindow is returned when a trailing window is out of range.
	ErrInvalidWindow = errors.New("window must be between 1 and 366 days")

	// ErrInvalidRange is returned when a named range is unknown.
	ErrInvalidRange = errors.New("range must be: week, month, or 6months")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is the kind block and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriod     DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidYear       DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidWindow     DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidSeriesType DashboardErrorCode = "DSH-010004"
	ErrCodeInvalidRange      DashboardErrorCode = "DSH-010005"

	// Storage errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// Kind returns the error classification encoded in the code.
func (e *DashboardError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *DashboardError) ErrorCode() string {
	return string(e.Code)
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
