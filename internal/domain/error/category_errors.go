// Package error defines domain-specific errors for the Kharcha ledger.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when a category with the same name already exists.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrInvalidSpendingType is returned when the spending type is not essential or lifestyle.
	ErrInvalidSpendingType = errors.New("invalid spending type")

	// ErrInvalidCategoryLimit is returned when a category limit is not positive.
	ErrInvalidCategoryLimit = errors.New("invalid category limit")

	// ErrCategoryInUse is returned when deleting a category that transactions still reference.
	ErrCategoryInUse = errors.New("category is in use")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is the kind block and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidSpendingType   CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryLimit  CategoryErrorCode = "CAT-010003"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010004"

	// Conflict errors (03XXXX)
	ErrCodeCategoryNameExists CategoryErrorCode = "CAT-030001"
	ErrCodeCategoryInUse      CategoryErrorCode = "CAT-030002"

	// Not found errors (04XXXX)
	ErrCodeCategoryNotFound CategoryErrorCode = "CAT-040001"

	// Storage errors (99XXXX)
	ErrCodeCategoryStorage CategoryErrorCode = "CAT-990001"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// Kind returns the error classification encoded in the code.
func (e *CategoryError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *CategoryError) ErrorCode() string {
	return string(e.Code)
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
