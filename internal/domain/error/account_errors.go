// Package error defines domain-specific errors for the Kharcha ledger.
package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountNameRequired is returned when an account name is empty.
	ErrAccountNameRequired = errors.New("account name is required")

	// ErrAccountHasTransactions is returned when deleting an account that still owns transactions.
	ErrAccountHasTransactions = errors.New("account has transactions")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is the kind block and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAccountNameRequired AccountErrorCode = "ACC-010001"
	ErrCodeAccountNameTooLong  AccountErrorCode = "ACC-010002"
	ErrCodeInvalidBalance      AccountErrorCode = "ACC-010003"

	// Conflict errors (03XXXX)
	ErrCodeAccountHasTransactions AccountErrorCode = "ACC-030001"

	// Not found errors (04XXXX)
	ErrCodeAccountNotFound AccountErrorCode = "ACC-040001"

	// Storage errors (99XXXX)
	ErrCodeAccountStorage AccountErrorCode = "ACC-990001"
)

// AccountError represents a account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// Kind returns the error classification encoded in the code.
func (e *AccountError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *AccountError) ErrorCode() string {
	return string(e.Code)
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
