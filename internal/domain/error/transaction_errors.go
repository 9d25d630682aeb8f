// Package error defines domain-specific errors for the Kharcha ledger.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidTransactionDate is returned when the transaction timestamp is missing.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrNoteTooLong is returned when the note exceeds the maximum length.
	ErrNoteTooLong = errors.New("note too long")

	// ErrUnknownAccount is returned when a transaction references a missing account.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrUnknownCategory is returned when a transaction references a missing category.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidFilter is returned when a list filter cannot be applied.
	ErrInvalidFilter = errors.New("invalid transaction filter")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is the kind block and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010003"
	ErrCodeNoteTooLong              TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidRecurrence        TransactionErrorCode = "TXN-010005"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010006"
	ErrCodeInvalidFilter            TransactionErrorCode = "TXN-010007"

	// Reference errors (02XXXX)
	ErrCodeUnknownAccount  TransactionErrorCode = "TXN-020001"
	ErrCodeUnknownCategory TransactionErrorCode = "TXN-020002"

	// Not found errors (04XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-040001"

	// Storage errors (99XXXX)
	ErrCodeTransactionStorage TransactionErrorCode = "TXN-990001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Kind returns the error classification encoded in the code.
func (e *TransactionError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *TransactionError) ErrorCode() string {
	return string(e.Code)
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
