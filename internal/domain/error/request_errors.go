// Package error defines domain-specific errors for the Kharcha ledger.
package error

// RequestErrorCode defines error codes raised by the HTTP layer itself.
// Format: REQ-XXYYYY where XX is the kind block and YYYY is specific error.
type RequestErrorCode string

const (
	ErrCodeInvalidRequestBody RequestErrorCode = "REQ-010001"
	ErrCodeInvalidID          RequestErrorCode = "REQ-010002"
	ErrCodeInvalidAmount      RequestErrorCode = "REQ-010003"
	ErrCodeInvalidQuery       RequestErrorCode = "REQ-010004"
	ErrCodeRateLimited        RequestErrorCode = "REQ-030001"
)

// RequestError represents a malformed HTTP request.
type RequestError struct {
	Code    RequestErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Kind returns the error classification encoded in the code.
func (e *RequestError) Kind() Kind {
	return kindFromCode(string(e.Code))
}

// ErrorCode returns the code as a string.
func (e *RequestError) ErrorCode() string {
	return string(e.Code)
}

// NewRequestError creates a new RequestError with the given code and message.
func NewRequestError(code RequestErrorCode, message string, err error) *RequestError {
	return &RequestError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
