package apisports

import "fmt"

// Error codes for provider failures
const (
	ErrCodeNetwork     = "NETWORK_ERROR"
	ErrCodeRateLimited = "RATE_LIMITED"
	ErrCodeServer      = "SERVER_ERROR"
	ErrCodeInvalidData = "INVALID_DATA"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeUnsupported = "UNSUPPORTED"
	ErrCodeBadRequest  = "BAD_REQUEST"
)

// ProviderError represents an error from the API-SPORTS provider layer.
type ProviderError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("apisports %s [%s]: %s: %v", e.Op, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("apisports %s [%s]: %s", e.Op, e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new provider error.
func NewProviderError(op, code, message string, err error) *ProviderError {
	return &ProviderError{Op: op, Code: code, Message: message, Err: err}
}

// IsUnsupported reports whether the error marks a provider capability gap.
func IsUnsupported(err error) bool {
	pe, ok := err.(*ProviderError)
	return ok && pe.Code == ErrCodeUnsupported
}
