package model

import "errors"

// ErrorResponse represents the error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for validation failures
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeInvalidOrderType = "INVALID_ORDER_TYPE"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
)

// DomainError is a validation failure that is reported to the caller as-is.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// IsValidation reports whether err carries a DomainError.
func IsValidation(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// Common domain errors
var (
	ErrMissingFields    = NewDomainError(ErrCodeMissingField, "Missing required fields")
	ErrInvalidOrderType = NewDomainError(ErrCodeInvalidOrderType, "Order type must be rent or buy")
	ErrNoValidItems     = NewDomainError(ErrCodeInvalidQuantity, "At least one item with a positive quantity is required")
	ErrMissingContact   = NewDomainError(ErrCodeMissingField, "Missing fields")
	ErrInvalidJSON      = NewDomainError(ErrCodeInvalidJSON, "Invalid request body")
)

// ErrPersistence wraps every storage-layer failure.
var ErrPersistence = errors.New("persistence failure")
