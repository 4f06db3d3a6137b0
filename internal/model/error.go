package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidation       = "VALIDATION_FAILED"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeInvalidPeriod    = "INVALID_PERIOD"
	ErrCodeInvalidFormat    = "INVALID_FORMAT"
	ErrCodeModelNotTrained  = "MODEL_NOT_TRAINED"
	ErrCodeInsufficientData = "INSUFFICIENT_DATA"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business rule violation that is safe to show to the caller.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so wrapped validation
// errors still match their sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Message == "" || e.Message == t.Message)
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// ValidationError returns a VALIDATION_FAILED domain error with the given message.
func ValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// AsDomainError unwraps err into a *DomainError when it carries one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrProductNotFound  = NewDomainError(ErrCodeNotFound, "product not found")
	ErrCustomerNotFound = NewDomainError(ErrCodeNotFound, "customer not found")
	ErrSaleNotFound     = NewDomainError(ErrCodeNotFound, "sale not found")
	ErrEmployeeNotFound = NewDomainError(ErrCodeNotFound, "employee not found")
	ErrInvalidQuantity  = NewDomainError(ErrCodeValidation, "quantity must be greater than zero")
	ErrProductInUse     = NewDomainError(ErrCodeConflict, "product is referenced by existing sales")
	ErrCustomerInUse    = NewDomainError(ErrCodeConflict, "customer is referenced by existing sales")
	ErrInvalidPeriod    = NewDomainError(ErrCodeInvalidPeriod, "period must be daily, weekly or monthly")
	ErrInvalidFormat    = NewDomainError(ErrCodeInvalidFormat, "unsupported file format")
	ErrModelNotTrained  = NewDomainError(ErrCodeModelNotTrained, "no trained model is available")
	ErrNotEnoughData    = NewDomainError(ErrCodeInsufficientData, "not enough sales history to train a model")
)
