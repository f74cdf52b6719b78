package model

import (
	"errors"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string       `json:"error"`
	Message       string       `json:"message"`
	Details       []FieldError `json:"details,omitempty"`
	CorrelationID string       `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeInvalidArgument  = "INVALID_ARGUMENT"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeNoRowsUpdated    = "NO_ROWS_UPDATED"
	ErrCodeDuplicate        = "DUPLICATE"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
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

// Common domain errors
var (
	ErrInvalidFixedDiscount = NewDomainError(ErrCodeInvalidArgument, "Fixed discount amount must be greater than zero")
	ErrInvalidPercent       = NewDomainError(ErrCodeInvalidArgument, "Discount percent must be greater than 0 and at most 100")
	ErrInvalidVoucherType   = NewDomainError(ErrCodeInvalidArgument, "Voucher type must be FIXED_AMOUNT or PERCENT_DISCOUNT")
	ErrInvalidOrderStatus   = NewDomainError(ErrCodeInvalidArgument, "Unknown order status")
	ErrCustomerNotFound     = NewDomainError(ErrCodeNotFound, "Customer not found")
	ErrVoucherNotFound      = NewDomainError(ErrCodeNotFound, "Voucher not found")
	ErrOrderNotFound        = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrDuplicateCustomer    = NewDomainError(ErrCodeDuplicate, "A customer with this email already exists")

	// ErrNoRowsUpdated is returned by update-by-id operations that matched nothing.
	ErrNoRowsUpdated = NewDomainError(ErrCodeNoRowsUpdated, "no rows updated")
)

// FieldError describes a single rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a request or entity fails field validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrorCode extracts the domain code from err, or ErrCodeInternalError when
// err carries none.
func ErrorCode(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return ErrCodeValidationFailed
	}

	var dErr *DomainError
	if errors.As(err, &dErr) {
		return dErr.Code
	}

	return ErrCodeInternalError
}
