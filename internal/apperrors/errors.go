package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientStock indicates that a product does not hold enough stock for a requested quantity.
// The invoicing workflow reports it per item and never aborts an invoice with it.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrUnauthorized indicates missing or invalid credentials or session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the authenticated user may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure in a backing component.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code together with the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap returns the underlying error so errors.Is keeps working through AppError.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps ErrValidation with a field-specific message.
func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, message)
}
