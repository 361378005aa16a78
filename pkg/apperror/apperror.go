package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid login or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Checkout errors. These surface as transient operator-facing messages;
// none of them terminates the sale or the payment session.
var (
	// ErrInvalidInput is returned by the pricing engine when fed a
	// non-finite number (NaN or ±Inf).
	ErrInvalidInput = &AppError{Code: http.StatusUnprocessableEntity, Message: "Numeric input is not a finite number"}
	// ErrInvalidAmount is returned when a tender amount is zero or negative.
	ErrInvalidAmount = &AppError{Code: http.StatusUnprocessableEntity, Message: "Tender amount must be greater than zero"}
	// ErrExceedsBalance is returned when a card-like tender exceeds the
	// remaining balance. Card tenders never produce change.
	ErrExceedsBalance = &AppError{Code: http.StatusUnprocessableEntity, Message: "Card amount cannot exceed the remaining balance"}
	// ErrBalanceNotZero is returned by finalize while the sale is not
	// fully paid.
	ErrBalanceNotZero = &AppError{Code: http.StatusConflict, Message: "Sale balance has not been fully paid"}
	// ErrTillClosed is returned when a sale is finalized while till
	// control is enabled and no cash session is open.
	ErrTillClosed = &AppError{Code: http.StatusConflict, Message: "Cannot finalize a sale without an open cash session"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewUpstreamError wraps a failure from an external collaborator (database,
// printer, document numbering). The original message is surfaced verbatim so
// the operator sees what the backend rejected.
func NewUpstreamError(err error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: err.Error(),
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
