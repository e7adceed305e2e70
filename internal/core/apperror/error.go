// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal    = "INTERNAL_ERROR"
	CodePersistence = "PERSISTENCE_ERROR"

	// Validation errors (400)
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	// Authorization errors (401)
	CodeUnauthorized = "UNAUTHORIZED"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// Validation reasons reported in Details["reason"].
const (
	ReasonRequired    = "required"
	ReasonNotNumeric  = "not_numeric"
	ReasonInvalidDate = "invalid_date"
	ReasonNotString   = "not_string"
)

// AppError is the standard error type for the service.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field, reason, id...)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// Field returns the offending field recorded in details, if any.
func (e *AppError) Field() string {
	f, _ := e.Details["field"].(string)
	return f
}

// Reason returns the validation reason recorded in details, if any.
func (e *AppError) Reason() string {
	r, _ := e.Details["reason"].(string)
	return r
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewFieldValidation creates a validation error bound to a single field.
func NewFieldValidation(field, reason, message string) *AppError {
	return NewValidation(message).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// NewRequiredField reports a missing mandatory field.
func NewRequiredField(field string) *AppError {
	return NewFieldValidation(field, ReasonRequired,
		fmt.Sprintf("field '%s' is required", field))
}

// NewNotNumeric reports a field that does not hold a finite number.
func NewNotNumeric(field string) *AppError {
	return NewFieldValidation(field, ReasonNotNumeric,
		fmt.Sprintf("field '%s' must be numeric", field))
}

// NewNotString reports a text field that received a non-string value.
func NewNotString(field string) *AppError {
	return NewFieldValidation(field, ReasonNotString,
		fmt.Sprintf("field '%s' must be a string", field))
}

// NewInvalidDate reports an unparseable date.
func NewInvalidDate(field string) *AppError {
	return NewFieldValidation(field, ReasonInvalidDate, "acquisition date is not valid")
}

// NewInvalidInput creates an input shape error (400), e.g. wrong JSON type.
func NewInvalidInput(field, message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewPersistence wraps a storage failure. These are logged by the
// repository and never returned to callers of mutating operations.
func NewPersistence(op string, err error) *AppError {
	return &AppError{
		Code:       CodePersistence,
		Message:    "failed to persist state",
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"operation": op},
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsValidation checks if error is CodeValidation
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsInvalidInput checks if error is CodeInvalidInput
func IsInvalidInput(err error) bool {
	return hasCode(err, CodeInvalidInput)
}

func hasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
