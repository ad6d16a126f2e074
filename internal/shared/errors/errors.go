// Package errors is the error taxonomy shared by every bounded context.
// Handlers turn an AppError into a status code and a JSON error body;
// anything else surfaces as an internal error.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation_error"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeConflict      ErrorType = "conflict"
	ErrorTypeConfiguration ErrorType = "configuration_error"
	ErrorTypeInternal      ErrorType = "internal_error"
	ErrorTypeBadRequest    ErrorType = "bad_request"
	ErrorTypeRateLimit     ErrorType = "rate_limited"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:    http.StatusBadRequest,
	ErrorTypeBadRequest:    http.StatusBadRequest,
	ErrorTypeNotFound:      http.StatusNotFound,
	ErrorTypeConflict:      http.StatusConflict,
	ErrorTypeRateLimit:     http.StatusTooManyRequests,
	ErrorTypeConfiguration: http.StatusInternalServerError,
	ErrorTypeInternal:      http.StatusInternalServerError,
}

// AppError carries the category, the HTTP status it maps to and an optional
// detail string safe to show to API callers.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details == "" {
		return string(e.Type) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
}

// New builds an AppError of type t. Only the first detail is kept.
func New(t ErrorType, message string, details ...string) *AppError {
	code, ok := statusByType[t]
	if !ok {
		code = http.StatusInternalServerError
	}
	e := &AppError{Type: t, Message: message, Code: code}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func NewValidationError(message string, details ...string) *AppError {
	return New(ErrorTypeValidation, message, details...)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return New(ErrorTypeNotFound, message, details...)
}

func NewConflictError(message string, details ...string) *AppError {
	return New(ErrorTypeConflict, message, details...)
}

// NewConfigurationError reports a missing or broken setting, such as an
// establishment without a usable timezone. Retrying will not help.
func NewConfigurationError(message string, details ...string) *AppError {
	return New(ErrorTypeConfiguration, message, details...)
}

func NewInternalError(message string, details ...string) *AppError {
	return New(ErrorTypeInternal, message, details...)
}

func NewBadRequestError(message string, details ...string) *AppError {
	return New(ErrorTypeBadRequest, message, details...)
}

// NewRateLimitError reports a caller over its request quota.
func NewRateLimitError(message string, details ...string) *AppError {
	return New(ErrorTypeRateLimit, message, details...)
}

// GetAppError returns the first AppError in err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Is reports whether err's chain holds an AppError of type t.
func Is(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsConflictError(err error) bool      { return Is(err, ErrorTypeConflict) }
func IsNotFoundError(err error) bool      { return Is(err, ErrorTypeNotFound) }
func IsValidationError(err error) bool    { return Is(err, ErrorTypeValidation) }
func IsConfigurationError(err error) bool { return Is(err, ErrorTypeConfiguration) }

// Wrap passes AppErrors through and hides anything else behind an internal
// error carrying message.
func Wrap(err error, message string) error {
	if err == nil || GetAppError(err) != nil {
		return err
	}
	return NewInternalError(message, err.Error())
}

var duplicateMarkers = []string{
	"Duplicate entry",          // mysql
	"UNIQUE constraint failed", // sqlite
	"duplicate key",
	"unique constraint",
}

// IsDuplicateError recognises unique-key violations from the supported drivers.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, m := range duplicateMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
