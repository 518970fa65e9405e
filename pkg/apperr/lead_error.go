package apperr

import (
	"errors"
	"fmt"
)

// Error codes
const (
	// Configuration errors (fatal, abort the run before any record)
	CodeConfigValidation = "CONFIG_VALIDATION"
	CodeMissingField     = "MISSING_FIELD"

	// Record errors (recoverable, per-record)
	CodeInvalidRecord = "INVALID_RECORD"

	// Input errors
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"

	// Internal errors
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// Constructor functions
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Configuration errors

// ConfigValidation reports a fatal configuration problem. field is the
// YAML path of the offending key (e.g. "thresholds.highPriority").
func ConfigValidation(field, reason string) *AppError {
	return &AppError{
		Code:    CodeConfigValidation,
		Message: fmt.Sprintf("invalid configuration at '%s': %s", field, reason),
		Details: map[string]any{"field": field},
	}
}

func MissingField(field string) *AppError {
	return &AppError{
		Code:    CodeMissingField,
		Message: fmt.Sprintf("missing required configuration key: %s", field),
		Details: map[string]any{"field": field},
	}
}

// Record errors

// InvalidRecord marks one record as unprocessable. The batch driver skips
// it and continues; it never aborts the run.
func InvalidRecord(index int, reason string) *AppError {
	return &AppError{
		Code:    CodeInvalidRecord,
		Message: fmt.Sprintf("invalid record at index %d: %s", index, reason),
		Details: map[string]any{"index": index},
	}
}

// Input errors

func InvalidInput(field, reason string) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: fmt.Sprintf("invalid input for '%s': %s", field, reason),
		Details: map[string]any{"field": field},
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Internal errors

func Internal(message string) *AppError {
	if message == "" {
		message = "internal error"
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
	}
}

func InternalWithError(err error) *AppError {
	return &AppError{
		Code:    CodeInternalError,
		Message: "internal error",
		Err:     err,
	}
}

// Helper functions
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalWithError(err)
}

func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsInvalidRecord reports whether err is a per-record, recoverable error.
func IsInvalidRecord(err error) bool {
	return HasCode(err, CodeInvalidRecord)
}

// IsConfigValidation reports whether err is a fatal configuration error.
func IsConfigValidation(err error) bool {
	return HasCode(err, CodeConfigValidation) || HasCode(err, CodeMissingField)
}
