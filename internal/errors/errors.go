package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Predefined error codes. The diagnostic transforms raise exactly two kinds
// of failure: a missing or invalid caller-supplied parameter, or a breach of
// a data contract the inputs were required to satisfy. Neither is transient
// and neither is retried.
const (
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeDataSource         = "DATA_SOURCE_ERROR"
	CodeRenderFailed       = "RENDER_FAILED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// Common error constructors

// ConfigInvalid reports a missing or invalid required parameter, such as
// grid bounds that can be neither supplied nor derived.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// ConfigInvalidf is ConfigInvalid with formatting.
func ConfigInvalidf(format string, args ...interface{}) *AppError {
	return ConfigInvalid(fmt.Sprintf(format, args...))
}

// InvariantViolation reports a breach of a data contract: mismatched holdout
// durations, a mis-shaped probability grid, out-of-range probabilities.
func InvariantViolation(message string) *AppError {
	return New(CodeInvariantViolation, message)
}

// InvariantViolationf is InvariantViolation with formatting.
func InvariantViolationf(format string, args ...interface{}) *AppError {
	return InvariantViolation(fmt.Sprintf(format, args...))
}

func DataSourceError(source string, cause error) *AppError {
	return &AppError{
		Code:    CodeDataSource,
		Message: fmt.Sprintf("%s data source error", source),
		Cause:   cause,
	}
}

func RenderFailed(chart string, cause error) *AppError {
	return &AppError{
		Code:    CodeRenderFailed,
		Message: fmt.Sprintf("failed to render %s", chart),
		Cause:   cause,
	}
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// IsConfigInvalid checks whether err carries the CONFIG_INVALID code.
func IsConfigInvalid(err error) bool {
	return GetCode(err) == CodeConfigInvalid
}

// IsInvariantViolation checks whether err carries the INVARIANT_VIOLATION code.
func IsInvariantViolation(err error) bool {
	return GetCode(err) == CodeInvariantViolation
}
