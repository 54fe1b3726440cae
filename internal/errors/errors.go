package errors

import (
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

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeDegenerateResample  = "DEGENERATE_RESAMPLE"
	CodeExternalComputation = "EXTERNAL_COMPUTATION"
	CodeConfigInvalid       = "CONFIG_INVALID"
	CodeParseError          = "PARSE_ERROR"
	CodeInternalError       = "INTERNAL_ERROR"
)

// Common error constructors

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InvalidInputf(format string, args ...interface{}) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf(format, args...))
}

// InvalidInputCause wraps a domain validation error with the INVALID_INPUT
// code while keeping the sentinel reachable through errors.Is.
func InvalidInputCause(cause error) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: "invalid input",
		Cause:   cause,
	}
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// DegenerateResample wraps the domain error raised when a bootstrap trial
// empties a stratum and the caller opted into strict mode.
func DegenerateResample(cause error) *AppError {
	return &AppError{
		Code:    CodeDegenerateResample,
		Message: "resample degenerated",
		Cause:   cause,
	}
}

// ExternalComputation wraps a failure raised by a statistic collaborator. The
// cause is preserved unchanged so errors.Is/As reach the collaborator's error.
func ExternalComputation(statistic string, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalComputation,
		Message: fmt.Sprintf("statistic %s failed", statistic),
		Cause:   cause,
	}
}

// ParseError wraps a file-format failure from a data loader.
func ParseError(source string, cause error) *AppError {
	return &AppError{
		Code:    CodeParseError,
		Message: fmt.Sprintf("failed to parse %s", source),
		Cause:   cause,
	}
}
