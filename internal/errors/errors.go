// Package errors provides the structured application error taxonomy for comicd.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodePathEscape indicates a user-supplied path resolved outside the download root.
	ErrCodePathEscape ErrorCode = "path_escape"
	// ErrCodeIsDirectory indicates a file operation hit a directory; callers re-route to a listing.
	ErrCodeIsDirectory ErrorCode = "is_directory"
	// ErrCodeNotDirectory indicates a listing operation hit a regular file.
	ErrCodeNotDirectory ErrorCode = "not_directory"
	// ErrCodeFetchFailed indicates the fetch collaborator reported a failure.
	ErrCodeFetchFailed ErrorCode = "fetch_failed"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message,
// and optional cause. It supports errors.Is and errors.As via Unwrap.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// PathEscape creates a new PathEscape error.
func PathEscape(message string) *AppError {
	return &AppError{Code: ErrCodePathEscape, Message: message}
}

// PathEscapef creates a new PathEscape error with formatted message.
func PathEscapef(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodePathEscape, Message: fmt.Sprintf(format, args...)}
}

// IsDirectoryError creates a new IsDirectory error.
func IsDirectoryError(message string) *AppError {
	return &AppError{Code: ErrCodeIsDirectory, Message: message}
}

// NotDirectoryError creates a new NotDirectory error.
func NotDirectoryError(message string) *AppError {
	return &AppError{Code: ErrCodeNotDirectory, Message: message}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsPathEscape checks if an error is a PathEscape error.
func IsPathEscape(err error) bool {
	return isCode(err, ErrCodePathEscape)
}

// IsIsDirectory checks if an error is an IsDirectory error.
func IsIsDirectory(err error) bool {
	return isCode(err, ErrCodeIsDirectory)
}

// IsNotDirectory checks if an error is a NotDirectory error.
func IsNotDirectory(err error) bool {
	return isCode(err, ErrCodeNotDirectory)
}

// IsFetchFailed checks if an error is a FetchFailed error.
func IsFetchFailed(err error) bool {
	return isCode(err, ErrCodeFetchFailed)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
