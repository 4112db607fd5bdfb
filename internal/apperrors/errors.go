// Package apperrors provides coded errors shared by the store, the services and the
// HTTP layer, so that each layer can classify a failure without string matching.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an error for programmatic handling.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAccessDenied indicates the actor may not perform the operation.
	ErrCodeAccessDenied ErrorCode = "ACCESS_DENIED"
	// ErrCodeUnauthorized indicates missing or invalid credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeConflict indicates the resource already exists.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeUnavailable indicates the backing store failed.
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error carries a code, a caller-facing message and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Fields holds per-field messages for ErrCodeInvalidRequest.
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps cause with a code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Validation builds an ErrCodeInvalidRequest error from per-field messages.
func Validation(fields map[string]string) *Error {
	return &Error{Code: ErrCodeInvalidRequest, Message: "validation failed", Fields: fields}
}

// CodeOf returns the code of the first *Error in err's chain, or ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
