// Package errors provides structured errors with stable codes for swnetcfg.
//
// Every failure surfaced to the operator carries an ErrorCode. The CLI maps
// codes to process exit statuses with ExitCode, so scripts wrapping the
// wizard can tell a missing config file apart from an operator cancellation.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	ErrCodeInternal        ErrorCode = "INTERNAL"
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrCodeCanceled        ErrorCode = "CANCELED"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeNoInterfaces    ErrorCode = "NO_INTERFACES"
	ErrCodeUnreachable     ErrorCode = "UNREACHABLE"
	ErrCodeOutOfAttempts   ErrorCode = "OUT_OF_ATTEMPTS"
	ErrCodeMissingKey      ErrorCode = "MISSING_KEY"
	ErrCodeInvalidIdentity ErrorCode = "INVALID_IDENTITY"
	ErrCodeUnavailable     ErrorCode = "UNAVAILABLE"
)

// Exit statuses returned by the swnetcfg binary.
const (
	ExitOK              = 0
	ExitGeneral         = 1
	ExitCanceled        = 2
	ExitNotFound        = 3
	ExitNoInterfaces    = 4
	ExitUnreachable     = 5
	ExitOutOfAttempts   = 6
	ExitInvalidIdentity = 7
	ExitUnavailable     = 8
)

// StructuredError is an error with a code, a human message, an optional
// cause and optional key/value context for logging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a StructuredError without a cause.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// Newf creates a StructuredError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *StructuredError {
	return &StructuredError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a StructuredError around cause.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause}
}

// WrapWithContext creates a StructuredError around cause with extra context.
func WrapWithContext(code ErrorCode, message string, cause error, ctx map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: ctx}
}

// CodeOf returns the code of the first StructuredError in err's chain.
// Context cancellation maps to ErrCodeCanceled; anything else is internal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return ErrCodeCanceled
	}
	return ErrCodeInternal
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch CodeOf(err) {
	case ErrCodeCanceled:
		return ExitCanceled
	case ErrCodeNotFound:
		return ExitNotFound
	case ErrCodeNoInterfaces:
		return ExitNoInterfaces
	case ErrCodeUnreachable:
		return ExitUnreachable
	case ErrCodeOutOfAttempts:
		return ExitOutOfAttempts
	case ErrCodeMissingKey, ErrCodeInvalidIdentity:
		return ExitInvalidIdentity
	case ErrCodeUnavailable:
		return ExitUnavailable
	default:
		return ExitGeneral
	}
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
