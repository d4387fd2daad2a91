package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type returned by divide operations.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Fatal reports whether the error code marks the whole call as untrustworthy.
func (e *AppError) Fatal() bool { return IsFatalCode(e.Code) }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// --- Constructors ---

// WorkerPanic creates an AppError for a transformation that panicked on the
// element at index while running on the given worker.
func WorkerPanic(worker, index int, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeWorkerPanic,
		Message: fmt.Sprintf("transformation panicked on element %d", index),
		Details: map[string]any{"worker": worker, "index": index},
		Cause:   cause,
	}
}

// TransformFailed creates an AppError for a transformation that returned an
// error for the element at index.
func TransformFailed(index int, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeTransformFailed,
		Message: fmt.Sprintf("transformation failed on element %d", index),
		Details: map[string]any{"index": index},
		Cause:   cause,
	}
}

// InvalidConfig creates an AppError for an invalid configuration value.
func InvalidConfig(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code:    ErrCodeInvalidConfig,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
		Details: details,
	}
}

// Validation creates an AppError carrying an aggregated validation message.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidConfig,
		Message: message,
	}
}

// MissingField creates an AppError for a missing required configuration field.
func MissingField(field string) *AppError {
	return &AppError{
		Code:    ErrCodeMissingField,
		Message: fmt.Sprintf("missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// InvariantViolation creates an AppError for a broken internal invariant.
func InvariantViolation(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvariantViolation,
		Message: reason,
	}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err's chain holds an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
