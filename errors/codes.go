package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Worker errors
const (
	// ErrCodeWorkerPanic indicates the transformation panicked inside a worker.
	ErrCodeWorkerPanic ErrorCode = "WORKER_PANIC"
	// ErrCodeTransformFailed indicates the transformation returned an error.
	ErrCodeTransformFailed ErrorCode = "TRANSFORM_FAILED"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates a configuration value is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeMissingField indicates a required configuration field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Internal errors
const (
	// ErrCodeInvariantViolation indicates an ordering or coverage invariant
	// broke, e.g. a worker returned without producing its results.
	ErrCodeInvariantViolation ErrorCode = "INVARIANT_VIOLATION"
)

// fatalCodes abort a whole divide call rather than a single element.
var fatalCodes = map[ErrorCode]bool{
	ErrCodeWorkerPanic:        true,
	ErrCodeInvariantViolation: true,
}

// IsFatalCode returns true if the error code means the process state around
// the call should not be trusted (panics and broken invariants).
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
