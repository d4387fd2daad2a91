// Package errors provides the structured error type shared by the divide
// packages. Every failure surfaced to a caller carries a machine-readable
// code, a human-readable message, optional details and the underlying cause.
package errors
