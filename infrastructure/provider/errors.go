// Package provider adapts external embedding services to the
// domain search.Embedder contract.
package provider

import "fmt"

// ProviderError wraps a failure from an embedding provider with enough
// context to diagnose it.
type ProviderError struct {
	operation  string
	statusCode int
	message    string
	err        error
}

// NewProviderError creates a new ProviderError.
func NewProviderError(operation string, statusCode int, message string, err error) *ProviderError {
	return &ProviderError{
		operation:  operation,
		statusCode: statusCode,
		message:    message,
		err:        err,
	}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.statusCode != 0 {
		return fmt.Sprintf("provider %s failed (HTTP %d): %s", e.operation, e.statusCode, e.message)
	}
	return fmt.Sprintf("provider %s failed: %s", e.operation, e.message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error { return e.err }

// StatusCode returns the HTTP status code, or 0 if none applies.
func (e *ProviderError) StatusCode() int { return e.statusCode }
