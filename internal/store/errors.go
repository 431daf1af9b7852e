package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrEmptyKey is returned when a flag operation is given an empty key.
	ErrEmptyKey = errors.New("flag key cannot be empty")

	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Backend   string // The backend (e.g., "redis", "postgres")
	Operation string // The operation that failed (e.g., "get", "set")
	Key       string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s of flag %q failed: %v", e.Backend, e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s of flag %q failed", e.Backend, e.Operation, e.Key)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(backend, operation, key string, err error) *StoreError {
	return &StoreError{Backend: backend, Operation: operation, Key: key, Err: err}
}
