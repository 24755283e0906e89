package storage

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrStorageClosed = errors.New("storage is closed")
	ErrInvalidBatch  = errors.New("invalid batch")
)

// StorageError provides structured error information for storage operations.
type StorageError struct {
	Op      string // Operation that failed (e.g., "save_nodes", "update_delays")
	Entity  string // Entity type (e.g., "nodes", "edges", "schema")
	Count   int    // Batch size, if the operation wrote a batch
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	subject := e.Op
	if e.Entity != "" {
		subject += " " + e.Entity
	}
	if e.Count > 0 {
		subject = fmt.Sprintf("%s (%d rows)", subject, e.Count)
	}
	if e.Context != "" {
		subject = fmt.Sprintf("%s [%s]", subject, e.Context)
	}
	return fmt.Sprintf("%s: %v", subject, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building StorageErrors.
type ErrorBuilder struct {
	err StorageError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: StorageError{Op: op}}
}

// Nodes sets the entity to "nodes" with the batch size.
func (b *ErrorBuilder) Nodes(count int) *ErrorBuilder {
	b.err.Entity = "nodes"
	b.err.Count = count
	return b
}

// Edges sets the entity to "edges" with the batch size.
func (b *ErrorBuilder) Edges(count int) *ErrorBuilder {
	b.err.Entity = "edges"
	b.err.Count = count
	return b
}

// Delays sets the entity to "delays" with the batch size.
func (b *ErrorBuilder) Delays(count int) *ErrorBuilder {
	b.err.Entity = "delays"
	b.err.Count = count
	return b
}

// Entity sets a free-form entity name.
func (b *ErrorBuilder) Entity(name string) *ErrorBuilder {
	b.err.Entity = name
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed StorageError.
func (b *ErrorBuilder) Build() *StorageError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// ClosedError reports an operation attempted after Close.
func ClosedError(op string) error {
	return NewError(op).Cause(ErrStorageClosed).Err()
}

// IsClosed returns true if the error indicates the storage is closed.
func IsClosed(err error) bool {
	return errors.Is(err, ErrStorageClosed)
}

// IsInvalidBatch returns true if a batch was rejected before any write.
func IsInvalidBatch(err error) bool {
	return errors.Is(err, ErrInvalidBatch)
}
