package storage

import (
	"errors"
	"fmt"
	"testing"
)

func TestStorageError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *StorageError
		expected string
	}{
		{
			name:     "with count",
			err:      &StorageError{Op: "save", Entity: "nodes", Count: 100, Cause: fmt.Errorf("disk full")},
			expected: "save nodes (100 rows): disk full",
		},
		{
			name:     "with context",
			err:      &StorageError{Op: "initialize", Entity: "schema", Context: "gls.db", Cause: fmt.Errorf("locked")},
			expected: "initialize schema [gls.db]: locked",
		},
		{
			name:     "minimal",
			err:      &StorageError{Op: "close", Cause: ErrStorageClosed},
			expected: "close: storage is closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorBuilder(t *testing.T) {
	cause := errors.New("constraint failed")
	err := NewError("update").Delays(3).Context("batch 2").Cause(cause).Build()

	if err.Op != "update" || err.Entity != "delays" || err.Count != 3 || err.Context != "batch 2" {
		t.Errorf("builder produced %+v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestErrorHelpers(t *testing.T) {
	if !IsClosed(ClosedError("save")) {
		t.Error("IsClosed(ClosedError) = false")
	}
	wrapped := fmt.Errorf("import: %w", NewError("save").Edges(1).Cause(ErrInvalidBatch).Err())
	if !IsInvalidBatch(wrapped) {
		t.Error("IsInvalidBatch should see through wrapping")
	}
	if IsClosed(wrapped) {
		t.Error("IsClosed matched an unrelated error")
	}

	var se *StorageError
	if !errors.As(wrapped, &se) || se.Entity != "edges" {
		t.Errorf("errors.As = %+v", se)
	}
}
