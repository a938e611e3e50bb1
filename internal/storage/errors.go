package storage

import (
	"errors"
	"fmt"
)

// ErrInvalidName indicates a file name that would escape its directory.
var ErrInvalidName = errors.New("invalid file name")

// StorageError wraps filesystem errors with operation and artifact context.
// Use errors.As() to extract this error type and get operation details:
//
//	var storErr *storage.StorageError
//	if errors.As(err, &storErr) {
//		fmt.Printf("Failed to %s %s at %s: %v\n", storErr.Op, storErr.Entity, storErr.Path, storErr.Err)
//	}
type StorageError struct {
	// Op is the operation that failed ("mkdir", "write", "read").
	Op string
	// Entity is the artifact ("page", "catalog", "index", "sitemap", "pages dir").
	Entity string
	// Path is the file or directory involved.
	Path string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the storage error.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s %s: %v", e.Op, e.Entity, e.Path, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StorageError) Unwrap() error { return e.Err }
