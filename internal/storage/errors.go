package storage

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when caller data violates a store-level constraint.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateKey is returned when a uniqueness constraint is violated.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrStorageUnavailable wraps unexpected failures of the underlying store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
