package domain

import "errors"

var (
	// ErrConflict is returned when a record with the same identity already
	// exists: a document id within a collection, or a user email.
	ErrConflict = errors.New("record already exists")
	// ErrNotFound is returned for absent records and unknown collections.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable wraps transport and driver failures of the store.
	ErrUnavailable = errors.New("store unavailable")

	ErrInvalidFile  = errors.New("unsupported identification document")
	ErrUnauthorized = errors.New("unauthorized")
)
