package interfaces

import "errors"

var (
	// ErrNotFound is returned, possibly wrapped, when the addressed record
	// does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned when an id cannot address a record in the
	// backing store.
	ErrInvalidID = errors.New("invalid record id")
)
