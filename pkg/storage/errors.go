package storage

import "errors"

var (
	// ErrClosed is returned when a backend is used after Close.
	ErrClosed = errors.New("storage: closed")

	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("storage: not found")

	// ErrInvalidKey is returned for an empty or otherwise malformed key.
	ErrInvalidKey = errors.New("storage: invalid key")
)
