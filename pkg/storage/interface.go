// Package storage provides the generic key-value abstraction the object
// store builds its three object kinds (keys, certificates, bundles) on top
// of. Implementations must be safe for concurrent use.
package storage

import "io/fs"

// Backend is the generic persistence contract shared by the in-memory and
// file-backed tiers an object store composes.
type Backend interface {
	// Get retrieves the value stored for key. Returns ErrNotFound if absent.
	Get(key string) ([]byte, error)

	// Put stores value for key, overwriting any existing value.
	Put(key string, value []byte, opts *Options) error

	// Delete removes key. Returns ErrNotFound if it does not exist.
	Delete(key string) error

	// List returns every key with the given prefix; prefix == "" lists all.
	List(prefix string) ([]string, error)

	// Exists reports whether key is present.
	Exists(key string) (bool, error)

	// Close releases resources held by the backend.
	Close() error
}

// Options carries backend-specific hints for a Put call.
type Options struct {
	Permissions fs.FileMode
}

// DefaultOptions returns Options with owner-only file permissions.
func DefaultOptions() *Options {
	return &Options{Permissions: 0600}
}
