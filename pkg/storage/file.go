package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileBackend is the persistent tier behind types.LocationFile and
// types.LocationFileSoftWrapped: one file per key, named after the storage
// key, rooted under a single directory.
type FileBackend struct {
	mu      sync.RWMutex
	rootDir string
	perms   fs.FileMode
	closed  bool
}

// NewFileBackend creates a file-backed store rooted at rootDir. The
// directory is created if it does not already exist.
func NewFileBackend(rootDir string, perms fs.FileMode) (*FileBackend, error) {
	if perms == 0 {
		perms = 0600
	}
	if err := os.MkdirAll(rootDir, 0700); err != nil {
		return nil, err
	}
	return &FileBackend{rootDir: rootDir, perms: perms}, nil
}

// validateKey rejects path traversal, absolute paths, and embedded null
// bytes in a storage key before it is ever joined onto rootDir.
func validateKey(key string) error {
	if key == "" || strings.ContainsRune(key, 0) {
		return ErrInvalidKey
	}
	if filepath.IsAbs(key) {
		return ErrInvalidKey
	}
	clean := filepath.Clean(key)
	if clean == ".." || strings.HasPrefix(clean, "../") || strings.Contains(clean, string(filepath.Separator)+"..") {
		return ErrInvalidKey
	}
	return nil
}

func (f *FileBackend) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(f.rootDir, filepath.Clean(key)), nil
}

func (f *FileBackend) Get(key string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return nil, ErrClosed
	}
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return b, err
}

func (f *FileBackend) Put(key string, value []byte, opts *Options) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return err
	}
	perms := f.perms
	if opts != nil && opts.Permissions != 0 {
		perms = opts.Permissions
	}
	return os.WriteFile(p, value, perms)
}

func (f *FileBackend) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (f *FileBackend) List(prefix string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return nil, ErrClosed
	}
	var keys []string
	err := filepath.WalkDir(f.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(f.rootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if prefix == "" || strings.HasPrefix(rel, prefix) {
			keys = append(keys, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *FileBackend) Exists(key string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return false, ErrClosed
	}
	p, err := f.path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (f *FileBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

var _ Backend = (*FileBackend)(nil)
