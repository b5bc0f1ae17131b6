package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend stores each key as a JSON file inside a directory. Writes go
// to a temp file that is renamed over the target, and every access holds a
// cross-process lock on <file>.lock so two CLI invocations never interleave.
type FileBackend struct {
	dir         string
	fs          FileSystem
	lockFactory FileLockFactory
}

// FileBackendOption is a function that modifies FileBackend configuration
type FileBackendOption func(*FileBackend)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) FileBackendOption {
	return func(b *FileBackend) {
		b.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) FileBackendOption {
	return func(b *FileBackend) {
		b.lockFactory = factory
	}
}

// NewFileBackend creates a backend rooted at dir. The directory is created
// lazily on the first write.
func NewFileBackend(dir string, opts ...FileBackendOption) *FileBackend {
	b := &FileBackend{dir: dir}
	for _, opt := range opts {
		opt(b)
	}
	if b.fs == nil {
		b.fs = &OSFileSystem{}
	}
	if b.lockFactory == nil {
		b.lockFactory = FlockFactory{}
	}
	return b
}

// Path returns the file a key is stored in
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, sanitizeKey(key)+".json")
}

// Read implements Backend.Read. A data directory that does not exist yet
// holds no keys; it is reported as ErrKeyNotFound without taking the lock.
func (b *FileBackend) Read(key string) ([]byte, error) {
	path := b.Path(key)
	if _, err := b.fs.Stat(b.dir); errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}

	var data []byte
	err := b.withLock(path, func() error {
		if _, err := b.fs.Stat(path); errors.Is(err, os.ErrNotExist) {
			return ErrKeyNotFound
		}

		content, err := b.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		// Empty file is treated as absent
		if len(content) == 0 {
			return ErrKeyNotFound
		}
		data = content
		return nil
	})
	return data, err
}

// Write implements Backend.Write
func (b *FileBackend) Write(key string, data []byte) error {
	if err := b.fs.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	path := b.Path(key)
	return b.withLock(path, func() error {
		// Write atomically
		tmpFile := path + ".tmp"
		if err := b.fs.WriteFile(tmpFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write temp file: %w", err)
		}

		if err := b.fs.Rename(tmpFile, path); err != nil {
			_ = b.fs.Remove(tmpFile)
			return fmt.Errorf("failed to rename file: %w", err)
		}
		return nil
	})
}

// Close implements Backend.Close
func (b *FileBackend) Close() error {
	return nil
}

// withLock runs fn while holding the lock file next to path
func (b *FileBackend) withLock(path string, fn func() error) error {
	return holdLock(b.lockFactory, path+".lock", fn)
}

// sanitizeKey maps a key onto a safe file name
func sanitizeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
