package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MockFileLock is an in-process FileLock for tests
type MockFileLock struct {
	mu       sync.Mutex
	path     string
	fs       FileSystem
	held     bool
	LockErr  error
	Attempts int
}

// TryLockContext implements FileLock.TryLockContext. It never blocks: a
// lock that is already held reports false. Like flock, it fails when the
// directory of the lock file does not exist.
func (m *MockFileLock) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Attempts++
	if m.LockErr != nil {
		return false, m.LockErr
	}
	if m.fs != nil {
		if _, err := m.fs.Stat(filepath.Dir(m.path)); err != nil {
			return false, fmt.Errorf("open %s: %w", m.path, os.ErrNotExist)
		}
	}
	if m.held {
		return false, nil
	}
	m.held = true
	return true, nil
}

// Unlock implements FileLock.Unlock
func (m *MockFileLock) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = false
	return nil
}

// Held reports whether the lock is currently held
func (m *MockFileLock) Held() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held
}

// MockFileLockFactory hands out one MockFileLock per path. Locks check fs
// for their parent directory when fs is not nil.
type MockFileLockFactory struct {
	mu    sync.Mutex
	fs    FileSystem
	locks map[string]*MockFileLock
}

// NewMockFileLockFactory creates a new mock factory over fs, which may be nil
func NewMockFileLockFactory(fs FileSystem) *MockFileLockFactory {
	return &MockFileLockFactory{fs: fs, locks: make(map[string]*MockFileLock)}
}

// New implements FileLockFactory.New
func (f *MockFileLockFactory) New(path string) FileLock {
	return f.Lock(path)
}

// Lock returns the mock lock for a path, creating it on first use
func (f *MockFileLockFactory) Lock(path string) *MockFileLock {
	f.mu.Lock()
	defer f.mu.Unlock()

	lock, ok := f.locks[path]
	if !ok {
		lock = &MockFileLock{path: path, fs: f.fs}
		f.locks[path] = lock
	}
	return lock
}
