package storage

import (
	"sync"
)

// OperationType defines whether an operation is read or write.
// Read operations take the shared lock, write operations the exclusive one.
type OperationType int

const (
	// ReadOperation indicates an operation that only reads data.
	// Multiple read operations can proceed concurrently.
	ReadOperation OperationType = iota

	// WriteOperation indicates an operation that modifies data.
	// Write operations are exclusive.
	WriteOperation
)

// LockManager provides centralized lock management for the sheet store.
// Every store operation runs through Execute so a mutation and its
// persistence write are observed as one step.
type LockManager struct {
	mu *sync.RWMutex
}

// NewLockManager creates a new lock manager instance.
func NewLockManager() *LockManager {
	return &LockManager{
		mu: &sync.RWMutex{},
	}
}

// Execute runs fn while holding the lock matching opType. The lock is
// released via defer, so it is freed even if fn panics.
//
// Example:
//
//	err := lockManager.Execute(WriteOperation, func() error {
//	    // Safe to replace the sheet here
//	    return nil
//	})
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}
