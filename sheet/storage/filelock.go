package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// Lock acquisition policy shared by every lock a FileBackend takes
const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// FileLock is an exclusive cross-process lock on one lock file.
// *flock.Flock satisfies it directly.
type FileLock interface {
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// FileLockFactory creates the lock guarding a lock file path
type FileLockFactory interface {
	New(path string) FileLock
}

// FlockFactory hands out gofrs/flock locks. The lock file is created on the
// first attempt, so its directory must already exist.
type FlockFactory struct{}

// New implements FileLockFactory.New
func (FlockFactory) New(path string) FileLock {
	return flock.New(path)
}

// holdLock takes the lock at path, runs fn and releases the lock. It gives
// up after lockMaxRetries failed attempts or when lockTimeout expires.
func holdLock(factory FileLockFactory, path string, fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	lock := factory.New(path)
	if err := acquireLock(ctx, lock); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

func acquireLock(ctx context.Context, lock FileLock) error {
	for attempt := 1; attempt <= lockMaxRetries; attempt++ {
		locked, err := lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to acquire lock: %w", ctx.Err())
		case <-time.After(lockRetryDelay):
		}
	}

	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}
