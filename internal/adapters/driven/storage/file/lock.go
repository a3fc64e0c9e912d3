package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// fileLock provides cross-process locking of the storage document.
type fileLock struct {
	path  string
	flock *flock.Flock
}

func newFileLock(documentPath string) *fileLock {
	lockPath := documentPath + ".lock"
	return &fileLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// lock acquires an exclusive lock, blocking until it is available.
func (l *fileLock) lock() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	return nil
}

// rlock acquires a shared lock for readers.
func (l *fileLock) rlock() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	if err := l.flock.RLock(); err != nil {
		return fmt.Errorf("acquire shared lock: %w", err)
	}
	return nil
}

func (l *fileLock) unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
