package main

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/openmined/drivemirror/internal/utils"
)

var ErrRunLocked = errors.New("another drivemirror run holds the lock")

type runLock struct {
	flock *flock.Flock
}

// acquireRunLock takes the lock file at path so that two runs cannot write into the same
// target with the same credentials.
func acquireRunLock(path string) (*runLock, error) {
	if err := utils.EnsureParent(path); err != nil {
		return nil, fmt.Errorf("failed to create lock dir: %w", err)
	}

	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock '%s': %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrRunLocked, path)
	}

	return &runLock{flock: fl}, nil
}

// Release unlocks but leaves the file in place. Removing it would let a process that already
// opened the old file lock an orphaned inode while another creates a fresh one.
func (l *runLock) Release() error {
	if !l.flock.Locked() {
		return nil
	}

	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}
	return nil
}
