package service

import (
	"context"
	"sync"
)

// MutexLocker is an in-process Locker that honours context cancellation.
type MutexLocker struct {
	ch chan struct{}
}

// NewMutexLocker creates an unlocked MutexLocker.
func NewMutexLocker() *MutexLocker {
	return &MutexLocker{ch: make(chan struct{}, 1)}
}

// Lock blocks until the lock is free or ctx is done.
func (m *MutexLocker) Lock(ctx context.Context) (func(), error) {
	select {
	case m.ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-m.ch }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
