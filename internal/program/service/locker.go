package service

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Locker serializes mutations of a single program. The returned unlock func
// must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, programID int64) (unlock func(), err error)
}

var _ Locker = (*KeyedLocker)(nil)

// KeyedLocker is an in-process Locker with one semaphore per program id.
// Waiting for a held lock gives up when ctx is done.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[int64]*keyLock
}

type keyLock struct {
	sem  *semaphore.Weighted
	refs int
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{
		locks: make(map[int64]*keyLock),
	}
}

func (l *KeyedLocker) Lock(ctx context.Context, programID int64) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[programID]
	if !ok {
		kl = &keyLock{sem: semaphore.NewWeighted(1)}
		l.locks[programID] = kl
	}
	kl.refs++
	l.mu.Unlock()

	if err := kl.sem.Acquire(ctx, 1); err != nil {
		l.release(programID, kl)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			kl.sem.Release(1)
			l.release(programID, kl)
		})
	}, nil
}

// held reports the number of program ids with a holder or a waiter.
func (l *KeyedLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *KeyedLocker) release(programID int64, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, programID)
	}
}
