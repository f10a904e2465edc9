package usecase

import "sync"

// roundLocks hands out one mutex per round ID and drops it once nobody holds or waits for it.
type roundLocks struct {
	mu    sync.Mutex
	locks map[string]*roundLock
}

type roundLock struct {
	mu      sync.Mutex
	waiters int
}

func newRoundLocks() *roundLocks {
	return &roundLocks{locks: make(map[string]*roundLock)}
}

// lock - blocks until the caller owns the round and returns the function releasing it.
func (that *roundLocks) lock(id string) func() {
	that.mu.Lock()
	lock, ok := that.locks[id]
	if !ok {
		lock = &roundLock{}
		that.locks[id] = lock
	}
	lock.waiters++
	that.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		that.mu.Lock()
		lock.waiters--
		if lock.waiters == 0 {
			delete(that.locks, id)
		}
		that.mu.Unlock()
	}
}

func (that *roundLocks) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}
