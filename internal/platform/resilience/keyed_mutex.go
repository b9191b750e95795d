package resilience

import "sync"

// KeyedMutex serializes work per string key. Settlement and transfer use it
// as the single-writer arbitration point per aggregate id: two updates for
// the same match/player or the same team never interleave, while unrelated
// aggregates proceed in parallel.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu      sync.Mutex
	waiters int
}

// Lock acquires the mutex for key and returns the matching unlock func.
func (m *KeyedMutex) Lock(key string) func() {
	m.mu.Lock()
	if m.locks == nil {
		m.locks = make(map[string]*keyedLock)
	}
	l, ok := m.locks[key]
	if !ok {
		l = &keyedLock{}
		m.locks[key] = l
	}
	l.waiters++
	m.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.waiters--
		if l.waiters == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}
