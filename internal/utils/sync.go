package utils

import (
	"sync"
)

// OptionalMutex is a mutex that only locks when it was created enabled. Components that are
// externally synchronized by default (the allocator is driven from the single frame loop
// thread) carry one so that consumers can opt into internal locking.
type OptionalMutex struct {
	mutex   sync.Mutex
	enabled bool
}

func NewOptionalMutex(enabled bool) OptionalMutex {
	return OptionalMutex{enabled: enabled}
}

func (m *OptionalMutex) Enabled() bool {
	return m.enabled
}

func (m *OptionalMutex) Lock() {
	if m.enabled {
		m.mutex.Lock()
	}
}

func (m *OptionalMutex) Unlock() {
	if m.enabled {
		m.mutex.Unlock()
	}
}

// OptionalRWMutex is the reader/writer counterpart of OptionalMutex
type OptionalRWMutex struct {
	mutex   sync.RWMutex
	enabled bool
}

func NewOptionalRWMutex(enabled bool) OptionalRWMutex {
	return OptionalRWMutex{enabled: enabled}
}

func (m *OptionalRWMutex) Lock() {
	if m.enabled {
		m.mutex.Lock()
	}
}

func (m *OptionalRWMutex) Unlock() {
	if m.enabled {
		m.mutex.Unlock()
	}
}

func (m *OptionalRWMutex) RLock() {
	if m.enabled {
		m.mutex.RLock()
	}
}

func (m *OptionalRWMutex) RUnlock() {
	if m.enabled {
		m.mutex.RUnlock()
	}
}
