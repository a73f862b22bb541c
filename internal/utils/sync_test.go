package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalMutex_Disabled(t *testing.T) {
	m := NewOptionalMutex(false)
	require.False(t, m.Enabled())

	// Re-entrant locking only works because nothing is actually locked
	m.Lock()
	m.Lock()
	m.Unlock()
	m.Unlock()
}

func TestOptionalMutex_EnabledSerializes(t *testing.T) {
	m := NewOptionalMutex(true)
	require.True(t, m.Enabled())

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock()
			defer m.Unlock()
			counter++
		}()
	}
	wg.Wait()

	require.Equal(t, 50, counter)
}

func TestOptionalRWMutex_ReadersShare(t *testing.T) {
	m := NewOptionalRWMutex(true)

	m.RLock()
	m.RLock()
	m.RUnlock()
	m.RUnlock()

	m.Lock()
	m.Unlock()
}
