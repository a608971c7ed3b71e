package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateLifecycle(t *testing.T) {
	m := NewMemoryManager()

	assert.Equal(t, StateIdle, m.GetState(1))
	assert.False(t, m.InProgress(1))

	m.SetState(1, State("step.one"))
	assert.Equal(t, State("step.one"), m.GetState(1))
	assert.True(t, m.InProgress(1))

	m.Clear(1)
	assert.Equal(t, StateIdle, m.GetState(1))
	assert.False(t, m.InProgress(1))
}

func TestTempDataClearedWithSession(t *testing.T) {
	m := NewMemoryManager()

	m.SetTemp(1, "name", "Alice")
	got, ok := m.GetTempString(1, "name")
	assert.True(t, ok)
	assert.Equal(t, "Alice", got)

	m.Clear(1)
	_, ok = m.GetTempString(1, "name")
	assert.False(t, ok)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, State("a"))
	m.SetState(2, State("b"))
	m.SetTemp(1, "k", "one")

	assert.Equal(t, State("a"), m.GetState(1))
	assert.Equal(t, State("b"), m.GetState(2))
	_, ok := m.GetTempString(2, "k")
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	m := NewMemoryManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.SetState(id, State("busy"))
			m.SetTemp(id, "k", id)
			_ = m.GetState(id)
			m.Clear(id)
		}(int64(i % 8))
	}
	wg.Wait()
}
