package storage

import (
	"errors"
	"sync"
)

var errSimulatedWrite = errors.New("simulated write failure")

// Memory is an in-memory KV for tests and ephemeral runs.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailWrites makes Set return an error, for exercising best-effort
	// persistence paths in tests.
	FailWrites bool
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get returns the stored bytes and whether the key exists
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

// Set stores value under key
func (m *Memory) Set(key string, value []byte) error {
	if m.FailWrites {
		return errSimulatedWrite
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

// Remove deletes key
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
