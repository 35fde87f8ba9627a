package quota

import (
	"context"
	"sync"
)

type counter struct {
	day  string
	used int
}

// MemoryStore keeps counters in process memory. It is the default store when
// no database is configured; counts are lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]counter
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]counter)}
}

// Usage implements Store.
func (m *MemoryStore) Usage(_ context.Context, key, day string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[key]
	if !ok || c.day != day {
		return 0, nil
	}
	return c.used, nil
}

// Increment implements Store.
func (m *MemoryStore) Increment(_ context.Context, key, day string, limit int) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.counters[key]
	if c.day != day {
		c = counter{day: day}
	}
	if c.used >= limit {
		m.counters[key] = c
		return c.used, false, nil
	}
	c.used++
	m.counters[key] = c
	return c.used, true, nil
}

// Prune drops counters recorded for any day other than day and returns how
// many were removed.
func (m *MemoryStore) Prune(day string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, c := range m.counters {
		if c.day != day {
			delete(m.counters, key)
			removed++
		}
	}
	return removed
}
