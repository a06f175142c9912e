package status

import (
	"iter"
	"maps"
	"slices"
	"sync"
)

// MetricMap holds one kind of counter keyed by name
// Callers look a counter up once and keep the pointer; the value type does its
// own synchronisation
type MetricMap[T any] struct {
	mu      sync.RWMutex
	metrics map[string]*T
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{metrics: make(map[string]*T)}
}

func (m *MetricMap[T]) lookup(key string) (*T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ptr, ok := m.metrics[key]
	return ptr, ok
}

// Get returns the counter for key, registering a zero value on first use
func (m *MetricMap[T]) Get(key string) *T {
	if ptr, ok := m.lookup(key); ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ptr, ok := m.metrics[key]
	if !ok {
		ptr = new(T)
		m.metrics[key] = ptr
	}
	return ptr
}

// Has reports whether key was registered
func (m *MetricMap[T]) Has(key string) bool {
	_, ok := m.lookup(key)
	return ok
}

// Keys returns the registered names in sorted order
func (m *MetricMap[T]) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.metrics))
}

// All yields every counter in key order
// Counters registered while iterating are not visited
func (m *MetricMap[T]) All() iter.Seq2[string, *T] {
	return func(yield func(string, *T) bool) {
		for _, k := range m.Keys() {
			ptr, ok := m.lookup(k)
			if ok && !yield(k, ptr) {
				return
			}
		}
	}
}

// Len returns the number of registered counters
func (m *MetricMap[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.metrics)
}
