// Package omap provides an insertion-ordered map with constant-time lookup.
package omap

// Map keeps values in insertion order and indexes them by key.
// Inserting an existing key appends a new entry and repoints the index to it;
// the earlier entry stays in the sequence.
type Map[K comparable, V any] struct {
	keys  []K
	vals  []V
	index map[K]int
}

// New creates an empty map with room for capHint entries.
func New[K comparable, V any](capHint int) *Map[K, V] {
	return &Map[K, V]{
		keys:  make([]K, 0, capHint),
		vals:  make([]V, 0, capHint),
		index: make(map[K]int, capHint),
	}
}

// Insert appends (key, val) and returns its position in the sequence.
func (m *Map[K, V]) Insert(key K, val V) int {
	if m.index == nil {
		m.index = make(map[K]int)
	}
	idx := len(m.vals)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
	m.index[key] = idx
	return idx
}

// Get returns the value last inserted under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	idx, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[idx], true
}

// Index returns the sequence position that key currently resolves to.
func (m *Map[K, V]) Index(key K) (int, bool) {
	if m == nil {
		return 0, false
	}
	idx, ok := m.index[key]
	return idx, ok
}

// Has reports whether key was ever inserted.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Index(key)
	return ok
}

// At returns the entry at position i of the sequence.
func (m *Map[K, V]) At(i int) (K, V) {
	return m.keys[i], m.vals[i]
}

// Len counts entries in the sequence, duplicates included.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.vals)
}

// Keys returns the keys in insertion order. READONLY
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return m.keys
}

// Values returns the values in insertion order. READONLY
func (m *Map[K, V]) Values() []V {
	if m == nil {
		return nil
	}
	return m.vals
}

// All iterates the sequence in insertion order.
func (m *Map[K, V]) All() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for i := range m.vals {
			if !yield(m.keys[i], m.vals[i]) {
				return
			}
		}
	}
}
