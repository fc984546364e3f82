package utils

import (
	"time"

	"github.com/spf13/cast"
)

// OrderedMap is a mapping that remembers the order in which keys were first
// set. Keys are compared by their text form, time values by instant.
type OrderedMap[V any] struct {
	keys   []interface{}
	index  map[string]int
	values []V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{index: map[string]int{}}
}

// Set stores value under key. Overwriting keeps the key's original position.
func (m *OrderedMap[V]) Set(key interface{}, value V) {
	id := keyString(key)
	if i, has := m.index[id]; has {
		m.values[i] = value
		return
	}
	m.index[id] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key interface{}) (V, bool) {
	i, has := m.index[keyString(key)]
	if !has {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []interface{} {
	keys := make([]interface{}, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Each calls fn for every entry in insertion order.
func (m *OrderedMap[V]) Each(fn func(key interface{}, value V)) {
	for i, key := range m.keys {
		fn(key, m.values[i])
	}
}

func keyString(key interface{}) string {
	switch k := key.(type) {
	case nil:
		return ""
	case time.Time:
		return k.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if k == nil {
			return ""
		}
		return k.UTC().Format(time.RFC3339Nano)
	}
	return cast.ToString(key)
}
