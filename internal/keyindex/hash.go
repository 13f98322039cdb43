package keyindex

import (
	"fmt"

	"github.com/hupe1980/orderedmap/internal/arena"
)

// Hash is an Index backed by a Go map.
// Keys must be equal to themselves; Insert rejects NaN and values
// containing NaN with ErrIrreflexiveKey.
type Hash[K comparable] struct {
	m map[K]arena.Ref
}

// NewHash creates an empty Hash sized for capacity keys.
func NewHash[K comparable](capacity int) *Hash[K] {
	if capacity < 0 {
		capacity = 0
	}
	return &Hash[K]{m: make(map[K]arena.Ref, capacity)}
}

// Lookup implements Index.
func (x *Hash[K]) Lookup(key K) (arena.Ref, bool) {
	ref, ok := x.m[key]
	return ref, ok
}

// Insert implements Index.
func (x *Hash[K]) Insert(key K, ref arena.Ref) error {
	if key != key {
		return fmt.Errorf("%w: %v", ErrIrreflexiveKey, key)
	}
	if _, ok := x.m[key]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	x.m[key] = ref
	return nil
}

// Delete implements Index.
func (x *Hash[K]) Delete(key K) bool {
	if _, ok := x.m[key]; !ok {
		return false
	}
	delete(x.m, key)
	return true
}

// Count implements Index.
func (x *Hash[K]) Count(key K) int {
	if _, ok := x.m[key]; ok {
		return 1
	}
	return 0
}

// Len implements Index.
func (x *Hash[K]) Len() int {
	return len(x.m)
}

// Clear implements Index.
func (x *Hash[K]) Clear() {
	clear(x.m)
}
