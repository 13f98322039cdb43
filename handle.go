package orderedmap

import (
	"fmt"

	"github.com/hupe1980/orderedmap/internal/arena"
)

// Handle is a stable reference to an entry of a Map.
//
// A handle stays valid across insertions and erasures of other entries and
// across Sort. It is invalidated when its entry is erased or the map is
// cleared. Copy issues new handles; Move keeps them valid for the
// destination map.
//
// Handles are comparable: two handles are equal when they denote the same
// entry, and every end handle of a map equals that map's End.
type Handle[K comparable, V any] struct {
	seq *arena.Arena[K, V]
	ref arena.Ref
}

// IsEnd reports whether h is an end-of-sequence handle, as returned by
// lookups that find nothing.
func (h Handle[K, V]) IsEnd() bool {
	return h.ref.IsEnd()
}

// Valid reports whether h denotes a live entry.
func (h Handle[K, V]) Valid() bool {
	return h.seq != nil && h.seq.Valid(h.ref)
}

// Key returns the entry's key. It panics if h is not valid.
func (h Handle[K, V]) Key() K {
	return h.must().Key(h.ref)
}

// Value returns the entry's value. It panics if h is not valid.
func (h Handle[K, V]) Value() V {
	return h.must().Value(h.ref)
}

// Entry returns the entry's key and value. It panics if h is not valid.
func (h Handle[K, V]) Entry() Entry[K, V] {
	k, v := h.must().Entry(h.ref)
	return Entry[K, V]{Key: k, Value: v}
}

// SetValue replaces the entry's value in place. It panics if h is not valid.
func (h Handle[K, V]) SetValue(value V) {
	h.must().SetValue(h.ref, value)
}

// Next returns the handle of the following entry, or the end handle.
// Next of an end handle is the end handle.
func (h Handle[K, V]) Next() Handle[K, V] {
	if h.IsEnd() {
		return h
	}
	return Handle[K, V]{seq: h.seq, ref: h.must().Next(h.ref)}
}

// Prev returns the handle of the preceding entry, or the end handle when h
// is the first entry. Prev of an end handle is the last entry.
func (h Handle[K, V]) Prev() Handle[K, V] {
	if h.seq == nil {
		return h
	}
	if h.IsEnd() {
		return Handle[K, V]{seq: h.seq, ref: h.seq.Back()}
	}
	return Handle[K, V]{seq: h.seq, ref: h.must().Prev(h.ref)}
}

// String implements fmt.Stringer.
func (h Handle[K, V]) String() string {
	switch {
	case h.IsEnd():
		return "Handle(end)"
	case !h.Valid():
		return fmt.Sprintf("Handle(stale %d/%d)", h.ref.Slot, h.ref.Gen)
	default:
		return fmt.Sprintf("Handle(%v:%v)", h.Key(), h.Value())
	}
}

func (h Handle[K, V]) must() *arena.Arena[K, V] {
	if !h.Valid() {
		panic(fmt.Errorf("%w: slot %d gen %d", ErrStaleHandle, h.ref.Slot, h.ref.Gen))
	}
	return h.seq
}
