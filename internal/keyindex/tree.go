package keyindex

import (
	"cmp"
	"fmt"

	"github.com/emirpasic/gods/v2/trees/redblacktree"
	"github.com/hupe1980/orderedmap/internal/arena"
)

// Tree is an Index backed by a red-black tree.
type Tree[K comparable] struct {
	t *redblacktree.Tree[K, arena.Ref]
}

// NewTree creates a Tree ordered by the natural ordering of K.
func NewTree[K cmp.Ordered]() *Tree[K] {
	return &Tree[K]{t: redblacktree.New[K, arena.Ref]()}
}

// NewTreeFunc creates a Tree ordered by compare, which must define a strict
// weak ordering and return a negative, zero or positive number.
func NewTreeFunc[K comparable](compare func(a, b K) int) *Tree[K] {
	return &Tree[K]{t: redblacktree.NewWith[K, arena.Ref](compare)}
}

// Lookup implements Index.
func (x *Tree[K]) Lookup(key K) (arena.Ref, bool) {
	return x.t.Get(key)
}

// Insert implements Index.
func (x *Tree[K]) Insert(key K, ref arena.Ref) error {
	if x.t.GetNode(key) != nil {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	x.t.Put(key, ref)
	return nil
}

// Delete implements Index.
func (x *Tree[K]) Delete(key K) bool {
	if x.t.GetNode(key) == nil {
		return false
	}
	x.t.Remove(key)
	return true
}

// Count implements Index.
func (x *Tree[K]) Count(key K) int {
	if x.t.GetNode(key) == nil {
		return 0
	}
	return 1
}

// Len implements Index.
func (x *Tree[K]) Len() int {
	return x.t.Size()
}

// Clear implements Index.
func (x *Tree[K]) Clear() {
	x.t.Clear()
}
