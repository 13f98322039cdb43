package arena

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

var (
	// ErrStaleRef is the panic value for a Ref whose entry has been removed
	// or that was never issued by the arena.
	ErrStaleRef = errors.New("arena: stale reference")
	// ErrSlotsExhausted is the panic value when the slot space is used up.
	ErrSlotsExhausted = errors.New("arena: slots exhausted")
)

// sentinel is the slot of the list head. It never holds an entry.
const sentinel uint32 = 0

// Ref represents a safe reference to an arena entry.
// It includes the generation to detect stale references.
// The zero Ref denotes the end of the sequence.
// Generations are 32-bit and wrap after 2^32 reuses of one slot, at which
// point a very old stale Ref could match again.
type Ref struct {
	Slot uint32
	Gen  uint32
}

// IsEnd reports whether r is the end-of-sequence reference.
func (r Ref) IsEnd() bool {
	return r.Slot == sentinel
}

type node[K, V any] struct {
	key  K
	val  V
	prev uint32
	next uint32
	gen  uint32
	live bool
}

// Arena stores entries in insertion order.
type Arena[K, V any] struct {
	nodes []node[K, V]
	free  *roaring.Bitmap // vacated slots, reused lowest first
	n     int
}

// New creates an empty Arena with room for capacity entries before growing.
func New[K, V any](capacity int) *Arena[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena[K, V]{
		nodes: make([]node[K, V], 1, capacity+1),
		free:  roaring.New(),
	}
}

// Len returns the number of live entries.
func (a *Arena[K, V]) Len() int {
	return a.n
}

// Slots returns the number of slots ever allocated, live or free.
func (a *Arena[K, V]) Slots() int {
	return len(a.nodes) - 1
}

// FreeSlots returns the number of vacated slots awaiting reuse.
func (a *Arena[K, V]) FreeSlots() int {
	return int(a.free.GetCardinality())
}

// Valid reports whether ref denotes a live entry.
func (a *Arena[K, V]) Valid(ref Ref) bool {
	if ref.Slot == sentinel || int(ref.Slot) >= len(a.nodes) {
		return false
	}
	nd := &a.nodes[ref.Slot]
	return nd.live && nd.gen == ref.Gen
}

// Append adds an entry at the tail and returns its reference.
func (a *Arena[K, V]) Append(key K, value V) Ref {
	slot := a.alloc()

	nd := &a.nodes[slot]
	nd.key = key
	nd.val = value
	nd.live = true

	tail := a.nodes[sentinel].prev
	nd.prev = tail
	nd.next = sentinel
	a.nodes[tail].next = slot
	a.nodes[sentinel].prev = slot

	a.n++
	return Ref{Slot: slot, Gen: nd.gen}
}

// Remove unlinks the entry and returns the reference of the entry that
// followed it, or the end reference.
func (a *Arena[K, V]) Remove(ref Ref) Ref {
	nd := a.mustNode(ref)
	prev, next := nd.prev, nd.next

	a.nodes[prev].next = next
	a.nodes[next].prev = prev
	a.release(ref.Slot)

	return a.ref(next)
}

// Key returns the key stored at ref.
func (a *Arena[K, V]) Key(ref Ref) K {
	return a.mustNode(ref).key
}

// Value returns the value stored at ref.
func (a *Arena[K, V]) Value(ref Ref) V {
	return a.mustNode(ref).val
}

// Entry returns the key and value stored at ref.
func (a *Arena[K, V]) Entry(ref Ref) (K, V) {
	nd := a.mustNode(ref)
	return nd.key, nd.val
}

// SetValue replaces the value stored at ref in place.
func (a *Arena[K, V]) SetValue(ref Ref, value V) {
	a.mustNode(ref).val = value
}

// Front returns the first entry, or the end reference if empty.
func (a *Arena[K, V]) Front() Ref {
	return a.ref(a.nodes[sentinel].next)
}

// Back returns the last entry, or the end reference if empty.
func (a *Arena[K, V]) Back() Ref {
	return a.ref(a.nodes[sentinel].prev)
}

// Next returns the entry after ref. The end reference wraps to Front.
func (a *Arena[K, V]) Next(ref Ref) Ref {
	if ref.IsEnd() {
		return a.Front()
	}
	return a.ref(a.mustNode(ref).next)
}

// Prev returns the entry before ref. The end reference wraps to Back.
func (a *Arena[K, V]) Prev(ref Ref) Ref {
	if ref.IsEnd() {
		return a.Back()
	}
	return a.ref(a.mustNode(ref).prev)
}

// Advance returns the entry at the zero-based position pos.
// It walks from the head, so the cost is O(pos). Positions outside
// [0, Len) yield the end reference.
func (a *Arena[K, V]) Advance(pos int) Ref {
	if pos < 0 || pos >= a.n {
		return Ref{}
	}
	slot := a.nodes[sentinel].next
	for ; pos > 0; pos-- {
		slot = a.nodes[slot].next
	}
	return a.ref(slot)
}

// Distance returns the position of ref counted from the head. O(position).
func (a *Arena[K, V]) Distance(ref Ref) int {
	a.mustNode(ref)

	pos := 0
	for slot := a.nodes[sentinel].next; slot != ref.Slot; slot = a.nodes[slot].next {
		pos++
	}
	return pos
}

// Sort stably reorders the entries by cmp. Nodes keep their slots, so every
// outstanding Ref stays valid.
func (a *Arena[K, V]) Sort(cmp func(ak K, av V, bk K, bv V) int) {
	if a.n < 2 {
		return
	}

	order := make([]uint32, 0, a.n)
	for slot := a.nodes[sentinel].next; slot != sentinel; slot = a.nodes[slot].next {
		order = append(order, slot)
	}

	slices.SortStableFunc(order, func(x, y uint32) int {
		nx, ny := &a.nodes[x], &a.nodes[y]
		return cmp(nx.key, nx.val, ny.key, ny.val)
	})

	prev := sentinel
	for _, slot := range order {
		a.nodes[prev].next = slot
		a.nodes[slot].prev = prev
		prev = slot
	}
	a.nodes[prev].next = sentinel
	a.nodes[sentinel].prev = prev
}

// Clear removes every entry. All outstanding references become stale.
func (a *Arena[K, V]) Clear() {
	for slot := a.nodes[sentinel].next; slot != sentinel; {
		next := a.nodes[slot].next
		a.release(slot)
		slot = next
	}
	a.nodes[sentinel].next = sentinel
	a.nodes[sentinel].prev = sentinel
}

// All returns an iterator over the entries from head to tail.
func (a *Arena[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for slot := a.nodes[sentinel].next; slot != sentinel; {
			nd := &a.nodes[slot]
			slot = nd.next
			if !yield(nd.key, nd.val) {
				return
			}
		}
	}
}

// Backward returns an iterator over the entries from tail to head.
func (a *Arena[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for slot := a.nodes[sentinel].prev; slot != sentinel; {
			nd := &a.nodes[slot]
			slot = nd.prev
			if !yield(nd.key, nd.val) {
				return
			}
		}
	}
}

// Refs returns an iterator over the references from head to tail.
func (a *Arena[K, V]) Refs() iter.Seq[Ref] {
	return func(yield func(Ref) bool) {
		for slot := a.nodes[sentinel].next; slot != sentinel; {
			ref := a.ref(slot)
			slot = a.nodes[slot].next
			if !yield(ref) {
				return
			}
		}
	}
}

func (a *Arena[K, V]) ref(slot uint32) Ref {
	return Ref{Slot: slot, Gen: a.nodes[slot].gen}
}

func (a *Arena[K, V]) mustNode(ref Ref) *node[K, V] {
	if !a.Valid(ref) {
		panic(fmt.Errorf("%w: slot %d gen %d", ErrStaleRef, ref.Slot, ref.Gen))
	}
	return &a.nodes[ref.Slot]
}

func (a *Arena[K, V]) alloc() uint32 {
	if !a.free.IsEmpty() {
		slot := a.free.Minimum()
		a.free.Remove(slot)
		return slot
	}
	if uint64(len(a.nodes)) > math.MaxUint32 {
		panic(ErrSlotsExhausted)
	}
	a.nodes = append(a.nodes, node[K, V]{gen: 1})
	return uint32(len(a.nodes) - 1) //nolint:gosec // bounded above
}

// release vacates slot. The zero-valued node drops key and value so the
// garbage collector can reclaim them.
func (a *Arena[K, V]) release(slot uint32) {
	gen := a.nodes[slot].gen + 1
	if gen == 0 {
		gen = 1
	}
	a.nodes[slot] = node[K, V]{gen: gen}
	a.free.Add(slot)
	a.n--
}
