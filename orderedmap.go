package orderedmap

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/hupe1980/orderedmap/internal/arena"
	"github.com/hupe1980/orderedmap/internal/keyindex"
)

// Map is an associative container that remembers insertion order.
//
// Entries are kept in a sequence that defines iteration order, and a key
// index maps each key to its entry. Updating an existing key keeps the
// entry's position; new keys are appended at the tail. Only Sort, Erase and
// Clear change the order of surviving entries.
//
// Positional access (At, IndexOf) walks the sequence and costs O(position).
// Callers that need frequent positional access should keep their own
// position-indexed structure.
//
// A Map is not safe for concurrent use. Mutating a Map while ranging over it
// is undefined.
type Map[K comparable, V any] struct {
	seq      *arena.Arena[K, V]
	index    keyindex.Index[K]
	newIndex func() keyindex.Index[K]
	opts     options
}

// New creates an empty Map whose index orders keys by their natural order.
func New[K cmp.Ordered, V any](optFns ...Option) *Map[K, V] {
	return newMap[K, V](func(int) keyindex.Index[K] {
		return keyindex.NewTree[K]()
	}, optFns)
}

// NewFunc creates an empty Map whose index orders keys by compare.
// Keys comparing equal are the same key.
func NewFunc[K comparable, V any](compare func(a, b K) int, optFns ...Option) *Map[K, V] {
	return newMap[K, V](func(int) keyindex.Index[K] {
		return keyindex.NewTreeFunc(compare)
	}, optFns)
}

// NewHashed creates an empty Map backed by a hash index. Lookups are
// O(1) expected and K only needs to be comparable, but every key must be
// equal to itself: inserting a NaN key panics with ErrInvalidKey.
func NewHashed[K comparable, V any](optFns ...Option) *Map[K, V] {
	return newMap[K, V](func(capacity int) keyindex.Index[K] {
		return keyindex.NewHash[K](capacity)
	}, optFns)
}

func newMap[K comparable, V any](factory func(capacity int) keyindex.Index[K], optFns []Option) *Map[K, V] {
	o := applyOptions(optFns)
	m := &Map[K, V]{
		newIndex: func() keyindex.Index[K] { return factory(o.capacity) },
		opts:     o,
	}
	m.reset()
	return m
}

// reset installs a fresh, empty sequence and index.
func (m *Map[K, V]) reset() {
	m.seq = arena.New[K, V](m.opts.capacity)
	m.index = m.newIndex()
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.seq.Len()
}

// Set inserts key with value, or overwrites the value if key is present.
// An overwritten entry keeps its position and handle.
func (m *Map[K, V]) Set(key K, value V) Handle[K, V] {
	if ref, ok := m.index.Lookup(key); ok {
		m.seq.SetValue(ref, value)
		m.opts.metricsCollector.RecordUpdate()
		return m.handle(ref)
	}

	ref := m.link("set", key, value)
	m.opts.metricsCollector.RecordInsert()
	return m.handle(ref)
}

// link appends a new entry and registers it in the index. If the index
// refuses the key, the entry is unlinked again before panicking, so the
// sequence and the index never disagree.
func (m *Map[K, V]) link(op string, key K, value V) arena.Ref {
	ref := m.seq.Append(key, value)
	err := m.index.Insert(key, ref)
	if err == nil {
		return ref
	}
	m.seq.Remove(ref)
	if errors.Is(err, keyindex.ErrIrreflexiveKey) {
		m.violation(op, fmt.Errorf("%w: %w", ErrInvalidKey, err))
	}
	panic(fmt.Errorf("orderedmap: index out of sync: %w", err))
}

// Emplace is Set with the value produced by construct. construct is called
// exactly once, on both the insert and the update path.
func (m *Map[K, V]) Emplace(key K, construct func() V) Handle[K, V] {
	return m.Set(key, construct())
}

// Insert sets every pair of seq in order.
func (m *Map[K, V]) Insert(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.Set(k, v)
	}
}

// Find returns the handle of key, or End if key is absent.
func (m *Map[K, V]) Find(key K) Handle[K, V] {
	ref, ok := m.index.Lookup(key)
	m.opts.metricsCollector.RecordLookup(ok)
	if !ok {
		return m.End()
	}
	return m.handle(ref)
}

// Get returns the value of key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	h := m.Find(key)
	if h.IsEnd() {
		var zero V
		return zero, false
	}
	return m.seq.Value(h.ref), true
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	return m.index.Count(key) == 1
}

// Count returns 1 if key is present and 0 otherwise.
func (m *Map[K, V]) Count(key K) int {
	return m.index.Count(key)
}

// At returns the handle of the entry at position pos, or End if pos is out
// of range. The sequence is walked from the front, so At is O(pos).
func (m *Map[K, V]) At(pos int) Handle[K, V] {
	return m.handle(m.seq.Advance(pos))
}

// IndexOf returns the position of h, walking from the front. O(position).
// IndexOf of the end handle is Len. It panics if h does not denote a live
// entry of m.
func (m *Map[K, V]) IndexOf(h Handle[K, V]) int {
	m.own("index_of", h)
	if h.IsEnd() {
		return m.seq.Len()
	}
	m.live("index_of", h)
	return m.seq.Distance(h.ref)
}

// Erase removes key and returns the handle of the entry that followed it,
// or End if it was the last one. Erasing an absent key is a no-op that
// returns End.
func (m *Map[K, V]) Erase(key K) Handle[K, V] {
	ref, ok := m.index.Lookup(key)
	m.opts.metricsCollector.RecordErase(ok)
	if !ok {
		return m.End()
	}
	return m.erase(key, ref)
}

// EraseHandle removes the entry denoted by h and returns the handle of the
// entry that followed it, or End. It panics if h is not a live handle of m.
func (m *Map[K, V]) EraseHandle(h Handle[K, V]) Handle[K, V] {
	m.own("erase", h)
	m.live("erase", h)
	m.opts.metricsCollector.RecordErase(true)
	return m.erase(m.seq.Key(h.ref), h.ref)
}

func (m *Map[K, V]) erase(key K, ref arena.Ref) Handle[K, V] {
	if !m.index.Delete(key) {
		panic(fmt.Errorf("orderedmap: index out of sync: key %v not indexed", key))
	}
	return m.handle(m.seq.Remove(ref))
}

// Sort stably reorders the entries by compare, which must return a negative
// number when a sorts before b, a positive number when b sorts before a, and
// zero when they tie. Tied entries keep their relative order. Lookups and
// handles are unaffected.
func (m *Map[K, V]) Sort(compare func(a, b Entry[K, V]) int) {
	start := time.Now()
	m.seq.Sort(func(ak K, av V, bk K, bv V) int {
		return compare(Entry[K, V]{Key: ak, Value: av}, Entry[K, V]{Key: bk, Value: bv})
	})
	n := m.seq.Len()
	m.opts.metricsCollector.RecordSort(n, time.Since(start))
	m.opts.logger.LogBulk("sort", n, n)
}

// Front returns the handle of the first entry, or End if m is empty.
func (m *Map[K, V]) Front() Handle[K, V] {
	return m.handle(m.seq.Front())
}

// Back returns the handle of the last entry, or End if m is empty.
func (m *Map[K, V]) Back() Handle[K, V] {
	return m.handle(m.seq.Back())
}

// End returns the end-of-sequence handle. Lookups that find nothing return
// a handle equal to End.
func (m *Map[K, V]) End() Handle[K, V] {
	return Handle[K, V]{seq: m.seq}
}

// Keys returns the keys in current order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.seq.Len())
	for k := range m.seq.All() {
		keys = append(keys, k)
	}
	return keys
}

// Values returns the values in current order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.seq.Len())
	for _, v := range m.seq.All() {
		values = append(values, v)
	}
	return values
}

// ToSlice returns the entries in current order.
func (m *Map[K, V]) ToSlice() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, m.seq.Len())
	for k, v := range m.seq.All() {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	}
	return entries
}

// All returns an iterator over key/value pairs from front to back.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.seq.All()
}

// Backward returns an iterator over key/value pairs from back to front.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return m.seq.Backward()
}

// Handles returns an iterator over the handles from front to back.
func (m *Map[K, V]) Handles() iter.Seq[Handle[K, V]] {
	return func(yield func(Handle[K, V]) bool) {
		for ref := range m.seq.Refs() {
			if !yield(m.handle(ref)) {
				return
			}
		}
	}
}

// Merge sets every entry of other into m, in other's order, and leaves
// other empty. Keys present in both keep their position in m and take
// other's value. Merging a map into itself does nothing.
func (m *Map[K, V]) Merge(other *Map[K, V]) {
	if other == nil || other == m {
		return
	}
	n := other.Len()
	for k, v := range other.seq.All() {
		m.Set(k, v)
	}
	other.Clear()
	m.opts.metricsCollector.RecordMerge(n)
	m.opts.logger.LogBulk("merge", n, m.Len())
}

// Clear removes all entries. Every outstanding handle becomes stale.
func (m *Map[K, V]) Clear() {
	n := m.seq.Len()
	m.seq.Clear()
	m.index.Clear()
	m.opts.logger.LogBulk("clear", n, 0)
}

// Copy returns an independent map holding the same entries in the same
// order. Handles of m do not refer into the copy.
func (m *Map[K, V]) Copy() *Map[K, V] {
	c := &Map[K, V]{
		seq:      arena.New[K, V](m.seq.Len()),
		index:    m.newIndex(),
		newIndex: m.newIndex,
		opts:     m.opts,
	}
	c.copyEntries(m)
	return c
}

// CopyFrom replaces the contents of m with a copy of other's entries.
// Handles of m become stale. A nil other or m itself leaves m unchanged.
func (m *Map[K, V]) CopyFrom(other *Map[K, V]) {
	if other == nil || other == m {
		return
	}
	m.Clear()
	m.copyEntries(other)
}

func (m *Map[K, V]) copyEntries(src *Map[K, V]) {
	for k, v := range src.seq.All() {
		m.link("copy", k, v)
	}
	m.opts.logger.LogBulk("copy", src.Len(), m.Len())
}

// Move transfers the entries of m to a new map and leaves m empty.
// Handles of m stay valid and now refer into the returned map.
func (m *Map[K, V]) Move() *Map[K, V] {
	dst := &Map[K, V]{
		seq:      m.seq,
		index:    m.index,
		newIndex: m.newIndex,
		opts:     m.opts,
	}
	m.reset()
	dst.opts.logger.LogBulk("move", dst.Len(), dst.Len())
	return dst
}

// MoveFrom replaces the contents of m with other's entries and leaves
// other empty. Handles of other stay valid and now refer into m; handles
// previously issued by m become stale. A nil other or m itself leaves m
// unchanged.
func (m *Map[K, V]) MoveFrom(other *Map[K, V]) {
	if other == nil || other == m {
		return
	}
	m.Clear()
	m.seq, m.index, m.newIndex = other.seq, other.index, other.newIndex
	other.reset()
	m.opts.logger.LogBulk("move", m.Len(), m.Len())
}

// String renders the entries in order, formatted like a Go map.
func (m *Map[K, V]) String() string {
	var b strings.Builder
	b.WriteString("orderedmap[")
	first := true
	for k, v := range m.seq.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%v:%v", k, v)
	}
	b.WriteByte(']')
	return b.String()
}

func (m *Map[K, V]) handle(ref arena.Ref) Handle[K, V] {
	return Handle[K, V]{seq: m.seq, ref: ref}
}

// own panics unless h was issued by m. End handles from a zero Handle are
// accepted as m's end.
func (m *Map[K, V]) own(op string, h Handle[K, V]) {
	if h.seq == m.seq || (h.seq == nil && h.IsEnd()) {
		return
	}
	m.violation(op, fmt.Errorf("%w: %s", ErrForeignHandle, op))
}

func (m *Map[K, V]) live(op string, h Handle[K, V]) {
	if m.seq.Valid(h.ref) {
		return
	}
	m.violation(op, fmt.Errorf("%w: %s slot %d gen %d", ErrStaleHandle, op, h.ref.Slot, h.ref.Gen))
}

func (m *Map[K, V]) violation(op string, err error) {
	m.opts.logger.LogViolation(op, err)
	panic(err)
}
