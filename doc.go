// Package orderedmap provides an insertion-ordered map with stable handles.
//
// A Map combines a sequence, which fixes iteration order, with a key index
// for exact-key lookup. New keys are appended; updating a key keeps its
// position. The order changes only through Erase, Clear and Sort.
//
// # Quick Start
//
//	m := orderedmap.New[string, int]()
//	m.Set("b", 2)
//	m.Set("a", 1)
//	m.Set("b", 3) // update in place, "b" stays first
//
//	for k, v := range m.All() {
//	    fmt.Println(k, v) // b 3, then a 1
//	}
//
// # Handles
//
// Set, Find, At, Front and Back return a Handle. A handle keeps denoting its
// entry while other entries are inserted or erased and while the map is
// sorted. Lookups that find nothing return a handle equal to End:
//
//	if h := m.Find("x"); h.IsEnd() {
//	    // not found
//	}
//
// Passing a stale handle, or a handle from a different map, to EraseHandle
// or IndexOf is a programming error and panics with ErrStaleHandle or
// ErrForeignHandle.
//
// # Indexes
//
//   - New: red-black tree over naturally ordered keys, O(log n)
//   - NewFunc: red-black tree with a caller comparison function
//   - NewHashed: hash index for any comparable key, O(1) expected
//
// # Positional Access
//
// At and IndexOf walk the sequence and cost O(position). The map is not
// designed for frequent random positional access.
//
// # Copy and Move
//
// Copy produces an independent map with fresh handles. Move transfers the
// entries, and every outstanding handle, to a new map and leaves the source
// empty. Merge sets every entry of another map and empties it.
//
// # Concurrency
//
// A Map is not safe for concurrent use and must not be mutated while it is
// being ranged over.
package orderedmap
