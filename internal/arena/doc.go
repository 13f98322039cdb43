// Package arena provides the slot arena backing an ordered map's sequence.
//
// Entries live in a slice of nodes addressed by slot number. The nodes form a
// circular doubly linked list threaded through slot 0, which is reserved as
// the sentinel. Reordering relinks nodes without moving them, so a slot keeps
// its entry from Append until Remove.
//
// # References
//
// A Ref pairs a slot with the generation it was issued under. Removing an
// entry bumps the slot's generation and returns the slot to the free set, so
// any Ref still pointing at it is detected as stale even after the slot is
// reused.
//
// # Concurrency
//
// An Arena is not safe for concurrent use. Callers serialize access.
package arena
