// Package keyindex maps unique keys to arena references.
//
// Two implementations are provided: Tree, a red-black tree with O(log n)
// operations for ordered keys or keys with a comparison function, and Hash,
// backed by a Go map for keys that are only comparable.
package keyindex
