package keyindex

import (
	"errors"

	"github.com/hupe1980/orderedmap/internal/arena"
)

var (
	// ErrDuplicateKey is returned by Insert when the key is already indexed.
	ErrDuplicateKey = errors.New("keyindex: duplicate key")
	// ErrIrreflexiveKey is returned by Hash.Insert for a key that is not
	// equal to itself, such as a floating-point NaN, which a Go map can
	// never find again.
	ErrIrreflexiveKey = errors.New("keyindex: key is not equal to itself")
)

// Index is the lookup structure mapping a key to the arena slot holding it.
// Keys are unique.
type Index[K comparable] interface {
	// Lookup returns the reference for key. Absence is reported by ok=false.
	Lookup(key K) (ref arena.Ref, ok bool)
	// Insert registers key. It fails with ErrDuplicateKey if key is present.
	Insert(key K, ref arena.Ref) error
	// Delete removes key and reports whether it was present.
	Delete(key K) bool
	// Count returns 1 if key is present and 0 otherwise.
	Count(key K) int
	// Len returns the number of indexed keys.
	Len() int
	// Clear removes all keys.
	Clear()
}
