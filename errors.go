package orderedmap

import (
	"errors"
)

var (
	// ErrForeignHandle is the panic value when a handle issued by a different
	// map is passed to a method that requires one of the receiver's handles.
	ErrForeignHandle = errors.New("orderedmap: handle belongs to another map")

	// ErrStaleHandle is the panic value when a handle is dereferenced after
	// its entry was erased or the map was cleared, or when the end handle is
	// dereferenced.
	ErrStaleHandle = errors.New("orderedmap: stale handle")

	// ErrInvalidKey is the panic value when a hashed map is given a key that
	// is not equal to itself, such as a floating-point NaN.
	ErrInvalidKey = errors.New("orderedmap: key is not equal to itself")
)
