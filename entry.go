package orderedmap

import (
	"cmp"
)

// Entry is a key/value pair as stored by a Map.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// ByKey orders entries by ascending key.
func ByKey[K cmp.Ordered, V any](a, b Entry[K, V]) int {
	return cmp.Compare(a.Key, b.Key)
}

// ByKeyDesc orders entries by descending key.
func ByKeyDesc[K cmp.Ordered, V any](a, b Entry[K, V]) int {
	return cmp.Compare(b.Key, a.Key)
}

// ByValue orders entries by ascending value.
func ByValue[K comparable, V cmp.Ordered](a, b Entry[K, V]) int {
	return cmp.Compare(a.Value, b.Value)
}

// ByValueDesc orders entries by descending value.
func ByValueDesc[K comparable, V cmp.Ordered](a, b Entry[K, V]) int {
	return cmp.Compare(b.Value, a.Value)
}
