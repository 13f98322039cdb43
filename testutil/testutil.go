package testutil

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/hupe1980/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Key returns a random key of the given length.
func (r *RNG) Key(length int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keyLocked(length)
}

func (r *RNG) keyLocked(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = keyAlphabet[r.rand.Intn(len(keyAlphabet))]
	}
	return string(b)
}

// UniqueKeys returns n distinct random keys of the given length, in the
// order they were generated. length must leave room for n distinct keys.
func (r *RNG) UniqueKeys(n, length int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, n)
	keys := make([]string, 0, n)
	for len(keys) < n {
		k := r.keyLocked(length)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// Shuffle returns a shuffled copy of s.
func Shuffle[T any](r *RNG, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
// Upsert workloads drawn this way hit a few hot keys repeatedly.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	// Compute normalization constant (harmonic number with exponent s)
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Sample from uniform and use inverse transform
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// CheckInvariants verifies, through the public API, that the sequence and
// the index of m agree: every entry in iteration order is found by its key
// at the same handle and position, keys are unique, and the backward walk
// mirrors the forward walk.
func CheckInvariants[K comparable, V any](tb testing.TB, m *orderedmap.Map[K, V]) {
	tb.Helper()

	seen := make(map[K]struct{}, m.Len())
	var forward []K
	pos := 0
	for h := range m.Handles() {
		require.True(tb, h.Valid(), "handle at %d is not valid", pos)

		k := h.Key()
		_, dup := seen[k]
		require.False(tb, dup, "duplicate key %v", k)
		seen[k] = struct{}{}

		assert.True(tb, h == m.Find(k), "index disagrees with sequence for key %v", k)
		assert.True(tb, h == m.At(pos), "position %d disagrees with handle", pos)
		assert.Equal(tb, pos, m.IndexOf(h))
		assert.Equal(tb, 1, m.Count(k))

		forward = append(forward, k)
		pos++
	}
	require.Equal(tb, m.Len(), pos, "iteration length differs from Len")
	assert.True(tb, m.At(pos).IsEnd())

	var backward []K
	for k := range m.Backward() {
		backward = append(backward, k)
	}
	require.Len(tb, backward, len(forward))
	for i := range forward {
		assert.Equal(tb, forward[i], backward[len(backward)-1-i])
	}

	if m.Len() == 0 {
		assert.True(tb, m.Front().IsEnd())
		assert.True(tb, m.Back().IsEnd())
	} else {
		assert.True(tb, m.At(0) == m.Front())
		assert.True(tb, m.At(m.Len()-1) == m.Back())
	}
}
