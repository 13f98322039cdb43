// Package testutil provides testing utilities for orderedmap.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source for generating keys and mutation
// workloads, and a checker for the map's structural invariants.
//
// # Key Generation
//
//	rng := testutil.NewRNG(seed)
//	keys := rng.UniqueKeys(1000, 8) // distinct random keys of length 8
//	hot := rng.Zipf(len(keys), 1.2) // skewed index into keys
//
// # Invariants
//
//	testutil.CheckInvariants(t, m)
package testutil
