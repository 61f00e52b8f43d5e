// Package testutil provides testing utilities for Entigo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, reproducible random number generator for driving
// randomized pool workloads.
//
//	rng := testutil.NewRNG(seed)
//	n := rng.Intn(100)
//	if rng.Bool(0.25) { ... } // true with probability 0.25
package testutil
