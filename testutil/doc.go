// Package testutil provides testing utilities for placematch.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random descriptors and caches, and
// a brute-force reference search for verifying search results.
//
// # Random Descriptors
//
//	rng := testutil.NewRNG(seed)
//	d := rng.DenseDescriptor(64)
//	s := rng.SparseDescriptor(1000, 32) // vocabulary 1000, 32 words
//	cache := rng.Cache(100, 64, 1)      // node ids 1..100
//
// # Ground Truth
//
//	id, score := testutil.ExactBest(query, cache, distance.Cosine)
package testutil
