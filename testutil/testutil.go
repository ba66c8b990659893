package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/distance"
	"github.com/hupe1980/placematch/internal/math32"
	"github.com/hupe1980/placematch/model"
)

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

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float32 in a loop).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// UnitVector generates a single L2-normalized random vector.
func (r *RNG) UnitVector(dimensions int) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vec := make([]float32, dimensions)
	var norm float64
	for j := range vec {
		v := r.rand.NormFloat64()
		vec[j] = float32(v)
		norm += v * v
	}

	if norm == 0 {
		norm = 1
	}

	math32.ScaleInPlace(vec, 1.0/math.Sqrt(norm))
	return vec
}

// DenseDescriptor returns a dense descriptor with uniform [0, 1) values,
// the kind produced by histogram-style place descriptors.
func (r *RNG) DenseDescriptor(dim int, optFns ...descriptor.Option) *descriptor.Descriptor {
	values := make([]float32, dim)
	r.FillUniform(values)
	return descriptor.MustNew(values, optFns...)
}

// SparseDescriptor returns a bag-of-words descriptor with nnz distinct words
// drawn from [0, vocabulary) and values in [0, 1).
func (r *RNG) SparseDescriptor(vocabulary, nnz int, optFns ...descriptor.Option) *descriptor.Descriptor {
	nnz = min(nnz, vocabulary)

	r.mu.Lock()
	perm := r.rand.Perm(vocabulary)[:nnz]
	values := make([]float32, nnz)
	for i := range values {
		values[i] = r.rand.Float32()
	}
	r.mu.Unlock()

	words := make([]uint32, nnz)
	for i, w := range perm {
		words[i] = uint32(w)
	}

	return descriptor.MustNew(values, append([]descriptor.Option{descriptor.WithWords(words...)}, optFns...)...)
}

// Cache returns n dense descriptors keyed by firstID, firstID+1, ...
// Each descriptor is its own root.
func (r *RNG) Cache(n, dim int, firstID model.NodeID) descriptor.Cache {
	cache := make(descriptor.Cache, n)
	for i := range n {
		id := firstID + model.NodeID(i)
		cache[id] = r.DenseDescriptor(dim, descriptor.WithRoot(id))
	}
	return cache
}

// CacheMap returns roots root caches of leavesPerRoot dense descriptors.
// Roots are numbered 1..roots and leaf ids are unique across roots.
func (r *RNG) CacheMap(roots, leavesPerRoot, dim int) descriptor.CacheMap {
	m := make(descriptor.CacheMap, roots)
	next := model.NodeID(1000)
	for root := 1; root <= roots; root++ {
		cache := make(descriptor.Cache, leavesPerRoot)
		for range leavesPerRoot {
			cache[next] = r.DenseDescriptor(dim, descriptor.WithRoot(model.NodeID(root)))
			next++
		}
		m[model.NodeID(root)] = cache
	}
	return m
}

// ExactBest scans every entry of cache and returns the best scoring node,
// lowest id first on ties. It returns InvalidNodeID for an empty cache.
func ExactBest(query *descriptor.Descriptor, cache descriptor.Cache, score distance.Func) (model.NodeID, float32) {
	bestID := model.InvalidNodeID
	var bestScore float32
	for _, id := range cache.IDs() {
		s := score(query, cache[id])
		if !bestID.IsValid() || s > bestScore {
			bestID, bestScore = id, s
		}
	}
	return bestID, bestScore
}
