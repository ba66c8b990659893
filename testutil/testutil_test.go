package testutil

import (
	"math"
	"testing"

	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/distance"
	"github.com/hupe1980/placematch/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.DenseDescriptor(8)
	rng.Reset()
	b := rng.DenseDescriptor(8)
	assert.Equal(t, a.Values(), b.Values())
	assert.Equal(t, int64(42), rng.Seed())
}

func TestUnitVector(t *testing.T) {
	vec := NewRNG(1).UnitVector(16)
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestSparseDescriptor(t *testing.T) {
	d := NewRNG(3).SparseDescriptor(100, 20, descriptor.WithRoot(5))
	require.True(t, d.IsSparse())
	assert.Len(t, d.Entries(), 20)
	assert.Equal(t, model.NodeID(5), d.Root())

	for i := 1; i < len(d.Entries()); i++ {
		assert.Less(t, d.Entries()[i-1].Word, d.Entries()[i].Word)
	}
	for _, e := range d.Entries() {
		assert.Less(t, e.Word, uint32(100))
	}

	small := NewRNG(3).SparseDescriptor(4, 10)
	assert.Len(t, small.Entries(), 4)
}

func TestCaches(t *testing.T) {
	rng := NewRNG(7)

	c := rng.Cache(5, 4, 10)
	assert.Equal(t, []model.NodeID{10, 11, 12, 13, 14}, c.IDs())
	assert.Equal(t, model.NodeID(12), c[12].Root())

	m := rng.CacheMap(3, 4, 8)
	assert.Equal(t, []model.NodeID{1, 2, 3}, m.Roots())
	assert.Equal(t, 12, m.Len())
	for root, cache := range m {
		for _, d := range cache {
			assert.Equal(t, root, d.Root())
		}
	}
}

func TestExactBest(t *testing.T) {
	cache := descriptor.Cache{
		3: descriptor.MustNew([]float32{1, 0}),
		1: descriptor.MustNew([]float32{0, 1}),
		2: descriptor.MustNew([]float32{1, 0}),
	}
	query := descriptor.MustNew([]float32{1, 0})

	id, score := ExactBest(query, cache, distance.Cosine)
	assert.Equal(t, model.NodeID(2), id)
	assert.InDelta(t, 1.0, score, 1e-6)

	id, _ = ExactBest(query, descriptor.Cache{}, distance.Cosine)
	assert.Equal(t, model.InvalidNodeID, id)
}
