package descriptor

import (
	"maps"
	"slices"

	"github.com/hupe1980/placematch/model"
)

// Cache maps a node to its descriptor: one flat pool of descriptors at a
// single layer.
type Cache map[model.NodeID]*Descriptor

// IDs returns the cached node ids in ascending order.
func (c Cache) IDs() []model.NodeID {
	return slices.Sorted(maps.Keys(c))
}

// CacheMap is a two-level index from a root node (submap, session, agent) to
// the cache of finer descriptors belonging to it.
type CacheMap map[model.NodeID]Cache

// Roots returns the root ids in ascending order.
func (m CacheMap) Roots() []model.NodeID {
	return slices.Sorted(maps.Keys(m))
}

// Len returns the total number of descriptors across all roots.
func (m CacheMap) Len() int {
	n := 0
	for _, c := range m {
		n += len(c)
	}
	return n
}
