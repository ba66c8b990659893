package model

import (
	"iter"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// NodeSet is an ordered set of NodeIDs.
//
// It wraps a 64-bit Roaring bitmap. The zero value is an empty set that is
// ready to use. NodeSet values share their backing bitmap when copied; use
// Clone for an independent set.
type NodeSet struct {
	rb *roaring64.Bitmap
}

// NewNodeSet creates a set containing ids.
func NewNodeSet(ids ...NodeID) NodeSet {
	rb := roaring64.New()
	for _, id := range ids {
		rb.Add(uint64(id))
	}
	return NodeSet{rb: rb}
}

// Add inserts id into the set.
func (s *NodeSet) Add(id NodeID) {
	if s.rb == nil {
		s.rb = roaring64.New()
	}
	s.rb.Add(uint64(id))
}

// Union adds every member of other to s.
func (s *NodeSet) Union(other NodeSet) {
	if other.rb == nil || other.rb.IsEmpty() {
		return
	}
	if s.rb == nil {
		s.rb = roaring64.New()
	}
	s.rb.Or(other.rb)
}

// Contains checks if id is a member of the set.
func (s NodeSet) Contains(id NodeID) bool {
	if s.rb == nil {
		return false
	}
	return s.rb.Contains(uint64(id))
}

// Len returns the number of members.
func (s NodeSet) Len() int {
	if s.rb == nil {
		return 0
	}
	return int(s.rb.GetCardinality())
}

// IsEmpty returns true if the set has no members.
func (s NodeSet) IsEmpty() bool {
	return s.rb == nil || s.rb.IsEmpty()
}

// All returns an ascending iterator over the members.
func (s NodeSet) All() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if s.rb == nil {
			return
		}
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(NodeID(it.Next())) {
				return
			}
		}
	}
}

// Slice returns the members in ascending order.
func (s NodeSet) Slice() []NodeID {
	if s.rb == nil {
		return nil
	}
	out := make([]NodeID, 0, s.rb.GetCardinality())
	for id := range s.All() {
		out = append(out, id)
	}
	return out
}

// Clone returns an independent copy of the set.
func (s NodeSet) Clone() NodeSet {
	if s.rb == nil {
		return NodeSet{}
	}
	return NodeSet{rb: s.rb.Clone()}
}

// Equal reports whether both sets have the same members.
func (s NodeSet) Equal(other NodeSet) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return s.IsEmpty() == other.IsEmpty()
	}
	return s.rb.Equals(other.rb)
}

// String returns a string representation of the set, e.g. "{1, 2, 5}".
func (s NodeSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for id := range s.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	sb.WriteByte('}')
	return sb.String()
}
