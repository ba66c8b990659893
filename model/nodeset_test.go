package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeSet(t *testing.T) {
	t.Run("ZeroValue", func(t *testing.T) {
		var s NodeSet
		assert.True(t, s.IsEmpty())
		assert.Equal(t, 0, s.Len())
		assert.False(t, s.Contains(1))
		assert.Nil(t, s.Slice())
		assert.Equal(t, "{}", s.String())

		s.Add(7)
		assert.True(t, s.Contains(7))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("AscendingIteration", func(t *testing.T) {
		s := NewNodeSet(9, 3, 1<<40, 5, 3)
		require.Equal(t, 4, s.Len())
		assert.Equal(t, []NodeID{3, 5, 9, 1 << 40}, s.Slice())
		assert.Equal(t, "{3, 5, 9, 1099511627776}", s.String())
	})

	t.Run("EarlyBreak", func(t *testing.T) {
		s := NewNodeSet(1, 2, 3, 4)
		var seen []NodeID
		for id := range s.All() {
			seen = append(seen, id)
			if id == 2 {
				break
			}
		}
		assert.Equal(t, []NodeID{1, 2}, seen)
	})

	t.Run("CloneIsIndependent", func(t *testing.T) {
		s := NewNodeSet(1, 2)
		c := s.Clone()
		c.Add(3)
		assert.False(t, s.Contains(3))
		assert.True(t, c.Contains(3))
	})

	t.Run("Union", func(t *testing.T) {
		var s NodeSet
		s.Union(NewNodeSet(4, 5))
		s.Union(NodeSet{})
		s.Union(NewNodeSet(1))
		assert.Equal(t, []NodeID{1, 4, 5}, s.Slice())
	})

	t.Run("Equal", func(t *testing.T) {
		assert.True(t, NewNodeSet(1, 2).Equal(NewNodeSet(2, 1)))
		assert.False(t, NewNodeSet(1, 2).Equal(NewNodeSet(1)))
		assert.True(t, NodeSet{}.Equal(NewNodeSet()))
		assert.False(t, NodeSet{}.Equal(NewNodeSet(1)))
	})
}

func TestNodeID(t *testing.T) {
	assert.True(t, NodeID(0).IsValid())
	assert.False(t, InvalidNodeID.IsValid())
	assert.Equal(t, "Node(42)", NodeID(42).String())
	assert.Equal(t, "Node(invalid)", InvalidNodeID.String())
}
