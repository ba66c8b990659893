package model

import (
	"fmt"
	"math"
)

// NodeID identifies a node of the scene graph.
// It carries no meaning beyond identity and ordering.
type NodeID uint64

// InvalidNodeID marks the absence of a node (e.g. no best match).
const InvalidNodeID = NodeID(math.MaxUint64)

// IsValid reports whether id is not the InvalidNodeID sentinel.
func (id NodeID) IsValid() bool {
	return id != InvalidNodeID
}

// String returns a string representation of the NodeID.
func (id NodeID) String() string {
	if id == InvalidNodeID {
		return "Node(invalid)"
	}
	return fmt.Sprintf("Node(%d)", uint64(id))
}
