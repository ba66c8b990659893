// Package model defines the identity types shared by every placematch package.
//
// # Identity Types
//
//   - NodeID: Opaque, totally ordered identifier of a scene-graph node (uint64)
//   - NodeSet: Ordered set of NodeIDs backed by a 64-bit Roaring bitmap
//
// NodeSet iteration is always ascending, which is what gives the search
// functions their deterministic scan order.
package model
