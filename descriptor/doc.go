// Package descriptor defines the place descriptors that are compared during
// loop-closure candidate search, and the caches that hold them.
//
// A Descriptor is either dense (the position of a value is its dimension) or
// sparse (bag-of-words: each value is paired with a word id). Sparse
// descriptors are stored as (word, value) entries sorted by word, so that
// comparisons are a linear merge.
//
// Descriptors are immutable after New returns and are shared by pointer
// between caches and search results; nothing in this module copies the
// value payload after construction.
package descriptor
