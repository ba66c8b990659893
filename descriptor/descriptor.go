package descriptor

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/hupe1980/placematch/internal/math32"
	"github.com/hupe1980/placematch/model"
)

// Entry is one component of a sparse descriptor.
type Entry struct {
	Word  uint32
	Value float32
}

// Descriptor is a compact signature of the observations rooted at a node.
type Descriptor struct {
	values     []float32 // dense components, or sparse values in word order
	entries    []Entry   // nil for dense descriptors
	normalized bool
	root       model.NodeID
	nodes      model.NodeSet
	timestamp  time.Time
}

type options struct {
	words      []uint32
	sparse     bool
	normalized bool
	root       model.NodeID
	nodes      model.NodeSet
	timestamp  time.Time
}

// Option configures a Descriptor at construction time.
type Option func(*options)

// WithWords marks the descriptor as sparse: words[i] is the dimension id of
// values[i]. Words must be unique and as many as the values.
func WithWords(words ...uint32) Option {
	return func(o *options) {
		o.words = words
		o.sparse = true
	}
}

// WithNormalized declares that the values already have unit L2 norm.
//
// The flag only lets similarity computation skip a normalisation pass; it
// must be accurate.
func WithNormalized(normalized bool) Option {
	return func(o *options) {
		o.normalized = normalized
	}
}

// WithRoot sets the node this descriptor summarizes.
func WithRoot(root model.NodeID) Option {
	return func(o *options) {
		o.root = root
	}
}

// WithNodes sets the member nodes aggregated into the descriptor.
func WithNodes(nodes ...model.NodeID) Option {
	return func(o *options) {
		o.nodes = model.NewNodeSet(nodes...)
	}
}

// WithNodeSet is like WithNodes but takes an existing set. The set is cloned.
func WithNodeSet(nodes model.NodeSet) Option {
	return func(o *options) {
		o.nodes = nodes.Clone()
	}
}

// WithTimestamp sets the observation time used for temporal separation.
func WithTimestamp(ts time.Time) Option {
	return func(o *options) {
		o.timestamp = ts
	}
}

// New creates a descriptor over values.
//
// New takes ownership of values; the caller must not modify the slice
// afterwards.
func New(values []float32, optFns ...Option) (*Descriptor, error) {
	var o options
	for _, fn := range optFns {
		fn(&o)
	}

	for i, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &ErrNonFiniteValue{Index: i, Value: v}
		}
	}

	d := &Descriptor{
		values:     values,
		normalized: o.normalized,
		root:       o.root,
		nodes:      o.nodes,
		timestamp:  o.timestamp,
	}

	if !o.sparse {
		return d, nil
	}

	if len(o.words) != len(values) {
		return nil, &ErrLengthMismatch{Values: len(values), Words: len(o.words)}
	}

	entries := make([]Entry, len(values))
	for i := range values {
		entries[i] = Entry{Word: o.words[i], Value: values[i]}
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Word, b.Word)
	})
	for i := 1; i < len(entries); i++ {
		if entries[i].Word == entries[i-1].Word {
			return nil, &ErrDuplicateWord{Word: entries[i].Word}
		}
	}

	// Keep values in word order so that Values and Entries agree.
	sorted := make([]float32, len(entries))
	for i, e := range entries {
		sorted[i] = e.Value
	}
	d.values = sorted
	d.entries = entries

	return d, nil
}

// MustNew is like New but panics on error.
// It is intended for tests and static fixtures.
func MustNew(values []float32, optFns ...Option) *Descriptor {
	d, err := New(values, optFns...)
	if err != nil {
		panic(err)
	}
	return d
}

// Values returns the descriptor components. Sparse values are ordered by word.
// The returned slice must not be modified.
func (d *Descriptor) Values() []float32 { return d.values }

// Entries returns the sparse (word, value) entries sorted by word, or nil for
// a dense descriptor. The returned slice must not be modified.
func (d *Descriptor) Entries() []Entry { return d.entries }

// IsSparse reports whether the descriptor carries words.
func (d *Descriptor) IsSparse() bool { return d.entries != nil }

// Dim returns the number of stored components.
func (d *Descriptor) Dim() int { return len(d.values) }

// IsNormalized reports whether the values are flagged as unit L2 norm.
func (d *Descriptor) IsNormalized() bool { return d.normalized }

// Root returns the node this descriptor summarizes.
func (d *Descriptor) Root() model.NodeID { return d.root }

// Nodes returns the member nodes. The returned set must not be modified.
func (d *Descriptor) Nodes() model.NodeSet { return d.nodes }

// Timestamp returns the observation time.
func (d *Descriptor) Timestamp() time.Time { return d.timestamp }

// IsZero reports whether every component is zero.
func (d *Descriptor) IsZero() bool { return math32.IsZero(d.values) }

// Norm returns the L2 norm of the values, or 1 if the descriptor is flagged
// as normalized.
func (d *Descriptor) Norm() float64 {
	if d.normalized {
		return 1
	}
	return math.Sqrt(math32.SquaredNorm(d.values))
}

// NormalizedCopy returns a unit-L2 copy of d flagged as normalized.
// Returns false if d is the zero vector.
func (d *Descriptor) NormalizedCopy() (*Descriptor, bool) {
	norm2 := math32.SquaredNorm(d.values)
	if norm2 == 0 {
		return nil, false
	}

	values := slices.Clone(d.values)
	math32.ScaleInPlace(values, 1/math.Sqrt(norm2))

	c := *d
	c.values = values
	c.normalized = true
	if d.entries != nil {
		c.entries = make([]Entry, len(d.entries))
		for i, e := range d.entries {
			c.entries[i] = Entry{Word: e.Word, Value: values[i]}
		}
	}
	return &c, true
}
