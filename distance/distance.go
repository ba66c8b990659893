package distance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/internal/math32"
)

// ErrUnsupportedMetric is returned by Provider and ParseMetric for unknown metrics.
var ErrUnsupportedMetric = errors.New("unsupported metric")

// ErrDimensionMismatch indicates that two dense descriptors of different
// lengths were compared. Comparison functions panic with this error: a
// mismatch is a defect of the descriptor producer, and a silent score would
// turn into a false loop closure.
type ErrDimensionMismatch struct {
	A int
	B int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: %d != %d", e.A, e.B)
}

// Cosine returns the cosine similarity of a and b.
//
// Descriptors flagged as normalized are assumed to have unit norm. If either
// vector is all zero the similarity is 0. Sums are accumulated in float64, so
// any finite descriptor scores a finite value.
func Cosine(a, b *descriptor.Descriptor) float32 {
	var dot float64
	if !a.IsSparse() && !b.IsSparse() {
		checkDense(a, b)
		dot = math32.Dot(a.Values(), b.Values())
	} else {
		dot = sparseDot(entriesOf(a), entriesOf(b))
	}

	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}

	sim := dot / (na * nb)
	return float32(max(-1, min(1, sim)))
}

// L1 returns the L1 distance between the L1-normalised values of a and b.
//
// Each descriptor is divided by the sum of its absolute values; a descriptor
// whose sum is zero normalises to all zeros. The result is not clamped.
func L1(a, b *descriptor.Descriptor) float32 {
	sa, sb := l1Scale(a), l1Scale(b)

	if !a.IsSparse() && !b.IsSparse() {
		checkDense(a, b)
		return float32(math32.ScaledL1(a.Values(), sa, b.Values(), sb))
	}

	ea, eb := entriesOf(a), entriesOf(b)

	var dist float64
	i, j := 0, 0
	for i < len(ea) && j < len(eb) {
		switch {
		case ea[i].Word == eb[j].Word:
			dist += math32.Abs(float64(ea[i].Value)*sa - float64(eb[j].Value)*sb)
			i++
			j++
		case ea[i].Word < eb[j].Word:
			dist += math32.Abs(float64(ea[i].Value) * sa)
			i++
		default:
			dist += math32.Abs(float64(eb[j].Value) * sb)
			j++
		}
	}
	for ; i < len(ea); i++ {
		dist += math32.Abs(float64(ea[i].Value) * sa)
	}
	for ; j < len(eb); j++ {
		dist += math32.Abs(float64(eb[j].Value) * sb)
	}

	return float32(dist)
}

// L1Similarity maps L1 onto a similarity in [-1, 1]: 1 - L1(a, b)/2.
func L1Similarity(a, b *descriptor.Descriptor) float32 {
	return 1 - L1(a, b)/2
}

// Metric selects how two descriptors are scored.
type Metric int

const (
	MetricCosine Metric = iota
	MetricL1
)

func (m Metric) String() string {
	switch m {
	case MetricCosine:
		return "Cosine"
	case MetricL1:
		return "L1"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// ParseMetric parses a metric name (case-insensitive).
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cosine", "":
		return MetricCosine, nil
	case "l1":
		return MetricL1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMetric, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) {
	if _, err := Provider(m); err != nil {
		return nil, err
	}
	return []byte(strings.ToLower(m.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Func scores two descriptors. Higher is more similar.
type Func func(a, b *descriptor.Descriptor) float32

// Provider returns the similarity function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricCosine:
		return Cosine, nil
	case MetricL1:
		return L1Similarity, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMetric, m)
	}
}

func checkDense(a, b *descriptor.Descriptor) {
	if a.Dim() != b.Dim() {
		panic(&ErrDimensionMismatch{A: a.Dim(), B: b.Dim()})
	}
}

// entriesOf returns the sparse view of d. Dense component i becomes word i.
func entriesOf(d *descriptor.Descriptor) []descriptor.Entry {
	if d.IsSparse() {
		return d.Entries()
	}
	values := d.Values()
	out := make([]descriptor.Entry, len(values))
	for i, v := range values {
		out[i] = descriptor.Entry{Word: uint32(i), Value: v}
	}
	return out
}

// sparseDot sums products over the words present on both sides.
func sparseDot(ea, eb []descriptor.Entry) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(ea) && j < len(eb) {
		switch {
		case ea[i].Word == eb[j].Word:
			dot += float64(ea[i].Value) * float64(eb[j].Value)
			i++
			j++
		case ea[i].Word < eb[j].Word:
			i++
		default:
			j++
		}
	}
	return dot
}

func l1Scale(d *descriptor.Descriptor) float64 {
	sum := math32.AbsSum(d.Values())
	if sum == 0 {
		return 0
	}
	return 1 / sum
}
