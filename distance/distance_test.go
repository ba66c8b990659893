package distance

import (
	"errors"
	"math"
	"testing"

	"github.com/hupe1980/placematch/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dense(values ...float32) *descriptor.Descriptor {
	return descriptor.MustNew(values)
}

func sparse(words []uint32, values ...float32) *descriptor.Descriptor {
	return descriptor.MustNew(values, descriptor.WithWords(words...))
}

func normalized(t *testing.T, d *descriptor.Descriptor) *descriptor.Descriptor {
	t.Helper()
	n, ok := d.NormalizedCopy()
	require.True(t, ok)
	return n
}

func TestCosineDense(t *testing.T) {
	d1 := dense(1, 2, 3, 4, 5)
	d2 := dense(1, 2, 3, 4, 5)

	t.Run("Identical", func(t *testing.T) {
		assert.InDelta(t, 1.0, Cosine(d1, d2), 1e-6)
	})

	t.Run("ZeroVector", func(t *testing.T) {
		zero := dense(0, 0, 0, 0, 0)
		assert.Equal(t, float32(0), Cosine(zero, d2))
		assert.Equal(t, float32(0), Cosine(d2, zero))
		assert.Equal(t, float32(0), Cosine(zero, zero))
	})

	t.Run("OneNormalized", func(t *testing.T) {
		assert.InDelta(t, 1.0, Cosine(normalized(t, d1), d2), 1e-6)
	})

	t.Run("OtherNormalized", func(t *testing.T) {
		assert.InDelta(t, 1.0, Cosine(d1, normalized(t, d2)), 1e-6)
	})

	t.Run("BothNormalized", func(t *testing.T) {
		assert.InDelta(t, 1.0, Cosine(normalized(t, d1), normalized(t, d2)), 1e-6)
	})

	t.Run("Orthogonal", func(t *testing.T) {
		assert.InDelta(t, 0.0, Cosine(dense(1, 0), dense(0, 3)), 1e-6)
	})

	t.Run("Opposite", func(t *testing.T) {
		assert.InDelta(t, -1.0, Cosine(dense(1, 2), dense(-2, -4)), 1e-6)
	})

	t.Run("NormalizationInvariance", func(t *testing.T) {
		a := dense(0.3, -1.2, 4.5, 2)
		b := dense(1, 0.5, 3, -1)
		raw := Cosine(a, b)
		assert.InDelta(t, raw, Cosine(normalized(t, a), b), 1e-6)
		assert.InDelta(t, raw, Cosine(a, normalized(t, b)), 1e-6)
		assert.InDelta(t, raw, Cosine(normalized(t, a), normalized(t, b)), 1e-6)
	})

	t.Run("DimensionMismatchPanics", func(t *testing.T) {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			var dm *ErrDimensionMismatch
			require.True(t, errors.As(err, &dm))
			assert.Equal(t, 2, dm.A)
			assert.Equal(t, 3, dm.B)
		}()
		Cosine(dense(1, 2), dense(1, 2, 3))
	})

	t.Run("ExtremeMagnitudes", func(t *testing.T) {
		tests := []struct {
			name string
			v    float32
		}{
			{"Large", 1e20},
			{"MaxFloat32", math.MaxFloat32},
			{"Tiny", 1e-25},
			{"Subnormal", math.SmallestNonzeroFloat32},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				d := dense(tc.v, tc.v)
				assert.InDelta(t, 1.0, Cosine(d, d), 1e-6)
				assert.InDelta(t, 1.0, Cosine(d, dense(1, 1)), 1e-6)
				assert.InDelta(t, 0.0, Cosine(d, dense(1, -1)), 1e-6)
			})
		}
	})

	t.Run("ScaleMismatch", func(t *testing.T) {
		assert.InDelta(t, 1.0, Cosine(dense(3e19, 0), dense(1, 0)), 1e-6)
		assert.InDelta(t, 1.0, Cosine(dense(1e-25, 0), dense(1e20, 0)), 1e-6)
	})
}

func TestCosineSparse(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		d1 := sparse([]uint32{1, 2, 3, 4, 5}, 1, 2, 3, 4, 5)
		d2 := sparse([]uint32{1, 2, 3, 4, 5}, 1, 2, 3, 4, 5)
		assert.InDelta(t, 1.0, Cosine(d1, d2), 1e-6)
	})

	t.Run("ZeroFilledWordsAlign", func(t *testing.T) {
		d1 := sparse([]uint32{1, 2, 4, 5, 7}, 1, 2, 3, 0, 6)
		d2 := sparse([]uint32{1, 2, 3, 4, 7}, 1, 2, 0, 3, 6)
		assert.InDelta(t, 1.0, Cosine(d1, d2), 1e-6)
	})

	t.Run("UnsortedWords", func(t *testing.T) {
		d1 := sparse([]uint32{7, 1, 4}, 6, 1, 3)
		d2 := sparse([]uint32{1, 4, 7}, 1, 3, 6)
		assert.InDelta(t, 1.0, Cosine(d1, d2), 1e-6)
	})

	t.Run("NonSharedWordsCountTowardNorm", func(t *testing.T) {
		// a = (1, 0, 1), b = (1, 1, 0) over words {0, 1, 2}: cos = 1/2.
		a := sparse([]uint32{0, 2}, 1, 1)
		b := sparse([]uint32{0, 1}, 1, 1)
		assert.InDelta(t, 0.5, Cosine(a, b), 1e-6)
	})

	t.Run("Disjoint", func(t *testing.T) {
		a := sparse([]uint32{1, 2}, 1, 1)
		b := sparse([]uint32{3, 4}, 1, 1)
		assert.Equal(t, float32(0), Cosine(a, b))
	})

	t.Run("ZeroVector", func(t *testing.T) {
		a := sparse([]uint32{1, 2}, 0, 0)
		b := sparse([]uint32{1, 2}, 1, 1)
		assert.Equal(t, float32(0), Cosine(a, b))
	})

	t.Run("Normalized", func(t *testing.T) {
		a := sparse([]uint32{3, 8, 11}, 2, 5, 1)
		b := sparse([]uint32{3, 9, 11}, 1, 4, 2)
		assert.InDelta(t, Cosine(a, b), Cosine(normalized(t, a), b), 1e-6)
	})

	t.Run("MixedDenseSparse", func(t *testing.T) {
		d := dense(1, 0, 2)
		s := sparse([]uint32{0, 2}, 1, 2)
		assert.InDelta(t, 1.0, Cosine(d, s), 1e-6)
		assert.InDelta(t, 1.0, Cosine(s, d), 1e-6)
	})

	t.Run("ExtremeMagnitudes", func(t *testing.T) {
		for _, v := range []float32{1e20, math.MaxFloat32, 1e-25, math.SmallestNonzeroFloat32} {
			a := sparse([]uint32{2, 9}, v, v)
			b := sparse([]uint32{2, 5, 9}, 1, 0, 1)
			assert.InDelta(t, 1.0, Cosine(a, a), 1e-6, "v=%g", v)
			assert.InDelta(t, 1.0, Cosine(a, b), 1e-6, "v=%g", v)
		}
	})
}

func TestL1Dense(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		d := dense(1, 2, 3, 4, 5)
		assert.InDelta(t, 0.0, L1(d, d), 1e-6)
	})

	t.Run("ScaleCancels", func(t *testing.T) {
		assert.InDelta(t, 0.0, L1(dense(1, 2, 3), dense(2, 4, 6)), 1e-6)
	})

	t.Run("AsymmetricPerturbation", func(t *testing.T) {
		d1 := dense(1, 2, 3, 0, 6)
		d2 := dense(1, 2, 0, 3, 6)
		assert.InDelta(t, 0.5, L1(d1, d2), 1e-6)
	})

	t.Run("ZeroSum", func(t *testing.T) {
		// The zero descriptor normalises to zeros: distance is the other's mass.
		assert.InDelta(t, 1.0, L1(dense(0, 0), dense(1, 3)), 1e-6)
		assert.Equal(t, float32(0), L1(dense(0, 0), dense(0, 0)))
	})

	t.Run("DimensionMismatchPanics", func(t *testing.T) {
		assert.Panics(t, func() { L1(dense(1), dense(1, 2)) })
	})

	t.Run("ExtremeMagnitudes", func(t *testing.T) {
		for _, v := range []float32{1e20, math.MaxFloat32, 1e-25, math.SmallestNonzeroFloat32} {
			d := dense(v, v, 0)
			assert.InDelta(t, 0.0, L1(d, d), 1e-6, "v=%g", v)
			assert.InDelta(t, 0.0, L1(d, dense(1, 1, 0)), 1e-6, "v=%g", v)
			// Different histograms stay apart at any scale.
			assert.InDelta(t, 1.0, L1(d, dense(0, 1, 1)), 1e-6, "v=%g", v)
		}
	})
}

func TestL1Sparse(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		d1 := sparse([]uint32{1, 2, 3, 4, 5}, 1, 2, 3, 4, 5)
		d2 := sparse([]uint32{1, 2, 3, 4, 5}, 1, 2, 3, 4, 5)
		assert.InDelta(t, 0.0, L1(d1, d2), 1e-6)
	})

	t.Run("ZeroFilledWordsAlign", func(t *testing.T) {
		d1 := sparse([]uint32{1, 2, 4, 5, 7}, 1, 2, 3, 0, 6)
		d2 := sparse([]uint32{1, 2, 3, 4, 7}, 1, 2, 0, 3, 6)
		assert.InDelta(t, 0.0, L1(d1, d2), 1e-6)
	})

	t.Run("DifferentMagnitudes", func(t *testing.T) {
		d1 := sparse([]uint32{1, 2, 4, 5, 7}, 1, 2, 1, 0, 6)
		d2 := sparse([]uint32{1, 2, 3, 4, 7}, 1, 2, 0, 9, 6)
		assert.Less(t, float32(0), L1(d1, d2))
	})

	t.Run("Disjoint", func(t *testing.T) {
		a := sparse([]uint32{1}, 4)
		b := sparse([]uint32{2}, 7)
		assert.InDelta(t, 2.0, L1(a, b), 1e-6)
	})

	t.Run("ExtremeMagnitudes", func(t *testing.T) {
		a := sparse([]uint32{1, 4}, math.MaxFloat32, math.MaxFloat32)
		b := sparse([]uint32{1, 4}, 1, 1)
		c := sparse([]uint32{4, 6}, 1, 1)
		assert.InDelta(t, 0.0, L1(a, b), 1e-6)
		assert.InDelta(t, 1.0, L1(a, c), 1e-6)
	})
}

func TestL1Similarity(t *testing.T) {
	assert.InDelta(t, 1.0, L1Similarity(dense(1, 2), dense(1, 2)), 1e-6)
	assert.InDelta(t, 0.75, L1Similarity(dense(1, 2, 3, 0, 6), dense(1, 2, 0, 3, 6)), 1e-6)
	assert.InDelta(t, 0.0, L1Similarity(sparse([]uint32{1}, 1), sparse([]uint32{2}, 1)), 1e-6)
}

func TestMetric(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "Cosine", MetricCosine.String())
		assert.Equal(t, "L1", MetricL1.String())
		assert.Equal(t, "Unknown(99)", Metric(99).String())
	})

	t.Run("Provider", func(t *testing.T) {
		f, err := Provider(MetricCosine)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, f(dense(1, 1), dense(2, 2)), 1e-6)

		f, err = Provider(MetricL1)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, f(dense(1, 1), dense(2, 2)), 1e-6)

		_, err = Provider(Metric(99))
		assert.ErrorIs(t, err, ErrUnsupportedMetric)
	})

	t.Run("Text", func(t *testing.T) {
		var m Metric
		require.NoError(t, m.UnmarshalText([]byte("L1")))
		assert.Equal(t, MetricL1, m)

		require.NoError(t, m.UnmarshalText([]byte(" cosine ")))
		assert.Equal(t, MetricCosine, m)

		assert.ErrorIs(t, m.UnmarshalText([]byte("hamming")), ErrUnsupportedMetric)

		b, err := MetricL1.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, "l1", string(b))

		_, err = Metric(7).MarshalText()
		assert.Error(t, err)
	})
}

func BenchmarkCosineSparse(b *testing.B) {
	words := make([]uint32, 512)
	values := make([]float32, 512)
	for i := range words {
		words[i] = uint32(i * 3)
		values[i] = float32(i%7) + 1
	}
	d1 := sparse(words, values...)
	d2 := sparse(words, values...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Cosine(d1, d2)
	}
}
