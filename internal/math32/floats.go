// Package math32 provides float32 vector kernels.
// This is an internal package - external users should use the distance package.
//
// Reductions accumulate in float64. A square or product of two finite
// float32 values is always finite and non-zero in float64, so sums over
// descriptors of any magnitude neither overflow nor underflow.
package math32

// Dot calculates the dot product of two vectors.
//
// Assumes len(a) == len(b); callers check lengths.
func Dot(a, b []float32) float64 {
	var ret float64
	for i := range a {
		ret += float64(a[i]) * float64(b[i])
	}

	return ret
}

// SquaredNorm returns the squared L2 norm of a.
func SquaredNorm(a []float32) float64 {
	var ret float64
	for _, v := range a {
		ret += float64(v) * float64(v)
	}

	return ret
}

// AbsSum returns the sum of absolute values (the L1 norm) of a.
func AbsSum(a []float32) float64 {
	var ret float64
	for _, v := range a {
		ret += Abs(float64(v))
	}

	return ret
}

// ScaledL1 returns sum(|a[i]*sa - b[i]*sb|).
//
// This is the L1 distance between a and b after scaling each side,
// without materialising the scaled copies.
func ScaledL1(a []float32, sa float64, b []float32, sb float64) float64 {
	var distance float64
	for i := range a {
		distance += Abs(float64(a[i])*sa - float64(b[i])*sb)
	}

	return distance
}

// ScaleInPlace multiplies all elements of a by scalar.
// The product is formed in float64 and rounded once.
func ScaleInPlace(a []float32, scalar float64) {
	for i := range a {
		a[i] = float32(float64(a[i]) * scalar)
	}
}

// IsZero reports whether every element of a is zero.
func IsZero(a []float32) bool {
	for _, v := range a {
		if v != 0 {
			return false
		}
	}

	return true
}

// Abs returns |v|.
func Abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
