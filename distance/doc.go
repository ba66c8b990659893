// Package distance scores pairs of place descriptors.
//
// # Supported Metrics
//
//   - MetricCosine: cosine similarity in [-1, 1], 1 meaning "same place" (default)
//   - MetricL1: L1 distance between L1-normalised histograms, in [0, 2], 0 meaning identical
//
// Dense and sparse (bag-of-words) descriptors can be mixed freely. A dense
// descriptor compared against a sparse one is treated as sparse with word i
// for component i. Missing words count as zero on the side that lacks them.
//
// # Usage
//
//	sim := distance.Cosine(a, b)
//	dist := distance.L1(a, b)
//
//	score, _ := distance.Provider(distance.MetricL1) // similarity, higher is better
//	s := score(a, b)
package distance
