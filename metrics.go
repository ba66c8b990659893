package placematch

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLayerSearch is called after each single-layer search.
	// scanned is the number of candidates scored, found reports an accepted match.
	RecordLayerSearch(scanned int, found bool, duration time.Duration, err error)

	// RecordLeafSearch is called after each hierarchical leaf search.
	RecordLeafSearch(scanned int, found bool, duration time.Duration, err error)

	// RecordDetection is called after each coarse-to-fine detection.
	RecordDetection(found bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLayerSearch(int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordLeafSearch(int, bool, time.Duration, error)  {}
func (NoopMetricsCollector) RecordDetection(bool, time.Duration, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LayerSearchCount      atomic.Int64
	LayerSearchErrors     atomic.Int64
	LayerSearchMatches    atomic.Int64
	LayerCandidatesScored atomic.Int64
	LayerSearchNanos      atomic.Int64
	LeafSearchCount       atomic.Int64
	LeafSearchErrors      atomic.Int64
	LeafSearchMatches     atomic.Int64
	LeafCandidatesScored  atomic.Int64
	LeafSearchNanos       atomic.Int64
	DetectionCount        atomic.Int64
	DetectionErrors       atomic.Int64
	DetectionMatches      atomic.Int64
}

// RecordLayerSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLayerSearch(scanned int, found bool, duration time.Duration, err error) {
	b.LayerSearchCount.Add(1)
	b.LayerSearchNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LayerSearchErrors.Add(1)
		return
	}
	b.LayerCandidatesScored.Add(int64(scanned))
	if found {
		b.LayerSearchMatches.Add(1)
	}
}

// RecordLeafSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLeafSearch(scanned int, found bool, duration time.Duration, err error) {
	b.LeafSearchCount.Add(1)
	b.LeafSearchNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LeafSearchErrors.Add(1)
		return
	}
	b.LeafCandidatesScored.Add(int64(scanned))
	if found {
		b.LeafSearchMatches.Add(1)
	}
}

// RecordDetection implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDetection(found bool, duration time.Duration, err error) {
	b.DetectionCount.Add(1)
	if err != nil {
		b.DetectionErrors.Add(1)
		return
	}
	if found {
		b.DetectionMatches.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LayerSearchCount:      b.LayerSearchCount.Load(),
		LayerSearchErrors:     b.LayerSearchErrors.Load(),
		LayerSearchMatches:    b.LayerSearchMatches.Load(),
		LayerCandidatesScored: b.LayerCandidatesScored.Load(),
		LayerSearchAvgNanos:   avg(b.LayerSearchNanos.Load(), b.LayerSearchCount.Load()),
		LeafSearchCount:       b.LeafSearchCount.Load(),
		LeafSearchErrors:      b.LeafSearchErrors.Load(),
		LeafSearchMatches:     b.LeafSearchMatches.Load(),
		LeafCandidatesScored:  b.LeafCandidatesScored.Load(),
		LeafSearchAvgNanos:    avg(b.LeafSearchNanos.Load(), b.LeafSearchCount.Load()),
		DetectionCount:        b.DetectionCount.Load(),
		DetectionErrors:       b.DetectionErrors.Load(),
		DetectionMatches:      b.DetectionMatches.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LayerSearchCount      int64
	LayerSearchErrors     int64
	LayerSearchMatches    int64
	LayerCandidatesScored int64
	LayerSearchAvgNanos   int64
	LeafSearchCount       int64
	LeafSearchErrors      int64
	LeafSearchMatches     int64
	LeafCandidatesScored  int64
	LeafSearchAvgNanos    int64
	DetectionCount        int64
	DetectionErrors       int64
	DetectionMatches      int64
}
