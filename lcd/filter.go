package lcd

import (
	"time"

	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/model"
)

// Filter decides whether a cached descriptor may be scored against a query.
type Filter interface {
	Matches(id model.NodeID, d *descriptor.Descriptor) bool
}

// candidateFilter admits only members of the caller-supplied candidate set.
type candidateFilter struct {
	ids  model.NodeSet
	next Filter
}

func (f *candidateFilter) Matches(id model.NodeID, d *descriptor.Descriptor) bool {
	if !f.ids.Contains(id) {
		return false
	}
	if f.next != nil {
		return f.next.Matches(id, d)
	}
	return true
}

// temporalFilter excludes descriptors observed too close in time to the query.
type temporalFilter struct {
	query         time.Time
	minSeparation time.Duration
	next          Filter
}

func (f *temporalFilter) Matches(id model.NodeID, d *descriptor.Descriptor) bool {
	if !TemporallySeparated(f.query, d.Timestamp(), f.minSeparation) {
		return false
	}
	if f.next != nil {
		return f.next.Matches(id, d)
	}
	return true
}

// NewFilter returns the eligibility filter for query: the candidate must be
// a member of candidates and be separated in time by at least
// cfg.MinTimeSeparation.
func NewFilter(query *descriptor.Descriptor, cfg MatchConfig, candidates model.NodeSet) Filter {
	return &candidateFilter{
		ids:  candidates,
		next: newTemporalFilter(query, cfg),
	}
}

func newTemporalFilter(query *descriptor.Descriptor, cfg MatchConfig) Filter {
	return &temporalFilter{
		query:         query.Timestamp(),
		minSeparation: cfg.MinTimeSeparation,
	}
}

// IsEligible reports whether candidate (stored under id) may be scored
// against query.
func IsEligible(query, candidate *descriptor.Descriptor, id model.NodeID, candidates model.NodeSet, cfg MatchConfig) bool {
	return NewFilter(query, cfg, candidates).Matches(id, candidate)
}

// TemporallySeparated reports whether |a - b| >= minSeparation.
func TemporallySeparated(a, b time.Time, minSeparation time.Duration) bool {
	gap := a.Sub(b)
	if gap < 0 {
		gap = -gap
	}
	// Negating the saturated minimum duration overflows.
	return gap < 0 || gap >= minSeparation
}
