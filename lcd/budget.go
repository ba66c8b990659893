package lcd

import (
	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/model"
)

// ScanBudget bounds the number of candidates scored per search call.
// A non-positive budget is unlimited.
type ScanBudget int

// Unlimited disables the scan budget.
const Unlimited ScanBudget = 0

// Allows reports whether another candidate may be scored after scanned
// candidates already were.
func (b ScanBudget) Allows(scanned int) bool {
	return b <= 0 || scanned < int(b)
}

type candidate struct {
	id   model.NodeID
	root model.NodeID
	desc *descriptor.Descriptor
}

// scanPlan is the ordered list of candidates a search will score.
// Building it is cheap (filter checks only), so the budget cut is decided
// before any scoring happens and is identical for identical inputs.
type scanPlan struct {
	budget     ScanBudget
	candidates []candidate
	skipped    int
}

func newScanPlan(budget ScanBudget) *scanPlan {
	p := &scanPlan{budget: budget}
	if budget > 0 {
		p.candidates = make([]candidate, 0, int(budget))
	}
	return p
}

// offer appends c if the budget allows it.
func (p *scanPlan) offer(c candidate) {
	if !p.budget.Allows(len(p.candidates)) {
		p.skipped++
		return
	}
	p.candidates = append(p.candidates, c)
}

// planLayer collects the eligible members of cache in ascending id order.
// filter is applied on top of candidate set membership.
func planLayer(cache descriptor.Cache, candidates model.NodeSet, filter Filter, budget ScanBudget) *scanPlan {
	plan := newScanPlan(budget)

	// Walk whichever side is smaller; both walks are ascending.
	if candidates.Len() <= len(cache) {
		for id := range candidates.All() {
			d, ok := cache[id]
			if !ok || d == nil || !filter.Matches(id, d) {
				continue
			}
			plan.offer(candidate{id: id, root: id, desc: d})
		}
		return plan
	}

	member := &candidateFilter{ids: candidates, next: filter}
	for _, id := range cache.IDs() {
		d := cache[id]
		if d == nil || !member.Matches(id, d) {
			continue
		}
		plan.offer(candidate{id: id, root: id, desc: d})
	}
	return plan
}

// planLeaves collects the eligible leaves of every candidate root present
// in caches, roots ascending and leaves ascending within a root.
func planLeaves(caches descriptor.CacheMap, roots model.NodeSet, filter Filter, budget ScanBudget) *scanPlan {
	plan := newScanPlan(budget)

	for root := range roots.All() {
		cache, ok := caches[root]
		if !ok {
			continue
		}
		for _, id := range cache.IDs() {
			d := cache[id]
			if d == nil || !filter.Matches(id, d) {
				continue
			}
			plan.offer(candidate{id: id, root: root, desc: d})
		}
	}
	return plan
}
