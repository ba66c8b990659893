package lcd

import (
	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/model"
)

// SearchLeafDescriptors scans the leaf caches of the given roots and returns
// the single best leaf across all of them.
//
// Roots missing from roots or from caches are never scanned, so an empty
// roots set always yields an empty result. Every leaf of a scanned root is
// a candidate; only the temporal separation check applies. The budget is
// shared across roots in ascending root order.
//
// On a match ValidMatches holds the winning leaf, MatchRoot the root whose
// cache held it and MatchNodes its member nodes (the leaf itself when it has
// none). Matches lists every leaf above cfg.MinScore.
func SearchLeafDescriptors(
	query *descriptor.Descriptor,
	cfg MatchConfig,
	roots model.NodeSet,
	caches descriptor.CacheMap,
	budget ScanBudget,
	optFns ...SearchOption,
) LayerSearchResults {
	opts := applySearchOptions(optFns)
	score := cfg.scorer()

	plan := planLeaves(caches, roots, newTemporalFilter(query, cfg), budget)
	scores := scorePlan(query, plan, score, opts.parallelism)

	results := emptyResults()
	results.Scanned = len(plan.candidates)
	results.Skipped = plan.skipped

	bi := best(scores)
	if bi < 0 {
		return results
	}
	winner := plan.candidates[bi]
	results.BestScore = scores[bi]
	results.BestNode = winner.id

	if results.BestScore <= cfg.MinScore {
		return results
	}

	results.ValidMatches = model.NewNodeSet(winner.id)
	results.Matches = rankMatches(accepted(plan, scores, cfg.MinScore), cfg.MaxMatches)

	results.QueryNodes = query.Nodes().Clone()
	results.QueryRoot = query.Root()
	results.MatchRoot = winner.root
	if nodes := winner.desc.Nodes(); !nodes.IsEmpty() {
		results.MatchNodes = nodes.Clone()
	} else {
		results.MatchNodes = model.NewNodeSet(winner.id)
	}

	return results
}
