package lcd

import (
	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/model"
)

// SearchDescriptors scans cache for the descriptors most similar to query.
//
// Only members of candidates that are present in cache and pass the
// temporal separation check are scored, at most budget of them. Every
// candidate scoring above cfg.MinScore is returned in ValidMatches. On a
// match, MatchRoot is the best node and MatchNodes its rootLeafMap entry;
// when that entry is missing or empty the winning descriptor's own member
// nodes are used.
//
// It panics if cfg names an unsupported metric or if two dense descriptors
// of different dimension are compared.
func SearchDescriptors(
	query *descriptor.Descriptor,
	cfg MatchConfig,
	candidates model.NodeSet,
	cache descriptor.Cache,
	rootLeafMap RootLeafMap,
	budget ScanBudget,
	optFns ...SearchOption,
) LayerSearchResults {
	opts := applySearchOptions(optFns)
	score := cfg.scorer()

	plan := planLayer(cache, candidates, newTemporalFilter(query, cfg), budget)
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

	matches := accepted(plan, scores, cfg.MinScore)
	if len(matches) == 0 || results.BestScore <= cfg.MinScore {
		return results
	}

	for _, m := range matches {
		results.ValidMatches.Add(m.Node)
	}
	results.Matches = rankMatches(matches, cfg.MaxMatches)

	results.QueryNodes = query.Nodes().Clone()
	results.QueryRoot = query.Root()
	results.MatchRoot = winner.id
	if leaves, ok := rootLeafMap[winner.id]; ok && !leaves.IsEmpty() {
		results.MatchNodes = leaves.Clone()
	} else {
		results.MatchNodes = winner.desc.Nodes().Clone()
	}

	return results
}
