package lcd

import (
	"slices"

	"github.com/hupe1980/placematch/model"
)

// RootLeafMap maps a root node to the member nodes it aggregates.
type RootLeafMap map[model.NodeID]model.NodeSet

// Match is one accepted candidate.
type Match struct {
	Node  model.NodeID
	Root  model.NodeID
	Score float32
}

// LayerSearchResults is the outcome of one search call.
//
// BestNode and BestScore are set whenever at least one candidate was scored,
// even if nothing was accepted, so a near miss can be inspected. Callers
// decide on a match with Found, not on BestScore alone. Candidates whose
// score is not finite never become BestNode.
type LayerSearchResults struct {
	// BestScore is the highest finite score among scored candidates, 0 if
	// none was scored. It is set even when no candidate was accepted.
	BestScore float32
	// BestNode is the candidate achieving BestScore, InvalidNodeID if none was scored.
	BestNode model.NodeID

	// ValidMatches holds the accepted candidates. For SearchDescriptors these
	// are all candidates scoring above MinScore; for SearchLeafDescriptors it
	// is the winning leaf.
	ValidMatches model.NodeSet
	// Matches lists accepted candidates, best first. Equal scores keep scan
	// order: ascending root, then ascending node.
	Matches []Match

	QueryNodes model.NodeSet
	QueryRoot  model.NodeID
	MatchNodes model.NodeSet
	MatchRoot  model.NodeID

	// Scanned is the number of candidates scored.
	Scanned int
	// Skipped is the number of eligible candidates dropped by the scan budget.
	Skipped int
}

// Found reports whether the search accepted a match.
func (r LayerSearchResults) Found() bool {
	return !r.ValidMatches.IsEmpty()
}

func emptyResults() LayerSearchResults {
	return LayerSearchResults{
		BestNode:  model.InvalidNodeID,
		QueryRoot: model.InvalidNodeID,
		MatchRoot: model.InvalidNodeID,
	}
}

// rankMatches orders accepted matches best first and keeps at most limit
// of them when limit is positive.
func rankMatches(matches []Match, limit int) []Match {
	if limit > 0 && len(matches) > limit {
		h := newMatchHeap(limit)
		for _, m := range matches {
			h.offer(m)
		}
		return h.sorted()
	}
	slices.SortFunc(matches, compareMatches)
	return matches
}
