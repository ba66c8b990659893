// Package lcd implements loop-closure candidate search over place descriptors.
//
// Search is two-staged. SearchDescriptors scans a flat cache of coarse
// descriptors (one per submap, session or agent) and keeps every root that
// scores above the threshold alive. SearchLeafDescriptors then scans the
// finer per-root caches of those surviving roots and reduces them to one
// global best leaf.
//
// # Scan Order and Budget
//
// Candidates are visited in ascending NodeID order (for leaf search: roots
// ascending, then leaves ascending within a root). A candidate is counted
// against the ScanBudget only once it passed the candidate filter; after
// the budget is exhausted every further eligible candidate is skipped and
// reported in LayerSearchResults.Skipped. A non-positive budget is
// unlimited. Ties on the best score resolve to the candidate visited first,
// i.e. the lowest NodeID.
//
// All functions are read-only over their inputs. They can be called
// concurrently against the same caches as long as no writer mutates them.
package lcd
