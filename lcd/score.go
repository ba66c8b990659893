package lcd

import (
	"math"
	"sync"

	"github.com/hupe1980/placematch/descriptor"
	"github.com/hupe1980/placematch/distance"
	"golang.org/x/sync/errgroup"
)

// minParallelChunk is the smallest number of candidates handed to one worker.
const minParallelChunk = 64

type searchOptions struct {
	parallelism int
}

// SearchOption configures how a search executes. Options never change the
// result, only how it is computed.
type SearchOption func(*searchOptions)

// WithParallelism scores candidates on up to n goroutines. n <= 1 scores
// sequentially on the calling goroutine. A panic in a worker (for example a
// dense dimension mismatch) is re-raised on the calling goroutine.
func WithParallelism(n int) SearchOption {
	return func(o *searchOptions) {
		o.parallelism = n
	}
}

func applySearchOptions(optFns []SearchOption) searchOptions {
	var o searchOptions
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// scorePlan scores every planned candidate against query. scores[i] belongs
// to plan.candidates[i]; workers write disjoint ranges, so the output does
// not depend on scheduling.
func scorePlan(query *descriptor.Descriptor, plan *scanPlan, score distance.Func, parallelism int) []float32 {
	n := len(plan.candidates)
	scores := make([]float32, n)

	if parallelism <= 1 || n < 2*minParallelChunk {
		for i, c := range plan.candidates {
			scores[i] = score(query, c.desc)
		}
		return scores
	}

	chunk := max((n+parallelism-1)/parallelism, minParallelChunk)

	var (
		g        errgroup.Group
		mu       sync.Mutex
		panicked any
	)
	g.SetLimit(parallelism)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if panicked == nil {
						panicked = r
					}
					mu.Unlock()
				}
			}()
			for i := start; i < end; i++ {
				scores[i] = score(query, plan.candidates[i].desc)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	if panicked != nil {
		panic(panicked)
	}

	return scores
}

// best returns the index of the highest finite score, -1 if there is none.
// Strict comparison keeps the first (lowest ordered) candidate on ties.
func best(scores []float32) int {
	idx := -1
	for i, s := range scores {
		if !finite(s) {
			continue
		}
		if idx < 0 || s > scores[idx] {
			idx = i
		}
	}
	return idx
}

// accepted collects the candidates with a finite score strictly above minScore.
func accepted(plan *scanPlan, scores []float32, minScore float32) []Match {
	var out []Match
	for i, s := range scores {
		if finite(s) && s > minScore {
			c := plan.candidates[i]
			out = append(out, Match{Node: c.id, Root: c.root, Score: s})
		}
	}
	return out
}

// finite reports whether s can be ranked. Non-finite candidates count as
// scanned but never win and are never accepted.
func finite(s float32) bool {
	return !math.IsNaN(float64(s)) && !math.IsInf(float64(s), 0)
}
