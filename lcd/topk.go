package lcd

import (
	"cmp"
	"slices"
)

const heapArity = 4

// compareMatches orders matches best first: score descending, then root and
// node ascending. For both searches this is scan order among equal scores.
func compareMatches(a, b Match) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Root, b.Root); c != 0 {
		return c
	}
	return cmp.Compare(a.Node, b.Node)
}

// matchHeap keeps the k best matches. It is a 4-ary heap ordered worst
// first, so the root is the eviction candidate.
type matchHeap struct {
	k     int
	items []Match
}

func newMatchHeap(k int) *matchHeap {
	return &matchHeap{k: k, items: make([]Match, 0, k)}
}

func (h *matchHeap) Len() int { return len(h.items) }

// worse reports whether a ranks after b.
func worse(a, b Match) bool {
	return compareMatches(a, b) > 0
}

// offer adds m if the heap is not full or m beats the current worst.
func (h *matchHeap) offer(m Match) {
	if len(h.items) < h.k {
		h.items = append(h.items, m)
		h.up(len(h.items) - 1)
		return
	}
	if !worse(h.items[0], m) {
		return
	}
	h.items[0] = m
	h.down(0, len(h.items))
}

// sorted returns the kept matches best first. The heap is unusable afterwards.
func (h *matchHeap) sorted() []Match {
	slices.SortFunc(h.items, compareMatches)
	return h.items
}

func (h *matchHeap) up(j int) {
	item := h.items[j]
	for j > 0 {
		i := (j - 1) / heapArity
		if !worse(item, h.items[i]) {
			break
		}
		h.items[j] = h.items[i]
		j = i
	}
	h.items[j] = item
}

func (h *matchHeap) down(i0, n int) {
	i := i0
	item := h.items[i]
	for {
		first := heapArity*i + 1
		if first >= n {
			break
		}

		w := first
		last := min(first+heapArity, n)
		for c := first + 1; c < last; c++ {
			if worse(h.items[c], h.items[w]) {
				w = c
			}
		}

		if !worse(h.items[w], item) {
			break
		}
		h.items[i] = h.items[w]
		i = w
	}
	h.items[i] = item
}
