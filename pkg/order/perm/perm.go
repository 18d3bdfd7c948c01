// Package perm implements BBPerm, a resumable lexicographic permutation
// enumerator used to drive the branch-and-bound solver in pkg/order/bb
// It hands out edge ids one at a time in normal state, and
// backtracks to the next lexicographically larger choice once pruned.
package perm

import (
	"container/heap"

	"github.com/nmrtools/bbsbbu/pkg/instance"
)

// invalid marks an abandoned slot in Order(); instance edge ids start at 1.
const invalid = instance.EdgeID(-1)

type state int

const (
	stateNormal state = iota
	statePrune
)

// BBPerm enumerates permutations of a fixed set of edge ids in
// lexicographic order, one Next() call at a time, without ever
// materializing the full permutation list. Calling Prune() before the next
// Next() call discards the current branch: enumeration resumes from the
// next lexicographically larger choice at the current depth, backtracking
// further if none exists.
type BBPerm struct {
	elems []instance.EdgeID // the fixed element set, for StartFrom
	order []instance.EdgeID // order[0:idx+1] is the current prefix
	idx   int
	h     minHeap
	state state
}

// New creates a BBPerm over elems. The first call to Next returns the
// smallest element.
func New(elems []instance.EdgeID) *BBPerm {
	order := make([]instance.EdgeID, len(elems))
	for i := range order {
		order[i] = invalid
	}
	h := make(minHeap, len(elems))
	copy(h, elems)
	heap.Init(&h)
	return &BBPerm{
		elems: append([]instance.EdgeID(nil), elems...),
		order: order,
		idx:   -1,
		h:     h,
		state: stateNormal,
	}
}

// Idx returns the index of the last element placed in the current prefix,
// or -1 if the prefix is empty.
func (p *BBPerm) Idx() int { return p.idx }

// At returns the raw value held at position i of the internal order array,
// which may be the invalid sentinel if position i lies beyond the current
// prefix. Callers that need to detect exactly which positions a backtrack
// invalidated (branch-and-bound's incremental rollback) use this instead
// of Order(), which only exposes the confirmed prefix.
func (p *BBPerm) At(i int) instance.EdgeID { return p.order[i] }

// Invalid is the sentinel value BBPerm writes into abandoned positions of
// its internal order array.
func Invalid() instance.EdgeID { return invalid }

// Order returns the current prefix order[0:Idx()+1]. The returned slice
// aliases BBPerm's internal state and must not be retained past the next
// Next/Prune/StartFrom call.
func (p *BBPerm) Order() []instance.EdgeID {
	if p.idx < 0 {
		return nil
	}
	return p.order[:p.idx+1]
}

// Next advances the enumeration and returns the next element in
// lexicographic order, or ok=false once every permutation has been
// produced (or pruned away).
func (p *BBPerm) Next() (instance.EdgeID, bool) {
	if p.state == stateNormal {
		if p.h.Len() > 0 {
			emin := heap.Pop(&p.h).(instance.EdgeID)
			p.idx++
			p.order[p.idx] = emin
			return emin, true
		}
		p.state = statePrune
		return p.Next()
	}

	// statePrune: backtrack to the next larger choice at the current depth.
	if p.idx == -1 {
		return 0, false
	}
	emin, ok := p.MinGT(p.order[p.idx])
	if !ok {
		heap.Push(&p.h, p.order[p.idx])
		p.order[p.idx] = invalid
		p.idx--
		return p.Next()
	}
	heap.Push(&p.h, p.order[p.idx])
	p.order[p.idx] = emin
	p.state = stateNormal
	return emin, true
}

// Prune discards the branch rooted at the current prefix: the next Next()
// call backtracks to the smallest available choice strictly greater than
// the element at the current depth, instead of descending further.
func (p *BBPerm) Prune() {
	p.state = statePrune
}

// MinGT returns the smallest available (not currently placed) element
// strictly greater than elem, or ok=false if none remains.
func (p *BBPerm) MinGT(elem instance.EdgeID) (_ instance.EdgeID, ok bool) {
	if p.h.Len() == 0 {
		return 0, false
	}
	var buffer []instance.EdgeID
	var item instance.EdgeID
	for p.h.Len() > 0 {
		item = heap.Pop(&p.h).(instance.EdgeID)
		if item > elem {
			ok = true
			break
		}
		buffer = append(buffer, item)
	}
	for _, b := range buffer {
		heap.Push(&p.h, b)
	}
	if ok {
		return item, true
	}
	return 0, false
}

// StartFrom resets enumeration to resume from a saved checkpoint: prefix
// holds the confirmed order up to and including index idx. Elements not
// in the prefix become available again, in normal state.
func (p *BBPerm) StartFrom(idx int, prefix []instance.EdgeID) {
	p.idx = idx
	copy(p.order[:idx+1], prefix[:idx+1])
	p.state = stateNormal

	used := make(map[instance.EdgeID]bool, idx+1)
	for _, e := range prefix[:idx+1] {
		used[e] = true
	}
	p.h = p.h[:0]
	for _, e := range p.elems {
		if !used[e] {
			p.h = append(p.h, e)
		}
	}
	heap.Init(&p.h)
}

// minHeap is a container/heap min-heap of edge ids.
type minHeap []instance.EdgeID

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(instance.EdgeID)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
