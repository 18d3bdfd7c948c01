// Package order implements the cost model and the two baseline ordering
// heuristics (SBBU, Greedy).
package order

import (
	"math/big"
	"sort"

	"github.com/nmrtools/bbsbbu/pkg/instance"
)

// OrderCost computes the total cost of a full edge order:
// each segment's weight is paid exactly once, by the first edge in the
// order that covers it. An edge that covers no new segment costs zero, not
// one — the product of zero covered-segment weights is 1, which is treated
// as "nothing to pay".
//
// costUB is an optional upper bound: pass nil to always compute the exact
// cost. If costUB is non-nil, OrderCost stops as soon as the running total
// reaches or exceeds it and returns costUB unchanged rather than the true
// (and now irrelevant) total — the caller only needed to know this order is
// no better than costUB, and finishing the walk would do the remaining
// edges' work for nothing.
func OrderCost(order []instance.EdgeID, inst *instance.Instance, costUB *big.Int) *big.Int {
	total := new(big.Int)
	paid := make(map[instance.SegmentID]struct{}, len(inst.S))
	for _, eid := range order {
		e := inst.E[eid]
		edgeCost := big.NewInt(1)
		for _, sid := range e.SegmentIDs {
			if _, done := paid[sid]; done {
				continue
			}
			edgeCost.Mul(edgeCost, inst.S[sid].Weight())
			paid[sid] = struct{}{}
		}
		if edgeCost.Cmp(bigOne) > 0 {
			total.Add(total, edgeCost)
		}
		if costUB != nil && total.Cmp(costUB) >= 0 {
			return new(big.Int).Set(costUB)
		}
	}
	return total
}

var bigOne = big.NewInt(1)

// CostRelax returns the lower bound on the remaining cost contributed by a
// set of not-yet-covered segments: the sum of their weights, since each
// will be paid in full by whichever edge covers it first.
func CostRelax(uncovered map[instance.SegmentID]struct{}, inst *instance.Instance) *big.Int {
	total := new(big.Int)
	for sid := range uncovered {
		total.Add(total, inst.S[sid].Weight())
	}
	return total
}

// SBBU orders edges by ascending (j, i): the simple baseline named for the
// build-up strategy it mirrors at the distance-geometry layer.
func SBBU(inst *instance.Instance) ([]instance.EdgeID, *big.Int) {
	order := inst.EdgeIDs()
	sort.Slice(order, func(a, b int) bool {
		ea, eb := inst.E[order[a]], inst.E[order[b]]
		if ea.J != eb.J {
			return ea.J < eb.J
		}
		return ea.I < eb.I
	})
	return order, OrderCost(order, inst, nil)
}

// Greedy builds an order one edge at a time, always choosing the edge with
// the smallest marginal cost against the segments still uncovered,
// breaking ties by ascending edge id for determinism.
func Greedy(inst *instance.Instance) ([]instance.EdgeID, *big.Int) {
	remaining := make(map[instance.EdgeID]*instance.Edge, len(inst.E))
	for id, e := range inst.E {
		remaining[id] = e
	}
	paid := make(map[instance.SegmentID]struct{}, len(inst.S))

	order := make([]instance.EdgeID, 0, len(inst.E))
	for len(remaining) > 0 {
		candidates := make([]instance.EdgeID, 0, len(remaining))
		for id := range remaining {
			candidates = append(candidates, id)
		}
		sort.Slice(candidates, func(a, b int) bool { return candidates[a] < candidates[b] })

		var best instance.EdgeID
		var bestCost *big.Int
		for _, eid := range candidates {
			cost := marginalCost(inst, paid, eid)
			if bestCost == nil || cost.Cmp(bestCost) < 0 {
				best, bestCost = eid, cost
			}
		}
		order = append(order, best)
		for _, sid := range inst.E[best].SegmentIDs {
			paid[sid] = struct{}{}
		}
		delete(remaining, best)
	}
	return order, OrderCost(order, inst, nil)
}

// marginalCost returns the cost edge eid would incur if appended next,
// given the segments already paid.
func marginalCost(inst *instance.Instance, paid map[instance.SegmentID]struct{}, eid instance.EdgeID) *big.Int {
	edgeCost := big.NewInt(1)
	for _, sid := range inst.E[eid].SegmentIDs {
		if _, done := paid[sid]; done {
			continue
		}
		edgeCost.Mul(edgeCost, inst.S[sid].Weight())
	}
	if edgeCost.Cmp(bigOne) > 0 {
		return edgeCost
	}
	return new(big.Int)
}
