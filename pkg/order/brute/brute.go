// Package brute provides an exhaustive edge-order enumerator used as a
// ground truth in tests for the heuristic and exact solvers. It is not
// part of the production solve path: factorial growth makes it usable
// only on small instances.
package brute

import (
	"math/big"

	"github.com/nmrtools/bbsbbu/pkg/combin"
	"github.com/nmrtools/bbsbbu/pkg/instance"
	"github.com/nmrtools/bbsbbu/pkg/order"
)

// Order tries every permutation of inst's edges and returns one that
// minimizes OrderCost, along with that minimal cost.
func Order(inst *instance.Instance) ([]instance.EdgeID, *big.Int) {
	ids := inst.EdgeIDs()
	n := len(ids)

	var best []instance.EdgeID
	var bestCost *big.Int
	for _, perm := range combin.Generate(n, 0) {
		candidate := make([]instance.EdgeID, n)
		for pos, idx := range perm {
			candidate[pos] = ids[idx]
		}
		cost := order.OrderCost(candidate, inst, bestCost)
		if bestCost == nil || cost.Cmp(bestCost) < 0 {
			best, bestCost = candidate, cost
		}
	}
	return best, bestCost
}
