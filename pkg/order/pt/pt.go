// Package pt implements the Priority-Tree solver: instead of branching
// over edge positions directly, it branches
// over which edge pays for each segment, maintaining a precedence graph
// (payer before every other edge covering the same segment) and pruning
// any assignment whose graph would become cyclic or whose cost already
// meets the best complete assignment found so far. A valid assignment is
// realizable by exactly the topological orders of its precedence graph;
// Solve picks the smallest one by an ascending-edge-id tie-break.
package pt

import (
	"context"
	"math/big"
	"sort"
	"time"

	"github.com/nmrtools/bbsbbu/pkg/instance"
)

// Result is the outcome of a Solve call.
type Result struct {
	Order    []instance.EdgeID
	Cost     *big.Int
	Assigned map[instance.SegmentID]instance.EdgeID
	Timeout  bool
}

// search holds the branch-and-bound state threaded through Solve's
// recursion: the segment branching order, the precedence graph built
// incrementally as segments are assigned a payer, each edge's running
// product of assigned-segment weights, and the best complete assignment
// found so far.
type search struct {
	inst     *instance.Instance
	segOrder []instance.SegmentID
	suffixLB []*big.Int // suffixLB[i] = sum of weights of segOrder[i:]

	graph     *precedenceGraph
	edgeProd  map[instance.EdgeID]*big.Int
	assigned  map[instance.SegmentID]instance.EdgeID

	bestCost     *big.Int
	bestAssigned map[instance.SegmentID]instance.EdgeID

	ctx      context.Context
	deadline time.Time
	timedOut bool
}

// Solve runs the priority-tree branch-and-bound until it completes, ctx is
// cancelled, or tmax elapses (tmax <= 0 means no wall-clock limit). On
// timeout it returns the best complete assignment found so far, with
// Result.Timeout set, matching the package bb solver's contract.
func Solve(ctx context.Context, inst *instance.Instance, tmax time.Duration) Result {
	segIDs := inst.SegmentIDs()
	// Branch on the heaviest segments first: they add the steepest lower
	// bound once decided, pruning more of the tree sooner.
	sort.Slice(segIDs, func(i, j int) bool {
		wi, wj := inst.S[segIDs[i]].Weight(), inst.S[segIDs[j]].Weight()
		if c := wi.Cmp(wj); c != 0 {
			return c > 0
		}
		return segIDs[i] < segIDs[j]
	})

	suffixLB := make([]*big.Int, len(segIDs)+1)
	suffixLB[len(segIDs)] = new(big.Int)
	for i := len(segIDs) - 1; i >= 0; i-- {
		suffixLB[i] = new(big.Int).Add(suffixLB[i+1], inst.S[segIDs[i]].Weight())
	}

	ids := inst.EdgeIDs()
	var deadline time.Time
	if tmax > 0 {
		deadline = time.Now().Add(tmax)
	}
	s := &search{
		inst:     inst,
		segOrder: segIDs,
		suffixLB: suffixLB,
		graph:    newPrecedenceGraph(ids),
		edgeProd: make(map[instance.EdgeID]*big.Int, len(ids)),
		assigned: make(map[instance.SegmentID]instance.EdgeID, len(segIDs)),
		ctx:      ctx,
		deadline: deadline,
	}

	if len(ids) == 0 {
		return Result{Order: nil, Cost: new(big.Int), Assigned: map[instance.SegmentID]instance.EdgeID{}}
	}

	s.recurse(0, new(big.Int))

	// Replay the winning assignment into a fresh graph to recover its
	// topological order: the search's own graph has since been unwound
	// back to empty by backtracking.
	finalGraph := newPrecedenceGraph(ids)
	for sid, payer := range s.bestAssigned {
		for _, other := range inst.S[sid].EdgeIDs {
			if other != payer {
				finalGraph.addEdge(payer, other)
			}
		}
	}
	order := finalGraph.topoOrder(ids)

	return Result{Order: order, Cost: s.bestCost, Assigned: s.bestAssigned, Timeout: s.timedOut}
}

func (s *search) recurse(i int, partialCost *big.Int) {
	if s.timedOut {
		return
	}
	if timedOut(s.ctx, s.deadline) {
		s.timedOut = true
		return
	}

	if i == len(s.segOrder) {
		if s.bestCost == nil || partialCost.Cmp(s.bestCost) < 0 {
			s.bestCost = new(big.Int).Set(partialCost)
			s.bestAssigned = make(map[instance.SegmentID]instance.EdgeID, len(s.assigned))
			for sid, eid := range s.assigned {
				s.bestAssigned[sid] = eid
			}
		}
		return
	}

	lowerBound := new(big.Int).Add(partialCost, s.suffixLB[i])
	if s.bestCost != nil && lowerBound.Cmp(s.bestCost) >= 0 {
		return
	}

	sid := s.segOrder[i]
	seg := s.inst.S[sid]
	weight := seg.Weight()

	candidates := append([]instance.EdgeID(nil), seg.EdgeIDs...)
	sort.Slice(candidates, func(a, b int) bool { return candidates[a] < candidates[b] })

	for _, payer := range candidates {
		if s.timedOut {
			return
		}
		var addedFrom []instance.EdgeID
		conflict := false
		for _, other := range seg.EdgeIDs {
			if other == payer {
				continue
			}
			if s.graph.reachable(other, payer) {
				conflict = true
				break
			}
			s.graph.addEdge(payer, other)
			addedFrom = append(addedFrom, other)
		}
		if !conflict {
			oldProd, had := s.edgeProd[payer]
			oldContribution := new(big.Int)
			if had {
				oldContribution.Set(oldProd)
			}
			newProd := new(big.Int)
			if had {
				newProd.Mul(oldProd, weight)
			} else {
				newProd.Set(weight)
			}
			s.edgeProd[payer] = newProd
			s.assigned[sid] = payer

			delta := new(big.Int).Sub(newProd, oldContribution)
			s.recurse(i+1, new(big.Int).Add(partialCost, delta))

			delete(s.assigned, sid)
			if had {
				s.edgeProd[payer] = oldProd
			} else {
				delete(s.edgeProd, payer)
			}
		}
		for _, other := range addedFrom {
			s.graph.removeEdge(payer, other)
		}
	}
}

func timedOut(ctx context.Context, deadline time.Time) bool {
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return !deadline.IsZero() && time.Now().After(deadline)
}
