// Package bb implements the exact branch-and-bound edge-order solver
// it enumerates edge permutations via BBPerm,
// maintains incremental coverage counters to avoid recomputing cost from
// scratch at every node, and prunes any branch whose relaxed lower bound
// already meets or exceeds the best complete order found so far.
package bb

import (
	"context"
	"math/big"
	"time"

	"github.com/nmrtools/bbsbbu/pkg/checkpoint"
	bberrors "github.com/nmrtools/bbsbbu/pkg/errors"
	"github.com/nmrtools/bbsbbu/pkg/instance"
	"github.com/nmrtools/bbsbbu/pkg/order"
	"github.com/nmrtools/bbsbbu/pkg/order/perm"
)

// Result is the outcome of a Solve call.
type Result struct {
	Order   []instance.EdgeID
	Cost    *big.Int
	Timeout bool
}

var bigOne = big.NewInt(1)

// search holds the mutable state threaded through one branch-and-bound
// run: the confirmed-prefix order BB itself tracks (distinct from the
// permutation enumerator's own internal array), and the per-segment
// coverage counters C and uncovered set U.
type search struct {
	inst  *instance.Instance
	p     *perm.BBPerm
	idx   int
	order []instance.EdgeID
	C     map[instance.SegmentID]int
	U     map[instance.SegmentID]struct{}
}

// rem rolls back every position from the search's last-known depth down to
// the point where its own order array agrees with the permutation
// enumerator's current array again, undoing each rolled-back edge's
// contribution to C and U. It returns the cost that must be subtracted
// from the running partial cost.
func (s *search) rem() *big.Int {
	total := new(big.Int)
	idx := s.idx
	for idx >= 0 && s.p.At(idx) != s.order[idx] {
		eid := s.order[idx]
		s.order[idx] = perm.Invalid()
		edgeCost := big.NewInt(1)
		for _, sid := range s.inst.E[eid].SegmentIDs {
			s.C[sid]--
			if s.C[sid] == 0 {
				edgeCost.Mul(edgeCost, s.inst.S[sid].Weight())
				s.U[sid] = struct{}{}
			}
		}
		if edgeCost.Cmp(bigOne) > 0 {
			total.Add(total, edgeCost)
		}
		idx--
	}
	return total
}

// add places eid at the permutation enumerator's current depth, updating C
// and U, and returns the cost it contributes.
func (s *search) add(eid instance.EdgeID) *big.Int {
	s.order[s.p.Idx()] = eid
	edgeCost := big.NewInt(1)
	for _, sid := range s.inst.E[eid].SegmentIDs {
		s.C[sid]++
		if s.C[sid] == 1 {
			edgeCost.Mul(edgeCost, s.inst.S[sid].Weight())
			delete(s.U, sid)
		}
	}
	if edgeCost.Cmp(bigOne) > 0 {
		return edgeCost
	}
	return new(big.Int)
}

// Solve runs branch-and-bound to completion, until ctx is cancelled, or
// until tmax elapses (tmax <= 0 means no wall-clock limit). If resume is
// non-nil, the search restarts from its confirmed prefix instead of from
// scratch. If checkpointPath is non-empty, Solve writes a checkpoint there
// before returning on timeout or cancellation.
func Solve(ctx context.Context, inst *instance.Instance, tmax time.Duration, resume *checkpoint.Checkpoint, checkpointPath string) (Result, error) {
	n := len(inst.E)
	ids := inst.EdgeIDs()

	s := &search{
		inst:  inst,
		order: make([]instance.EdgeID, n),
		C:     make(map[instance.SegmentID]int, len(inst.S)),
		U:     make(map[instance.SegmentID]struct{}, len(inst.S)),
		p:     perm.New(ids),
	}
	for i := range s.order {
		s.order[i] = perm.Invalid()
	}

	var orderOpt []instance.EdgeID
	var costUB *big.Int

	if resume != nil {
		var ok bool
		costUB, ok = new(big.Int).SetString(resume.CostUB, 10)
		if !ok {
			return Result{}, bberrors.New(bberrors.ErrCodeCheckpointInvalid, "checkpoint cost_ub %q is not an integer", resume.CostUB)
		}
		orderOpt = append([]instance.EdgeID(nil), resume.OrderOpt...)

		s.p.StartFrom(resume.Idx, resume.Order)
		s.idx = resume.Idx
		copy(s.order, resume.Order)
		for i := resume.Idx + 1; i < n; i++ {
			s.order[i] = perm.Invalid()
		}
		for i := 0; i <= resume.Idx; i++ {
			for _, sid := range inst.E[s.order[i]].SegmentIDs {
				s.C[sid]++
			}
		}
		for sid := range inst.S {
			if s.C[sid] == 0 {
				s.U[sid] = struct{}{}
			}
		}
	} else {
		orderOpt, costUB = order.SBBU(inst)
		s.idx = -1
		for sid := range inst.S {
			s.U[sid] = struct{}{}
		}
	}

	if costLB := order.CostRelax(s.U, inst); costLB.Cmp(costUB) == 0 {
		return Result{Order: orderOpt, Cost: costUB}, nil
	}

	var deadline time.Time
	if tmax > 0 {
		deadline = time.Now().Add(tmax)
	}

	// On resume the confirmed prefix has already paid for the segments it
	// covers; a fresh search starts from an empty prefix and cost zero.
	partialCost := order.OrderCost(s.order[:s.idx+1], inst, nil)
	eid, ok := s.p.Next()
	for ok {
		partialCost.Sub(partialCost, s.rem())
		partialCost.Add(partialCost, s.add(eid))
		s.idx = s.p.Idx()

		costLB := new(big.Int).Add(partialCost, order.CostRelax(s.U, inst))
		switch {
		case costLB.Cmp(costUB) >= 0:
			s.p.Prune()
		case s.p.Idx() == n-1:
			costUB = new(big.Int).Set(costLB)
			orderOpt = append([]instance.EdgeID(nil), s.order...)
		}

		if timedOut(ctx, deadline) {
			if checkpointPath != "" {
				if err := save(checkpointPath, s, orderOpt, costUB); err != nil {
					return Result{}, err
				}
			}
			return Result{Order: orderOpt, Cost: costUB, Timeout: true}, nil
		}

		eid, ok = s.p.Next()
	}
	return Result{Order: orderOpt, Cost: costUB}, nil
}

func timedOut(ctx context.Context, deadline time.Time) bool {
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return !deadline.IsZero() && time.Now().After(deadline)
}

func save(path string, s *search, orderOpt []instance.EdgeID, costUB *big.Int) error {
	counters := make([]checkpoint.CounterEntry, 0, len(s.C))
	for sid, c := range s.C {
		counters = append(counters, checkpoint.CounterEntry{Segment: sid, Count: c})
	}
	uncovered := make([]instance.SegmentID, 0, len(s.U))
	for sid := range s.U {
		uncovered = append(uncovered, sid)
	}
	return checkpoint.Save(path, checkpoint.Checkpoint{
		Idx:       s.idx,
		Order:     append([]instance.EdgeID(nil), s.order...),
		OrderOpt:  orderOpt,
		CostUB:    costUB.String(),
		Counters:  counters,
		Uncovered: uncovered,
	})
}
