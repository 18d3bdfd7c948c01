package pt

import (
	"sort"

	"github.com/nmrtools/bbsbbu/pkg/instance"
)

// precedenceGraph tracks "must come before" constraints among edges,
// accumulated as the search commits each segment to a paying edge:
// whenever edge p is chosen to pay for a segment also covered by edges
// e1..ek, p must precede each ei in the final order.
type precedenceGraph struct {
	succ map[instance.EdgeID]map[instance.EdgeID]struct{}
}

func newPrecedenceGraph(ids []instance.EdgeID) *precedenceGraph {
	g := &precedenceGraph{succ: make(map[instance.EdgeID]map[instance.EdgeID]struct{}, len(ids))}
	for _, id := range ids {
		g.succ[id] = make(map[instance.EdgeID]struct{})
	}
	return g
}

// reachable reports whether to is reachable from from by following succ
// edges (a BFS walk), including the trivial case from == to.
func (g *precedenceGraph) reachable(from, to instance.EdgeID) bool {
	if from == to {
		return true
	}
	visited := map[instance.EdgeID]bool{from: true}
	queue := []instance.EdgeID{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range g.succ[cur] {
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// addEdge records that from must precede to. Callers must first confirm
// this won't close a cycle via reachable(to, from).
func (g *precedenceGraph) addEdge(from, to instance.EdgeID) {
	g.succ[from][to] = struct{}{}
}

func (g *precedenceGraph) removeEdge(from, to instance.EdgeID) {
	delete(g.succ[from], to)
}

// topoOrder returns a topological order over ids consistent with every
// recorded precedence constraint, breaking ties by ascending edge id
// (matching the segment-assignment tie-break) so the result is deterministic.
func (g *precedenceGraph) topoOrder(ids []instance.EdgeID) []instance.EdgeID {
	indeg := make(map[instance.EdgeID]int, len(ids))
	for _, id := range ids {
		indeg[id] = 0
	}
	for _, tos := range g.succ {
		for to := range tos {
			indeg[to]++
		}
	}

	var ready []instance.EdgeID
	for _, id := range ids {
		if indeg[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })

	order := make([]instance.EdgeID, 0, len(ids))
	for len(ready) > 0 {
		cur := ready[0]
		ready = ready[1:]
		order = append(order, cur)
		for to := range g.succ[cur] {
			indeg[to]--
			if indeg[to] == 0 {
				ready = append(ready, to)
			}
		}
		sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
	}
	return order
}
