// Package pkg provides the core libraries for the bbsbbu edge-ordering
// engine.
//
// # Overview
//
// bbsbbu computes a cost-minimizing edge order for the BP/BB-SBBU
// distance-geometry pruning-device ordering problem: given an NMR
// instance's prune edges and the segments they cover, find an order of
// the edges that minimizes the total cost of "paying" for each segment
// the first time it is covered.
//
// # Architecture
//
// The typical data flow through bbsbbu:
//
//	.nmr instance file
//	         ↓
//	    [instance] package (parse edges, build segments)
//	         ↓
//	    [order] package (cost model, SBBU, Greedy baselines)
//	         ↓
//	    [order/bb] or [order/pt] (exact solvers)
//	         ↓
//	    [report] package (.log metrics) / [checkpoint] (resumable state)
//
// # Main Packages
//
// [instance] - Loads .nmr files and builds the segment table: for each
// maximal run of atoms covered by an identical set of prune edges, one
// Segment with weight 2^(j-i+1).
//
// [order] - The cost model (OrderCost, CostRelax) and the two baseline
// heuristics, SBBU (sort by endpoint) and Greedy (minimum marginal cost).
//
// [order/perm] - BBPerm, a resumable lexicographic permutation enumerator
// backed by a min-heap, that drives the Branch-and-Bound solver.
//
// [order/bb] - The Branch-and-Bound exact solver, with checkpointed
// resume and context-based cancellation.
//
// [order/pt] - The Priority-Tree exact solver: branches on which edge
// pays for each segment, maintaining a precedence DAG, and renders that
// DAG to Graphviz DOT/SVG for debugging.
//
// [order/brute] - A factorial-time exhaustive enumerator used only by
// tests to validate BB/PT optimality on small instances.
//
// [checkpoint] - The versioned, atomically-written JSON schema a
// Branch-and-Bound run persists on timeout and resumes from.
//
// [report] - Writes the ".log" metric lines a solve run produces.
//
// [config] - Reads bbsbbu.toml, the optional defaults file for -tmax and
// -clean_log.
//
// [errors] - Structured, code-tagged errors shared by the solver core and
// the CLI driver.
//
// [combin] - A small permutation generator used by test helpers.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...       # All tests
//	go test ./pkg/order/... # Just the solvers
package pkg
