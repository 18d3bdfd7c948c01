// Package instance implements the instance loader and segment builder
// it parses a ".nmr" edge list,
// classifies edges into backbone and prune edges, and derives the maximal
// same-cover atom segments that the ordering engine pays for.
package instance

import (
	"fmt"
	"math/big"
	"sort"
)

// Atom is a 1-based position in the linear atom chain.
type Atom int

// EdgeID names a prune edge. Ids are assigned sequentially starting at 1
// when an instance is loaded; they are never shared across instances.
type EdgeID int

// SegmentID names a segment. Ids are assigned sequentially starting at 1
// when an instance's segments are built; they are never shared across
// instances.
type SegmentID int

// Edge is a prune edge (i, j) with i < j and j >= i+4. Edge is immutable
// once returned by Load: SegmentIDs is populated during segment
// construction and never mutated afterward.
type Edge struct {
	ID EdgeID
	I  Atom
	J  Atom

	// SegmentIDs lists, in ascending order, the segments this edge covers.
	SegmentIDs []SegmentID
}

// Covers reports whether the edge covers segment s:
// e.i+3 <= s.i && s.j <= e.j.
func (e *Edge) Covers(s *Segment) bool {
	return e.I+3 <= s.I && s.J <= e.J
}

// Segment is a maximal contiguous atom range covered by an identical set
// of prune edges. Segment is immutable once returned by BuildSegments.
type Segment struct {
	ID SegmentID
	I  Atom
	J  Atom

	// EdgeIDs lists, in ascending order, the prune edges incident to this
	// segment.
	EdgeIDs []EdgeID
}

// Weight returns w(s) = 2^(j-i+1), the cost paid by the first edge in an
// ordering that covers this segment. Arbitrary precision avoids silent
// overflow on long chains.
func (s *Segment) Weight() *big.Int {
	span := int(s.J-s.I) + 1
	return new(big.Int).Lsh(big.NewInt(1), uint(span))
}

// Instance is the immutable result of loading and segmenting an .nmr file:
// the edge table E, the segment table S, and the atom count NNodes.
//
// Solvers never mutate Instance; each maintains its own auxiliary state
// (coverage counters, permutation arrays, precedence graphs) disjoint from
// it, preserving that lifecycle invariant.
type Instance struct {
	E      map[EdgeID]*Edge
	S      map[SegmentID]*Segment
	NNodes int
}

// EdgeIDs returns the instance's edge ids sorted ascending. Map iteration
// order in Go is randomized, so callers that need deterministic output
// (SBBU, logging, checkpoints) should iterate this slice rather than
// range over inst.E directly.
func (inst *Instance) EdgeIDs() []EdgeID {
	ids := make([]EdgeID, 0, len(inst.E))
	for id := range inst.E {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SegmentIDs returns the instance's segment ids sorted ascending.
func (inst *Instance) SegmentIDs() []SegmentID {
	ids := make([]SegmentID, 0, len(inst.S))
	for id := range inst.S {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// String renders an edge as "(i,j)", used in diagnostics and DOT labels.
func (e *Edge) String() string {
	return fmt.Sprintf("(%d,%d)", e.I, e.J)
}

// String renders a segment as "[i,j]", used in diagnostics and DOT labels.
func (s *Segment) String() string {
	return fmt.Sprintf("[%d,%d]", s.I, s.J)
}
