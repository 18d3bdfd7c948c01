package instance

import (
	"strings"
	"testing"
)

func TestBuildSegments_testA(t *testing.T) {
	// Three prune edges over a 20-atom chain, no backbone rows: the
	// fixture used throughout the worked examples.
	inst, err := load(strings.NewReader("1 10\n3 15\n15 20\n"), "testA.nmr")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	wantSegs := []struct {
		i, j   Atom
		weight int64
	}{
		{4, 5, 4},
		{6, 10, 32},
		{11, 15, 32},
		{18, 20, 8},
	}
	segIDs := inst.SegmentIDs()
	if len(segIDs) != len(wantSegs) {
		t.Fatalf("got %d segments, want %d", len(segIDs), len(wantSegs))
	}
	for idx, id := range segIDs {
		s := inst.S[id]
		want := wantSegs[idx]
		if s.I != want.i || s.J != want.j {
			t.Errorf("segment %d: got [%d,%d], want [%d,%d]", idx, s.I, s.J, want.i, want.j)
		}
		if w := s.Weight().Int64(); w != want.weight {
			t.Errorf("segment %d: weight = %d, want %d", idx, w, want.weight)
		}
	}

	e1, e2, e3 := inst.E[1], inst.E[2], inst.E[3]
	if e1 == nil || e2 == nil || e3 == nil {
		t.Fatalf("expected edges 1,2,3, got %v", inst.EdgeIDs())
	}
	if got := e1.SegmentIDs; !equalSegIDs(got, []SegmentID{1, 2}) {
		t.Errorf("edge 1 segments = %v, want [1 2]", got)
	}
	if got := e2.SegmentIDs; !equalSegIDs(got, []SegmentID{2, 3}) {
		t.Errorf("edge 2 segments = %v, want [2 3]", got)
	}
	if got := e3.SegmentIDs; !equalSegIDs(got, []SegmentID{4}) {
		t.Errorf("edge 3 segments = %v, want [4]", got)
	}
}

func equalSegIDs(got, want []SegmentID) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestLoad_discardsBackboneEdges(t *testing.T) {
	// Row "5 7" has j <= i+3 and must not produce a prune edge, but its
	// endpoint still counts toward NNodes.
	inst, err := load(strings.NewReader("1 10\n5 7\n3 15\n15 20\n"), "mixed.nmr")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(inst.E) != 3 {
		t.Fatalf("got %d prune edges, want 3", len(inst.E))
	}
	if inst.NNodes != 20 {
		t.Errorf("NNodes = %d, want 20", inst.NNodes)
	}
}

func TestLoad_rejectsNonIntegerTokens(t *testing.T) {
	if _, err := load(strings.NewReader("1 x\n"), "bad.nmr"); err == nil {
		t.Fatal("expected error for non-integer token")
	}
}

func TestLoad_rejectsOutOfOrderEndpoints(t *testing.T) {
	if _, err := load(strings.NewReader("10 1\n"), "bad.nmr"); err == nil {
		t.Fatal("expected error when i >= j")
	}
}

func TestLoad_ignoresCommentsAndBlankLines(t *testing.T) {
	inst, err := load(strings.NewReader("# header\n\n1 10\n\n3 15\n15 20\n"), "testA.nmr")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(inst.E) != 3 {
		t.Fatalf("got %d prune edges, want 3", len(inst.E))
	}
}

func TestBuildSegments_noPruneEdges(t *testing.T) {
	inst, err := BuildSegments(nil)
	if err != nil {
		t.Fatalf("BuildSegments: %v", err)
	}
	if len(inst.E) != 0 || len(inst.S) != 0 {
		t.Fatalf("expected empty tables, got E=%d S=%d", len(inst.E), len(inst.S))
	}
}

func TestEdgeCovers(t *testing.T) {
	e := &Edge{ID: 1, I: 1, J: 10}
	s := &Segment{ID: 1, I: 4, J: 5}
	if !e.Covers(s) {
		t.Error("edge (1,10) should cover segment [4,5]")
	}
	outside := &Segment{ID: 2, I: 11, J: 12}
	if e.Covers(outside) {
		t.Error("edge (1,10) should not cover segment [11,12]")
	}
}

func TestSegmentsAreOrderedAndDisjoint(t *testing.T) {
	// Segments never overlap and appear in ascending atom order; adjacent
	// segments either touch (J+1 == nextI) or are separated by an
	// uncovered gap, never overlap.
	inst, err := load(strings.NewReader("1 10\n3 15\n15 20\n5 25\n"), "dense.nmr")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ids := inst.SegmentIDs()
	for k := 1; k < len(ids); k++ {
		prev := inst.S[ids[k-1]]
		cur := inst.S[ids[k]]
		if cur.I <= prev.J {
			t.Errorf("segment %d [%d,%d] overlaps segment %d [%d,%d]", ids[k], cur.I, cur.J, ids[k-1], prev.I, prev.J)
		}
	}
}
