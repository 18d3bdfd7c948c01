package perm_test

import (
	"testing"

	"github.com/nmrtools/bbsbbu/pkg/instance"
	"github.com/nmrtools/bbsbbu/pkg/order/perm"
)

func ids(vals ...int) []instance.EdgeID {
	out := make([]instance.EdgeID, len(vals))
	for i, v := range vals {
		out[i] = instance.EdgeID(v)
	}
	return out
}

func TestMinGT(t *testing.T) {
	p := perm.New(ids(9, 15, 5, 20, 18, 7))
	got, ok := p.MinGT(15)
	if !ok {
		t.Fatal("MinGT(15) reported no result")
	}
	if got != 18 {
		t.Errorf("MinGT(15) = %d, want 18", got)
	}
}

func TestMinGT_noneRemains(t *testing.T) {
	p := perm.New(ids(1, 2, 3))
	if _, ok := p.MinGT(3); ok {
		t.Error("MinGT(3) over {1,2,3} should report no result")
	}
}

func TestMinGT_emptyHeap(t *testing.T) {
	p := perm.New(nil)
	if _, ok := p.MinGT(0); ok {
		t.Error("MinGT over an empty set should report no result")
	}
}

func TestNext_visitsEveryPermutationExactlyOnce(t *testing.T) {
	elems := ids(1, 2, 3, 4)
	p := perm.New(elems)

	seen := make(map[string]bool)
	var order []instance.EdgeID
	for {
		eid, ok := p.Next()
		if !ok {
			break
		}
		order = append(order[:p.Idx()], eid)
		if p.Idx() == len(elems)-1 {
			key := ""
			for _, e := range order {
				key += string(rune('0' + e))
			}
			if seen[key] {
				t.Fatalf("permutation %v produced twice", order)
			}
			seen[key] = true
		}
	}
	const want = 24 // 4!
	if len(seen) != want {
		t.Errorf("visited %d permutations, want %d", len(seen), want)
	}
}

func TestPrune_skipsBranch(t *testing.T) {
	// Pruning immediately after the first element must exclude every
	// permutation that shares that first element, while still visiting
	// every permutation that doesn't.
	elems := ids(1, 2, 3)
	p := perm.New(elems)

	first, ok := p.Next()
	if !ok {
		t.Fatal("expected a first element")
	}
	p.Prune() // abandon every permutation starting with `first`

	var completed [][]instance.EdgeID
	for {
		_, ok := p.Next()
		if !ok {
			break
		}
		if p.Idx() == len(elems)-1 {
			completed = append(completed, append([]instance.EdgeID(nil), p.Order()...))
		}
	}

	const wantCount = 4 // (3! - 2!) permutations not starting with `first`
	if len(completed) != wantCount {
		t.Fatalf("visited %d completed permutations after pruning, want %d", len(completed), wantCount)
	}
	for _, c := range completed {
		if c[0] == first {
			t.Errorf("permutation %v starts with pruned element %d", c, first)
		}
	}
}

func TestStartFrom_resumesIdentically(t *testing.T) {
	elems := ids(1, 2, 3, 4, 5)

	run := func(p *perm.BBPerm, steps int) [][]instance.EdgeID {
		var snapshots [][]instance.EdgeID
		for i := 0; i < steps; i++ {
			if i%3 == 0 {
				p.Prune()
			}
			if _, ok := p.Next(); !ok {
				break
			}
			snapshots = append(snapshots, append([]instance.EdgeID(nil), p.Order()...))
		}
		return snapshots
	}

	p := perm.New(elems)
	_, _ = p.Next()
	for i := 0; i < 10; i++ {
		if i%5 == 0 {
			p.Prune()
		}
		if _, ok := p.Next(); !ok {
			break
		}
	}
	savedIdx := p.Idx()
	savedOrder := append([]instance.EdgeID(nil), p.Order()...)

	first := run(p, 10)

	p2 := perm.New(elems)
	p2.StartFrom(savedIdx, savedOrder)
	second := run(p2, 10)

	if len(first) != len(second) {
		t.Fatalf("resumed run produced %d steps, want %d", len(second), len(first))
	}
	for i := range first {
		if len(first[i]) != len(second[i]) {
			t.Fatalf("step %d: length %d != %d", i, len(first[i]), len(second[i]))
		}
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Errorf("step %d position %d: %d != %d", i, j, first[i][j], second[i][j])
			}
		}
	}
}
