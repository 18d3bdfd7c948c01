package pt_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nmrtools/bbsbbu/pkg/instance"
	"github.com/nmrtools/bbsbbu/pkg/order/brute"
	"github.com/nmrtools/bbsbbu/pkg/order/pt"
)

func load(t *testing.T, body string) *instance.Instance {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.nmr")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	inst, err := instance.Load(path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return inst
}

func TestSolve_matchesBruteForce(t *testing.T) {
	fixtures := map[string]string{
		"testA": "1 10\n3 15\n15 20\n",
		"testB": "1 5\n1 10\n5 12\n10 14\n",
		"testC": "2 8\n3 12\n9 16\n1 20\n",
		"testD": "1 6\n2 9\n4 11\n7 13\n",
	}
	for name, body := range fixtures {
		t.Run(name, func(t *testing.T) {
			inst := load(t, body)
			res := pt.Solve(context.Background(), inst, 0)
			_, costBF := brute.Order(inst)
			if res.Cost.Cmp(costBF) != 0 {
				t.Errorf("PT cost %v != brute-force optimum %v", res.Cost, costBF)
			}
			if len(res.Order) != len(inst.E) {
				t.Errorf("PT order has %d edges, want %d", len(res.Order), len(inst.E))
			}
		})
	}
}

func TestSolve_orderIsPermutationOfAllEdges(t *testing.T) {
	inst := load(t, "1 10\n3 15\n15 20\n")
	res := pt.Solve(context.Background(), inst, 0)

	seen := make(map[instance.EdgeID]bool, len(res.Order))
	for _, eid := range res.Order {
		if seen[eid] {
			t.Fatalf("edge %d appears twice in %v", eid, res.Order)
		}
		seen[eid] = true
	}
	for id := range inst.E {
		if !seen[id] {
			t.Errorf("edge %d missing from order %v", id, res.Order)
		}
	}
}

func TestSolve_deadlineProducesTimeoutResult(t *testing.T) {
	// A larger instance forced through an already-expired deadline must
	// report Timeout and still return whatever complete assignment (if
	// any) was found before the cutoff, not block.
	inst := load(t, "1 8\n2 11\n4 14\n6 17\n9 20\n3 23\n12 25\n")
	res := pt.Solve(context.Background(), inst, time.Nanosecond)
	if !res.Timeout {
		t.Fatal("expected Solve to report a timeout with a near-zero deadline")
	}
}

func TestSolve_cancelledContextStopsSearch(t *testing.T) {
	inst := load(t, "1 10\n3 15\n15 20\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := pt.Solve(ctx, inst, 0)
	if !res.Timeout {
		t.Fatal("expected Solve to report a timeout when ctx is already cancelled")
	}
}

func TestToDOT_rendersEveryEdge(t *testing.T) {
	inst := load(t, "1 10\n3 15\n15 20\n")
	res := pt.Solve(context.Background(), inst, 0)

	dot := pt.ToDOT(inst, res.Assigned)
	for id := range inst.E {
		label := inst.E[id].String()
		if !strings.Contains(dot, label) {
			t.Errorf("DOT output missing label %q for edge %d:\n%s", label, id, dot)
		}
	}
}
