package pt

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-graphviz"

	"github.com/nmrtools/bbsbbu/pkg/instance"
)

// ToDOT renders the precedence constraints induced by assigned (a
// segment -> paying-edge map, as returned in a completed search) as a
// Graphviz DOT digraph: one node per edge, one arrow per "must precede"
// constraint.
func ToDOT(inst *instance.Instance, assigned map[instance.SegmentID]instance.EdgeID) string {
	g := newPrecedenceGraph(inst.EdgeIDs())
	for sid, payer := range assigned {
		for _, other := range inst.S[sid].EdgeIDs {
			if other != payer {
				g.addEdge(payer, other)
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph PriorityTree {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, shape=box, style=\"filled,rounded\", fillcolor=white];\n\n")

	ids := inst.EdgeIDs()
	for _, id := range ids {
		e := inst.E[id]
		fmt.Fprintf(&buf, "  e%d [label=%q];\n", id, e.String())
	}
	buf.WriteString("\n")

	for _, from := range ids {
		tos := make([]instance.EdgeID, 0, len(g.succ[from]))
		for to := range g.succ[from] {
			tos = append(tos, to)
		}
		sort.Slice(tos, func(i, j int) bool { return tos[i] < tos[j] })
		for _, to := range tos {
			fmt.Fprintf(&buf, "  e%d -> e%d;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the precedence graph as an SVG image via Graphviz.
func RenderSVG(inst *instance.Instance, assigned map[instance.SegmentID]instance.EdgeID) ([]byte, error) {
	dot := ToDOT(inst, assigned)

	gv, err := graphviz.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(context.Background(), g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
