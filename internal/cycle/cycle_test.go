package cycle

import (
	"testing"

	"github.com/ingo/depviz/internal/graph"
	"github.com/ingo/depviz/pkg/types"
)

func TestDetectFindsSimpleCycle(t *testing.T) {
	g := graph.New()
	g.AddEdge("a.py", "b.py", types.EdgeMeta{})
	g.AddEdge("b.py", "c.py", types.EdgeMeta{})
	g.AddEdge("c.py", "a.py", types.EdgeMeta{})

	cycles := Detect(g)
	if len(cycles) != 1 {
		t.Fatalf("Detect() returned %d cycles, want 1: %v", len(cycles), cycles)
	}
	if cycles[0][0] != "a.py" || cycles[0][len(cycles[0])-1] != "a.py" {
		t.Fatalf("cycle not rotated to start/end at lexicographic min: %v", cycles[0])
	}
}

func TestDetectDedupesByVertexSet(t *testing.T) {
	g := graph.New()
	g.AddEdge("a.py", "b.py", types.EdgeMeta{})
	g.AddEdge("b.py", "a.py", types.EdgeMeta{})
	// Second edge pair traversing the same two nodes shouldn't add a second
	// reported cycle.
	g.AddEdge("a.py", "b.py", types.EdgeMeta{Line: 9})

	cycles := Detect(g)
	if len(cycles) != 1 {
		t.Fatalf("Detect() returned %d cycles, want 1: %v", len(cycles), cycles)
	}
}

func TestDetectNoCycles(t *testing.T) {
	g := graph.New()
	g.AddEdge("a.py", "b.py", types.EdgeMeta{})
	g.AddEdge("b.py", "c.py", types.EdgeMeta{})

	if cycles := Detect(g); len(cycles) != 0 {
		t.Fatalf("Detect() = %v, want none", cycles)
	}
}

func TestNodesInCycles(t *testing.T) {
	g := graph.New()
	g.AddEdge("a.py", "b.py", types.EdgeMeta{})
	g.AddEdge("b.py", "a.py", types.EdgeMeta{})
	g.AddNode("isolated.py")

	got := NodesInCycles(Detect(g))
	want := []string{"a.py", "b.py"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("NodesInCycles() = %v, want %v", got, want)
	}
}

func TestFormatCycleTruncates(t *testing.T) {
	cycle := []string{"a.py", "b.py", "c.py", "d.py", "a.py"}
	out := FormatCycle(cycle, nil, 2)
	want := "a.py -> b.py -> ..."
	if out != want {
		t.Fatalf("FormatCycle() = %q, want %q", out, want)
	}
}
