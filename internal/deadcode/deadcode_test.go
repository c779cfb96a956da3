package deadcode

import (
	"reflect"
	"testing"

	"github.com/ingo/depviz/internal/graph"
	"github.com/ingo/depviz/pkg/types"
)

func TestFindEntryPointsHeuristicName(t *testing.T) {
	g := graph.New()
	g.AddEdge("src/main.py", "src/util.py", types.EdgeMeta{})
	g.AddNode("src/other.py")

	got := FindEntryPoints(g)
	want := []string{"src/main.py"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindEntryPoints() = %v, want %v", got, want)
	}
}

func TestFindEntryPointsFallsBackToRoots(t *testing.T) {
	g := graph.New()
	g.AddEdge("a.py", "b.py", types.EdgeMeta{})

	got := FindEntryPoints(g)
	want := []string{"a.py"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindEntryPoints() = %v, want %v", got, want)
	}
}

func TestFindEntryPointsFallsBackToAllNodes(t *testing.T) {
	g := graph.New()
	g.AddEdge("a.py", "b.py", types.EdgeMeta{})
	g.AddEdge("b.py", "a.py", types.EdgeMeta{})

	got := FindEntryPoints(g)
	if len(got) != 2 {
		t.Fatalf("FindEntryPoints() = %v, want both nodes (fully cyclic, no roots)", got)
	}
}

func TestDetectReachabilityUndirected(t *testing.T) {
	g := graph.New()
	g.AddEdge("main.py", "used.py", types.EdgeMeta{})
	g.AddNode("orphan.py")
	g.UpdateMetadata("orphan.py", graph.NodeMeta{Exports: []string{"Foo"}})

	result := Detect(g, []string{"main.py"})

	if len(result.UnusedModules) != 1 || result.UnusedModules[0] != "orphan.py" {
		t.Fatalf("UnusedModules = %v, want [orphan.py]", result.UnusedModules)
	}
	if exports, ok := result.UnusedExports["orphan.py"]; !ok || exports[0] != "Foo" {
		t.Fatalf("UnusedExports[orphan.py] = %v", result.UnusedExports["orphan.py"])
	}
}

func TestDetectEntryPointExportsNotFlagged(t *testing.T) {
	g := graph.New()
	g.AddNode("main.py")
	g.UpdateMetadata("main.py", graph.NodeMeta{Exports: []string{"main"}})

	result := Detect(g, []string{"main.py"})
	if _, ok := result.UnusedExports["main.py"]; ok {
		t.Fatalf("entry point's exports should not be flagged as unused")
	}
}
