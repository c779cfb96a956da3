package report

import (
	"strings"
	"testing"

	"github.com/ingo/depviz/internal/graph"
	"github.com/ingo/depviz/pkg/types"
)

func TestSanitizeIDReplacesSpecialChars(t *testing.T) {
	got := sanitizeID("src/pkg-v2/mod.py")
	if strings.ContainsAny(got, "/-.") {
		t.Fatalf("sanitizeID() = %q, contains unsanitized characters", got)
	}
}

func TestSanitizeIDTruncatesTo50(t *testing.T) {
	got := sanitizeID(strings.Repeat("a", 100))
	if len(got) != 50 {
		t.Fatalf("sanitizeID() len = %d, want 50", len(got))
	}
}

func TestRenderDOTHighlightsCycle(t *testing.T) {
	g := graph.New()
	g.AddEdge("a.py", "b.py", types.EdgeMeta{})
	g.AddEdge("b.py", "a.py", types.EdgeMeta{})

	cycles := [][]string{{"a.py", "b.py", "a.py"}}
	out := RenderDOT(g, cycles, GraphvizOptions{HighlightCycles: true})

	if !strings.Contains(out, "digraph Dependencies") {
		t.Fatalf("RenderDOT() missing header:\n%s", out)
	}
	if !strings.Contains(out, `color="red"`) {
		t.Fatalf("RenderDOT() missing cycle highlighting:\n%s", out)
	}
}

func TestRenderDOTHighlightsOversized(t *testing.T) {
	g := graph.New()
	g.AddNode("big.py")
	g.UpdateMetadata("big.py", graph.NodeMeta{LineCount: 900})

	out := RenderDOT(g, nil, GraphvizOptions{HighlightOversized: true, OversizedLines: 500})
	if !strings.Contains(out, `color="orange"`) {
		t.Fatalf("RenderDOT() missing oversized highlighting:\n%s", out)
	}
}
