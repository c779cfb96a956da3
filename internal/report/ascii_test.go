package report

import (
	"strings"
	"testing"

	"github.com/ingo/depviz/internal/graph"
	"github.com/ingo/depviz/pkg/types"
)

func TestRenderASCIIBasicTree(t *testing.T) {
	g := graph.New()
	g.AddEdge("main.py", "util.py", types.EdgeMeta{})

	out := RenderASCII(g, 3, 80, nil)
	if !strings.Contains(out, "main.py") || !strings.Contains(out, "util.py") {
		t.Fatalf("RenderASCII() missing nodes:\n%s", out)
	}
}

func TestRenderASCIIIsolatedTrailer(t *testing.T) {
	g := graph.New()
	g.AddEdge("main.py", "util.py", types.EdgeMeta{})
	g.AddNode("orphan.py")

	out := RenderASCII(g, 3, 80, nil)
	if !strings.Contains(out, "Isolated modules") || !strings.Contains(out, "orphan.py") {
		t.Fatalf("RenderASCII() missing isolated trailer:\n%s", out)
	}
}

func TestRenderASCIIEachNodeOnce(t *testing.T) {
	g := graph.New()
	g.AddEdge("a.py", "shared.py", types.EdgeMeta{})
	g.AddEdge("b.py", "shared.py", types.EdgeMeta{})

	out := RenderASCII(g, 3, 80, nil)
	if strings.Count(out, "shared.py") != 1 {
		t.Fatalf("RenderASCII() printed shared.py more than once:\n%s", out)
	}
}

func TestClipTruncatesLongPaths(t *testing.T) {
	got := clip("a/very/long/path/to/some/module.py", 10)
	if len(got) != 10 {
		t.Fatalf("clip() len = %d, want 10 (%q)", len(got), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("clip() = %q, want ellipsis suffix", got)
	}
}
