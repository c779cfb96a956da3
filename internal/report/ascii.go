// Package report renders analysis results for humans, machines, and
// image viewers: an ASCII dependency tree, Graphviz/image export, a
// terminal progress/summary surface, JSON, and a self-contained HTML page.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ingo/depviz/internal/graph"
)

// RenderASCII draws a depth-bounded dependency tree starting from the
// graph's root nodes (falling back to the node with the fewest
// dependencies when there are no roots), followed by a trailer listing
// isolated modules. relativePath shortens node paths for display; pass nil
// to print them verbatim.
func RenderASCII(g *graph.Graph, maxDepth, maxWidth int, relativePath func(string) string) string {
	if relativePath == nil {
		relativePath = func(s string) string { return s }
	}

	var b strings.Builder
	b.WriteString("Dependency Map\n")
	b.WriteString("==============\n\n")

	roots := g.RootNodes()
	if len(roots) == 0 {
		if start := fewestDependencies(g); start != "" {
			roots = []string{start}
		}
	}
	sort.Strings(roots)

	isolatedSet := make(map[string]bool)
	for _, n := range g.IsolatedNodes() {
		isolatedSet[n] = true
	}

	visited := make(map[string]bool)
	for _, root := range roots {
		if isolatedSet[root] {
			continue
		}
		renderNode(&b, g, root, visited, 0, maxDepth, maxWidth, relativePath)
	}

	var isolated []string
	for _, n := range g.IsolatedNodes() {
		if !visited[n] {
			isolated = append(isolated, n)
		}
	}
	if len(isolated) > 0 {
		b.WriteString("\nIsolated modules (no dependencies, no dependents):\n")
		for _, n := range isolated {
			fmt.Fprintf(&b, "  - %s\n", clip(relativePath(n), maxWidth))
		}
	}

	return b.String()
}

func renderNode(b *strings.Builder, g *graph.Graph, node string, visited map[string]bool, depth, maxDepth, maxWidth int, relativePath func(string) string) {
	if visited[node] {
		return
	}
	visited[node] = true

	indent := strings.Repeat("  ", depth)
	connector := "└─ "
	if depth == 0 {
		connector = ""
	}
	fmt.Fprintf(b, "%s%s%s\n", indent, connector, clip(relativePath(node), maxWidth))

	if depth >= maxDepth {
		return
	}

	deps := g.Dependencies(node)
	sort.Strings(deps)
	for _, dep := range deps {
		renderNode(b, g, dep, visited, depth+1, maxDepth, maxWidth, relativePath)
	}
}

func fewestDependencies(g *graph.Graph) string {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return ""
	}
	best := nodes[0]
	bestCount := g.FanOut(best)
	for _, n := range nodes[1:] {
		if c := g.FanOut(n); c < bestCount {
			best, bestCount = n, c
		}
	}
	return best
}

func clip(s string, maxWidth int) string {
	if maxWidth <= 0 || len(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return s[:maxWidth]
	}
	return s[:maxWidth-3] + "..."
}
