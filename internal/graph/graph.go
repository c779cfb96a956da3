// Package graph builds and queries the directed dependency multigraph:
// one node per project file, one edge per resolved import reference (a
// single `from M import a, b` statement can yield several; parallel edges
// are kept, not collapsed).
package graph

import (
	"sort"

	"github.com/ingo/depviz/internal/parser"
	"github.com/ingo/depviz/internal/resolver"
	"github.com/ingo/depviz/pkg/types"
)

// Edge is a single import-derived dependency from one file to another.
type Edge struct {
	From string
	To   string
	Meta types.EdgeMeta
}

// NodeMeta carries per-file data the rest of the pipeline reads without
// re-parsing the file.
type NodeMeta struct {
	LineCount   int
	Exports     []string
	ExportCount int
}

// Graph is a directed multigraph over project file paths. Edges are kept
// as an ordered list (one per resolved import reference); outgoing/incoming are
// non-owning adjacency indexes deduplicated by destination, so fan-out
// and fan-in are simply the size of those maps.
type Graph struct {
	nodes    map[string]bool
	edges    []Edge
	outgoing map[string]map[string]int
	incoming map[string]map[string]int
	meta     map[string]NodeMeta
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]bool),
		outgoing: make(map[string]map[string]int),
		incoming: make(map[string]map[string]int),
		meta:     make(map[string]NodeMeta),
	}
}

// AddNode registers path as a node, if not already present.
func (g *Graph) AddNode(path string) {
	g.nodes[path] = true
}

// AddEdge appends a dependency edge from -> to, registering both endpoints
// as nodes. Parallel edges between the same pair are preserved.
func (g *Graph) AddEdge(from, to string, meta types.EdgeMeta) {
	g.AddNode(from)
	g.AddNode(to)
	g.edges = append(g.edges, Edge{From: from, To: to, Meta: meta})

	if g.outgoing[from] == nil {
		g.outgoing[from] = make(map[string]int)
	}
	g.outgoing[from][to]++

	if g.incoming[to] == nil {
		g.incoming[to] = make(map[string]int)
	}
	g.incoming[to][from]++
}

// UpdateMetadata sets the NodeMeta for path.
func (g *Graph) UpdateMetadata(path string, meta NodeMeta) {
	g.meta[path] = meta
}

// Metadata returns the NodeMeta recorded for path, if any.
func (g *Graph) Metadata(path string) (NodeMeta, bool) {
	m, ok := g.meta[path]
	return m, ok
}

// Dependencies returns the distinct nodes path imports from.
func (g *Graph) Dependencies(path string) []string {
	return sortedKeys(g.outgoing[path])
}

// Dependents returns the distinct nodes that import path.
func (g *Graph) Dependents(path string) []string {
	return sortedKeys(g.incoming[path])
}

// FanOut is the number of distinct modules path depends on.
func (g *Graph) FanOut(path string) int {
	return len(g.outgoing[path])
}

// FanIn is the number of distinct modules that depend on path.
func (g *Graph) FanIn(path string) int {
	return len(g.incoming[path])
}

// Nodes returns every node path, sorted.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Edges returns every edge, including parallel edges, in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges, counting parallel edges separately.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// IsolatedNodes returns nodes with no incoming and no outgoing edges.
func (g *Graph) IsolatedNodes() []string {
	var out []string
	for _, n := range g.Nodes() {
		if len(g.outgoing[n]) == 0 && len(g.incoming[n]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// LeafNodes returns nodes with no outgoing edges.
func (g *Graph) LeafNodes() []string {
	var out []string
	for _, n := range g.Nodes() {
		if len(g.outgoing[n]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// RootNodes returns nodes with no incoming edges.
func (g *Graph) RootNodes() []string {
	var out []string
	for _, n := range g.Nodes() {
		if len(g.incoming[n]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// BuildFromParse builds a Graph from parsed files: one node per file, one
// edge per import that resolves to a project file and is not external. An
// import that resolves but also matches a standard-library name (possible
// for prefix-shortened matches against an unlucky project layout) is still
// skipped, mirroring the original tool's resolved-and-not-external check.
func BuildFromParse(results []*parser.FileResult, res *resolver.Resolver) *Graph {
	g := New()

	for _, f := range results {
		g.AddNode(f.Path)
		g.UpdateMetadata(f.Path, NodeMeta{
			LineCount:   f.LineCount,
			Exports:     append([]string(nil), f.Exports...),
			ExportCount: len(f.Exports),
		})
	}

	for _, f := range results {
		for _, imp := range f.Imports {
			resolved, ok := res.Resolve(imp.Symbol, f.Path)
			if !ok || resolver.IsExternal(imp.Symbol) {
				continue
			}
			g.AddEdge(f.Path, resolved, types.EdgeMeta{
				Line:   imp.Line,
				Kind:   imp.Kind,
				Symbol: imp.Symbol,
			})
		}
	}

	return g
}
