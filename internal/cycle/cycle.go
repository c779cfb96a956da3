// Package cycle detects import cycles in a dependency graph via
// depth-first search with a recursion stack.
package cycle

import (
	"sort"
	"strings"

	"github.com/ingo/depviz/internal/graph"
)

// Detect returns the cycles found by one depth-first pass over g,
// deduplicated by the set of nodes involved (two cycles that visit the same
// nodes in a different order, or via different edges, count as one). A node
// finished by an earlier branch is not entered again, so a cycle that closes
// only through such nodes is not reported. Each cycle is rotated to
// start at its lexicographically smallest node and ends by repeating that
// node, matching the convention that a cycle is a closed walk.
func Detect(g *graph.Graph) [][]string {
	d := &detector{
		graph:   g,
		visited: make(map[string]bool),
		onStack: make(map[string]bool),
		seen:    make(map[string]bool),
	}
	for _, n := range g.Nodes() {
		if !d.visited[n] {
			d.dfs(n, nil)
		}
	}
	return d.cycles
}

// DetectExact is like Detect but deduplicates by the exact node sequence of
// each rotated cycle, so two cycles found over the same node set that walk
// different edges are not collapsed into one.
func DetectExact(g *graph.Graph) [][]string {
	d := &detector{
		graph:   g,
		visited: make(map[string]bool),
		onStack: make(map[string]bool),
		seen:    make(map[string]bool),
		exact:   true,
	}
	for _, n := range g.Nodes() {
		if !d.visited[n] {
			d.dfs(n, nil)
		}
	}
	return d.cycles
}

type detector struct {
	graph   *graph.Graph
	visited map[string]bool
	onStack map[string]bool
	seen    map[string]bool
	cycles  [][]string
	exact   bool
}

func (d *detector) dfs(node string, path []string) {
	d.visited[node] = true
	d.onStack[node] = true
	path = append(path, node)

	for _, dep := range d.graph.Dependencies(node) {
		if d.onStack[dep] {
			start := indexOf(path, dep)
			cycle := append(append([]string(nil), path[start:]...), dep)
			cycle = rotateToMin(cycle)
			key := dedupKey(cycle, d.exact)
			if !d.seen[key] {
				d.seen[key] = true
				d.cycles = append(d.cycles, cycle)
			}
			continue
		}
		if !d.visited[dep] {
			d.dfs(dep, append([]string(nil), path...))
		}
	}

	d.onStack[node] = false
}

func indexOf(path []string, node string) int {
	for i, p := range path {
		if p == node {
			return i
		}
	}
	return 0
}

// rotateToMin rotates a cycle (excluding its repeated closing node) so it
// starts at the lexicographically smallest node.
func rotateToMin(cycle []string) []string {
	body := cycle[:len(cycle)-1]
	if len(body) == 0 {
		return cycle
	}
	minIdx := 0
	for i, n := range body {
		if n < body[minIdx] {
			minIdx = i
		}
	}
	rotated := append(append([]string(nil), body[minIdx:]...), body[:minIdx]...)
	return append(rotated, rotated[0])
}

func dedupKey(cycle []string, exact bool) string {
	body := cycle[:len(cycle)-1]
	if exact {
		return strings.Join(body, "\x00")
	}
	set := make(map[string]bool, len(body))
	for _, n := range body {
		set[n] = true
	}
	uniq := make([]string, 0, len(set))
	for n := range set {
		uniq = append(uniq, n)
	}
	sort.Strings(uniq)
	return strings.Join(uniq, "\x00")
}

// NodesInCycles returns the distinct set of nodes that participate in any
// cycle, sorted.
func NodesInCycles(cycles [][]string) []string {
	set := make(map[string]bool)
	for _, c := range cycles {
		for _, n := range c[:len(c)-1] {
			set[n] = true
		}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// FormatCycle renders a cycle as a " -> " joined chain using relativePath
// to shorten each node; long chains are truncated with a trailing ellipsis.
func FormatCycle(cycle []string, relativePath func(string) string, maxNodes int) string {
	display := cycle
	truncated := false
	if maxNodes > 0 && len(display) > maxNodes {
		display = display[:maxNodes]
		truncated = true
	}
	parts := make([]string, len(display))
	for i, n := range display {
		if relativePath != nil {
			parts[i] = relativePath(n)
		} else {
			parts[i] = n
		}
	}
	out := strings.Join(parts, " -> ")
	if truncated {
		out += " -> ..."
	}
	return out
}
