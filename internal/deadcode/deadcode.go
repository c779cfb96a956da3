// Package deadcode finds modules and exports unreachable from a project's
// entry points.
package deadcode

import (
	"sort"
	"strings"

	"github.com/ingo/depviz/internal/graph"
	"github.com/ingo/depviz/pkg/types"
)

var entryPointNames = map[string]bool{
	"__main__.py": true,
	"main.py":     true,
	"app.py":      true,
	"run.py":      true,
	"cli.py":      true,
}

var entryPointSubstrings = []string{"main", "entry", "start"}

// FindEntryPoints picks the nodes reachability is measured from. It tries,
// in order: files whose basename matches a conventional entry-point name
// (exact or substring match), falling back to the graph's root nodes, and
// finally to every node when the graph has no roots (a fully cyclic graph
// has no safe default otherwise).
func FindEntryPoints(g *graph.Graph) []string {
	var heuristic []string
	for _, n := range g.Nodes() {
		base := strings.ToLower(basename(n))
		if entryPointNames[base] {
			heuristic = append(heuristic, n)
			continue
		}
		for _, sub := range entryPointSubstrings {
			if strings.Contains(base, sub) {
				heuristic = append(heuristic, n)
				break
			}
		}
	}
	if len(heuristic) > 0 {
		return heuristic
	}

	if roots := g.RootNodes(); len(roots) > 0 {
		return roots
	}

	return g.Nodes()
}

func basename(path string) string {
	idx := strings.LastIndexAny(path, `/\`)
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// Detect computes reachability from entryPoints over the undirected
// projection of g (both dependencies and dependents are followed), and
// flags every node not reached as an unused module. A node with exports
// that has no dependents and is not itself an entry point has its entire
// export set flagged as unused; this is a coarse heuristic, not per-symbol
// usage tracking.
func Detect(g *graph.Graph, entryPoints []string) types.DeadCodeResult {
	reachable := make(map[string]bool)
	stack := append([]string(nil), entryPoints...)
	for _, ep := range entryPoints {
		reachable[ep] = true
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, dep := range g.Dependencies(node) {
			if !reachable[dep] {
				reachable[dep] = true
				stack = append(stack, dep)
			}
		}
		for _, dep := range g.Dependents(node) {
			if !reachable[dep] {
				reachable[dep] = true
				stack = append(stack, dep)
			}
		}
	}

	entrySet := make(map[string]bool, len(entryPoints))
	for _, ep := range entryPoints {
		entrySet[ep] = true
	}

	result := types.DeadCodeResult{
		UnusedExports: make(map[string][]string),
	}

	for _, n := range g.Nodes() {
		if !reachable[n] {
			result.UnusedModules = append(result.UnusedModules, n)
		}

		meta, ok := g.Metadata(n)
		if !ok || len(meta.Exports) == 0 {
			continue
		}
		if g.FanIn(n) == 0 && !entrySet[n] {
			result.UnusedExports[n] = append([]string(nil), meta.Exports...)
		}
	}

	sort.Strings(result.UnusedModules)
	return result
}
