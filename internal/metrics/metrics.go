// Package metrics computes per-module size, coupling, and complexity
// scores from a built dependency graph.
package metrics

import (
	"sort"

	"github.com/ingo/depviz/internal/graph"
	"github.com/ingo/depviz/pkg/types"
)

// Analyze computes ModuleMetrics for every node in g.
func Analyze(g *graph.Graph) map[string]types.ModuleMetrics {
	out := make(map[string]types.ModuleMetrics, g.NodeCount())
	for _, n := range g.Nodes() {
		meta, _ := g.Metadata(n)
		fanIn := g.FanIn(n)
		fanOut := g.FanOut(n)
		out[n] = types.ModuleMetrics{
			Path:       n,
			LineCount:  meta.LineCount,
			Exports:    meta.ExportCount,
			FanIn:      fanIn,
			FanOut:     fanOut,
			Complexity: complexity(meta.LineCount, fanIn, fanOut),
		}
	}
	return out
}

// complexity implements the fixed 60/40 blend of normalized size and
// normalized coupling, each capped at 1.0 before weighting.
func complexity(lines, fanIn, fanOut int) float64 {
	sizeScore := min1(float64(lines) / 1000.0)
	couplingScore := min1(float64(fanIn+fanOut) / 20.0)
	return (sizeScore*0.6 + couplingScore*0.4) * 100
}

func min1(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}

// Oversized returns modules whose line count exceeds threshold, sorted by
// line count descending, ties broken by path ascending for determinism.
func Oversized(all map[string]types.ModuleMetrics, threshold int) []types.ModuleMetrics {
	var out []types.ModuleMetrics
	for _, m := range all {
		if m.LineCount > threshold {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LineCount != out[j].LineCount {
			return out[i].LineCount > out[j].LineCount
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// HighlyCoupled returns modules whose combined fan-in+fan-out exceeds
// threshold, sorted by that sum descending, ties broken by path ascending.
func HighlyCoupled(all map[string]types.ModuleMetrics, threshold int) []types.ModuleMetrics {
	var out []types.ModuleMetrics
	for _, m := range all {
		if m.FanIn+m.FanOut > threshold {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].FanIn+out[i].FanOut, out[j].FanIn+out[j].FanOut
		if si != sj {
			return si > sj
		}
		return out[i].Path < out[j].Path
	})
	return out
}
