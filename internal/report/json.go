package report

import (
	"encoding/json"
	"io"

	"github.com/ingo/depviz/internal/graph"
	"github.com/ingo/depviz/pkg/types"
)

// JSONReport is the machine-readable shape of a full analysis run.
type JSONReport struct {
	Summary   JSONSummary              `json:"summary"`
	Cycles    []JSONCycle               `json:"cycles"`
	DeadCode  JSONDeadCode              `json:"dead_code"`
	Oversized []types.ModuleMetrics     `json:"oversized_modules"`
	Coupled   []types.ModuleMetrics     `json:"highly_coupled_modules"`
	Splits    map[string][]types.SplitSuggestion `json:"split_suggestions,omitempty"`
	Dynamic   map[string][]types.DynamicImportSite `json:"dynamic_import_sites,omitempty"`
}

// JSONSummary is the graph-shape overview.
type JSONSummary struct {
	TotalModules     int      `json:"total_modules"`
	TotalDependencies int     `json:"total_dependencies"`
	RootModules      []string `json:"root_modules"`
	LeafModules      []string `json:"leaf_modules"`
	IsolatedModules  []string `json:"isolated_modules"`
}

// JSONCycle is one reported import cycle.
type JSONCycle struct {
	Nodes []string `json:"nodes"`
}

// JSONDeadCode mirrors types.DeadCodeResult for JSON output.
type JSONDeadCode struct {
	UnusedModules []string            `json:"unused_modules"`
	UnusedExports map[string][]string `json:"unused_exports,omitempty"`
}

// BuildJSONReportOptions bundles the optional sections that depend on which
// CLI flags were set.
type BuildJSONReportOptions struct {
	Splits  map[string][]types.SplitSuggestion
	Dynamic map[string][]types.DynamicImportSite
}

// BuildJSONReport assembles a JSONReport from the pipeline's analysis
// outputs.
func BuildJSONReport(g *graph.Graph, cycles [][]string, dead types.DeadCodeResult, oversized, coupled []types.ModuleMetrics, opts BuildJSONReportOptions) JSONReport {
	jsonCycles := make([]JSONCycle, 0, len(cycles))
	for _, c := range cyclesSortedForDisplay(cycles) {
		jsonCycles = append(jsonCycles, JSONCycle{Nodes: c})
	}

	return JSONReport{
		Summary: JSONSummary{
			TotalModules:      g.NodeCount(),
			TotalDependencies: g.EdgeCount(),
			RootModules:       g.RootNodes(),
			LeafModules:       g.LeafNodes(),
			IsolatedModules:   g.IsolatedNodes(),
		},
		Cycles: jsonCycles,
		DeadCode: JSONDeadCode{
			UnusedModules: dead.UnusedModules,
			UnusedExports: dead.UnusedExports,
		},
		Oversized: oversized,
		Coupled:   coupled,
		Splits:    opts.Splits,
		Dynamic:   opts.Dynamic,
	}
}

// RenderJSON writes an indented JSON encoding of report to w.
func RenderJSON(w io.Writer, report JSONReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
