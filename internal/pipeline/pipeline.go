// Package pipeline orchestrates the dependency-graph analysis stages in
// the fixed order: discover files, parse, resolve imports, build the
// graph, optionally flag dynamic imports, then run every analysis pass.
package pipeline

import (
	"context"
	"fmt"

	"github.com/ingo/depviz/internal/cycle"
	"github.com/ingo/depviz/internal/deadcode"
	"github.com/ingo/depviz/internal/discovery"
	"github.com/ingo/depviz/internal/dynimport"
	"github.com/ingo/depviz/internal/graph"
	"github.com/ingo/depviz/internal/metrics"
	"github.com/ingo/depviz/internal/modulemap"
	"github.com/ingo/depviz/internal/parser"
	"github.com/ingo/depviz/internal/resolver"
	"github.com/ingo/depviz/internal/splitsuggest"
	"github.com/ingo/depviz/pkg/types"
)

// ProgressFunc is a callback for pipeline stage progress updates.
type ProgressFunc func(stage string, detail string)

// Options configures which analyses Run performs and their thresholds.
type Options struct {
	Exclude           []string
	DetectDynamic     bool
	SuggestSplits     bool
	OversizedLines    int
	MinSplitLines     int
	MinSplitFunctions int
}

// Result bundles every analysis pass's output for the reporters to render.
type Result struct {
	Scan      *types.ScanResult
	Graph     *graph.Graph
	Cycles    [][]string
	DeadCode  types.DeadCodeResult
	Metrics   map[string]types.ModuleMetrics
	Oversized []types.ModuleMetrics
	Splits    map[string][]types.SplitSuggestion
	Dynamic   map[string][]types.DynamicImportSite
}

// Run executes the full pipeline against dir, reporting stage progress via
// onProgress (pass nil to discard).
func Run(ctx context.Context, dir string, opts Options, onProgress ProgressFunc) (*Result, error) {
	report := func(stage, detail string) {
		if onProgress != nil {
			onProgress(stage, detail)
		}
	}

	report("1/4", "Parsing Python files...")
	walker := discovery.NewWalkerWithExcludes(opts.Exclude)
	scan, err := walker.Discover(dir)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	sp, err := parser.NewSourceParser()
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}
	defer sp.Close()

	parsed, err := sp.ParseDirectory(ctx, scan)
	if err != nil {
		return nil, fmt.Errorf("parse directory: %w", err)
	}
	defer parser.CloseResults(parsed)

	report("2/4", "Resolving imports...")
	mm := modulemap.Build(scan.Files)
	res := resolver.New(dir, mm)

	report("3/4", "Building dependency graph...")
	g := graph.BuildFromParse(parsed, res)

	var dynamicSites map[string][]types.DynamicImportSite
	if opts.DetectDynamic {
		report("3.5/4", "Detecting dynamic imports...")
		dynamicSites = make(map[string][]types.DynamicImportSite)
		for _, f := range parsed {
			if f.Tree == nil {
				continue
			}
			if sites := dynimport.Detect(f.Tree.RootNode(), f.Content); len(sites) > 0 {
				dynamicSites[f.Path] = sites
			}
		}
	}

	report("4/4", "Running analysis...")
	cycles := cycle.Detect(g)
	entryPoints := deadcode.FindEntryPoints(g)
	dead := deadcode.Detect(g, entryPoints)
	allMetrics := metrics.Analyze(g)
	oversizedLines := opts.OversizedLines
	if oversizedLines <= 0 {
		oversizedLines = 500
	}
	oversized := metrics.Oversized(allMetrics, oversizedLines)

	var splits map[string][]types.SplitSuggestion
	if opts.SuggestSplits {
		splits = make(map[string][]types.SplitSuggestion)
		for _, f := range parsed {
			if s := splitsuggest.Suggest(f, opts.MinSplitLines, opts.MinSplitFunctions); len(s) > 0 {
				splits[f.Path] = s
			}
		}
	}

	return &Result{
		Scan:      scan,
		Graph:     g,
		Cycles:    cycles,
		DeadCode:  dead,
		Metrics:   allMetrics,
		Oversized: oversized,
		Splits:    splits,
		Dynamic:   dynamicSites,
	}, nil
}
