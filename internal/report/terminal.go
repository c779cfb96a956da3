package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/ingo/depviz/internal/cycle"
	"github.com/ingo/depviz/internal/graph"
	"github.com/ingo/depviz/pkg/types"
)

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SubStage prints a "[label] message" progress banner to w, used for both
// whole-numbered pipeline stages ("1/4") and fractional ones ("3.5/4").
func SubStage(w io.Writer, label, message string) {
	fmt.Fprintf(w, "[%s] %s\n", label, message)
}

// RenderDynamicImportWarning prints the stage-3.5 dynamic-import summary,
// capped at the first 5 offending files.
func RenderDynamicImportWarning(w io.Writer, sitesByFile map[string][]types.DynamicImportSite, relativePath func(string) string) {
	if len(sitesByFile) == 0 {
		return
	}
	enabled := colorEnabled(w)
	warn := "Warning:"
	if enabled {
		warn = color.YellowString("Warning:")
	}
	fmt.Fprintf(w, "%s Found dynamic imports in %d files\n", warn, len(sitesByFile))

	files := make([]string, 0, len(sitesByFile))
	for f := range sitesByFile {
		files = append(files, f)
	}
	sort.Strings(files)
	shown := 0
	for _, f := range files {
		if shown >= 5 {
			break
		}
		name := f
		if relativePath != nil {
			name = relativePath(f)
		}
		fmt.Fprintf(w, "  %s (%d occurrence(s))\n", name, len(sitesByFile[f]))
		shown++
	}
}

// RenderCycles prints the cycle-detection section, capped at 10 entries.
func RenderCycles(w io.Writer, cycles [][]string, relativePath func(string) string) {
	enabled := colorEnabled(w)
	if len(cycles) == 0 {
		ok := "No circular dependencies found."
		if enabled {
			ok = color.GreenString("✓ ") + ok
		} else {
			ok = "✓ " + ok
		}
		fmt.Fprintln(w, ok)
		return
	}

	sorted := cyclesSortedForDisplay(cycles)
	header := fmt.Sprintf("⚠️  Found %d circular dependencies:", len(sorted))
	if enabled {
		header = color.RedString(header)
	}
	fmt.Fprintln(w, header)

	limit := 10
	for i, c := range sorted {
		if i >= limit {
			fmt.Fprintf(w, "  ... and %s more cycles\n", humanize.Comma(int64(len(sorted)-limit)))
			break
		}
		fmt.Fprintf(w, "  %s\n", cycle.FormatCycle(c, relativePath, 0))
	}
}

// RenderDeadCode prints the reachability/dead-code section, capped at 10
// entries, sorted.
func RenderDeadCode(w io.Writer, result types.DeadCodeResult, relativePath func(string) string) {
	enabled := colorEnabled(w)
	if len(result.UnusedModules) == 0 {
		ok := "No unused modules found."
		if enabled {
			ok = color.GreenString("✓ ") + ok
		} else {
			ok = "✓ " + ok
		}
		fmt.Fprintln(w, ok)
		return
	}

	header := fmt.Sprintf("⚠️  UNUSED MODULES (%d):", len(result.UnusedModules))
	if enabled {
		header = color.RedString(header)
	}
	fmt.Fprintln(w, header)

	limit := 10
	for i, m := range result.UnusedModules {
		if i >= limit {
			fmt.Fprintf(w, "  ... and %s more\n", humanize.Comma(int64(len(result.UnusedModules)-limit)))
			break
		}
		name := m
		if relativePath != nil {
			name = relativePath(m)
		}
		fmt.Fprintf(w, "  - %s\n", name)
	}
}

// RenderOversized prints the oversized-modules section, capped at 10.
func RenderOversized(w io.Writer, all []types.ModuleMetrics, relativePath func(string) string) {
	if len(all) == 0 {
		return
	}
	fmt.Fprintf(w, "Oversized modules (%d):\n", len(all))
	limit := 10
	for i, m := range all {
		if i >= limit {
			fmt.Fprintf(w, "  ... and %s more\n", humanize.Comma(int64(len(all)-limit)))
			break
		}
		name := m.Path
		if relativePath != nil {
			name = relativePath(m.Path)
		}
		fmt.Fprintf(w, "  - %s (%s lines)\n", name, humanize.Comma(int64(m.LineCount)))
	}
}

// RenderSplitSuggestions prints the split-suggestion section, capped at 5
// files, gated by the caller on a flag.
func RenderSplitSuggestions(w io.Writer, suggestions map[string][]types.SplitSuggestion, relativePath func(string) string) {
	if len(suggestions) == 0 {
		return
	}
	bulb := "\U0001f4a1"
	fmt.Fprintf(w, "%s Split suggestions:\n", bulb)

	files := make([]string, 0, len(suggestions))
	for f := range suggestions {
		files = append(files, f)
	}
	sort.Strings(files)
	shown := 0
	for _, f := range files {
		if shown >= 5 {
			break
		}
		name := f
		if relativePath != nil {
			name = relativePath(f)
		}
		fmt.Fprintf(w, "  %s\n", name)
		for _, s := range suggestions[f] {
			fmt.Fprintf(w, "    [%s] %s - %s\n", s.Type, s.Recommendation, s.Reason)
		}
		shown++
	}
}

// RenderSummary prints the root/leaf/isolated module overview.
func RenderSummary(w io.Writer, g *graph.Graph, relativePath func(string) string) {
	fmt.Fprintf(w, "Total modules: %s\n", humanize.Comma(int64(g.NodeCount())))
	fmt.Fprintf(w, "Total dependencies: %s\n", humanize.Comma(int64(g.EdgeCount())))

	listSection(w, "Root modules", g.RootNodes(), relativePath)
	listSection(w, "Leaf modules", g.LeafNodes(), relativePath)
	if isolated := g.IsolatedNodes(); len(isolated) > 0 {
		listSection(w, "Isolated modules", isolated, relativePath)
	}
}

func listSection(w io.Writer, title string, nodes []string, relativePath func(string) string) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(nodes))
	limit := 5
	for i, n := range nodes {
		if i >= limit {
			fmt.Fprintf(w, "  ... and %d more\n", len(nodes)-limit)
			break
		}
		name := n
		if relativePath != nil {
			name = relativePath(n)
		}
		fmt.Fprintf(w, "  - %s\n", name)
	}
}
