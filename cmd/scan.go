package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ingo/depviz/internal/config"
	"github.com/ingo/depviz/internal/metrics"
	"github.com/ingo/depviz/internal/pipeline"
	"github.com/ingo/depviz/internal/report"
	"github.com/ingo/depviz/pkg/types"
)

const highlyCoupledThreshold = 10

var (
	excludeFlag            []string
	asciiFlag              bool
	graphvizFlag           string
	formatFlag             string
	summaryFlag            bool
	cyclesFlag             bool
	deadCodeFlag           bool
	oversizedFlag          int
	suggestSplitsFlag      bool
	dynamicImportsFlag     bool
	highlightCyclesFlag    bool
	highlightOversizedFlag bool
	maxDepthFlag           int
	configPathFlag         string
	jsonOutputFlag         bool
	outputHTMLFlag         string
	badgeFlag              bool
	repoURLFlag            string
)

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Scan a Python project and map its import dependencies",
	Long: `Scan a Python project directory, build its import dependency graph, and
report circular imports, dead code, oversized modules, and structural split
suggestions. The scan never executes or type-checks the analyzed source.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runScan,
}

func init() {
	scanCmd.Flags().StringSliceVar(&excludeFlag, "exclude", nil, "directories to exclude from analysis (default: __pycache__, .git, .venv, etc.)")
	scanCmd.Flags().BoolVar(&asciiFlag, "ascii", false, "print ASCII dependency map")
	scanCmd.Flags().StringVar(&graphvizFlag, "graphviz", "", "export dependency graph to Graphviz DOT format (or PNG/SVG/PDF if dot is installed)")
	scanCmd.Flags().StringVar(&formatFlag, "format", "dot", "Graphviz output format: dot, png, svg, pdf")
	scanCmd.Flags().BoolVar(&summaryFlag, "summary", false, "print summary statistics")
	scanCmd.Flags().BoolVar(&cyclesFlag, "cycles", false, "detect and report circular dependencies")
	scanCmd.Flags().BoolVar(&deadCodeFlag, "dead-code", false, "detect unused modules and dead code")
	scanCmd.Flags().IntVar(&oversizedFlag, "oversized", 500, "report modules exceeding this line count")
	scanCmd.Flags().BoolVar(&suggestSplitsFlag, "suggest-splits", false, "suggest module splits based on heuristics")
	scanCmd.Flags().BoolVar(&dynamicImportsFlag, "dynamic-imports", false, "warn about risky dynamic imports")
	scanCmd.Flags().BoolVar(&highlightCyclesFlag, "highlight-cycles", true, "highlight cycles in Graphviz output")
	scanCmd.Flags().BoolVar(&highlightOversizedFlag, "highlight-oversized", true, "highlight oversized modules in Graphviz output")
	scanCmd.Flags().IntVar(&maxDepthFlag, "max-depth", 3, "maximum depth for ASCII map")
	scanCmd.Flags().StringVar(&configPathFlag, "config", "", "path to .depvizrc.yaml project config file")
	scanCmd.Flags().BoolVar(&jsonOutputFlag, "json", false, "output results as JSON instead of the text report")
	scanCmd.Flags().StringVar(&outputHTMLFlag, "output-html", "", "generate a self-contained HTML report at the given path")
	scanCmd.Flags().BoolVar(&badgeFlag, "badge", false, "print a shields.io badge markdown snippet")
	scanCmd.Flags().StringVar(&repoURLFlag, "repo-url", "", "repository URL the badge markdown should link to")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	dir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("cannot resolve path: %w", err)
	}
	if err := validateProject(dir); err != nil {
		return err
	}

	projectCfg, err := config.LoadProjectConfig(dir, configPathFlag)
	if err != nil {
		return fmt.Errorf("load project config: %w", err)
	}

	exclude := excludeFlag
	oversized := oversizedFlag
	maxDepth := maxDepthFlag
	minSplitLines, minSplitFuncs := 0, 0
	if projectCfg != nil {
		minSplitLines = projectCfg.MinSplitLines
		minSplitFuncs = projectCfg.MinSplitFuncs
		if len(exclude) == 0 && len(projectCfg.Exclude) > 0 {
			exclude = projectCfg.Exclude
		}
		if !cmd.Flags().Changed("oversized") && projectCfg.OversizedLines > 0 {
			oversized = projectCfg.OversizedLines
		}
		if !cmd.Flags().Changed("max-depth") && projectCfg.MaxDepth > 0 {
			maxDepth = projectCfg.MaxDepth
		}
	}

	out := cmd.OutOrStdout()
	spinner := pipeline.NewSpinner(os.Stderr)
	onProgress := func(stage, detail string) {
		if spinner.IsInteractive() {
			spinner.Update(fmt.Sprintf("[%s] %s", stage, detail))
			return
		}
		report.SubStage(os.Stderr, stage, detail)
	}

	fmt.Fprintf(out, "Analyzing project: %s\n", dir)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	spinner.Start("Scanning...")
	result, err := pipeline.Run(cmd.Context(), dir, pipeline.Options{
		Exclude:           exclude,
		DetectDynamic:     dynamicImportsFlag,
		SuggestSplits:     suggestSplitsFlag,
		OversizedLines:    oversized,
		MinSplitLines:     minSplitLines,
		MinSplitFunctions: minSplitFuncs,
	}, onProgress)
	if err != nil {
		spinner.Stop("")
		return err
	}
	spinner.Stop("Done.")

	relPath := relativePathFunc(dir)
	allMetrics := metricsSlice(result.Metrics)
	coupled := metrics.HighlyCoupled(result.Metrics, highlyCoupledThreshold)

	if jsonOutputFlag {
		jsonReport := report.BuildJSONReport(result.Graph, result.Cycles, result.DeadCode, result.Oversized, coupled, report.BuildJSONReportOptions{
			Splits:  result.Splits,
			Dynamic: result.Dynamic,
		})
		return report.RenderJSON(out, jsonReport)
	}

	if dynamicImportsFlag {
		report.RenderDynamicImportWarning(out, result.Dynamic, relPath)
	}

	if cyclesFlag {
		report.RenderCycles(out, result.Cycles, relPath)
	}

	if deadCodeFlag {
		report.RenderDeadCode(out, result.DeadCode, relPath)
	}

	report.RenderOversized(out, result.Oversized, relPath)

	if suggestSplitsFlag {
		report.RenderSplitSuggestions(out, result.Splits, relPath)
	}

	if asciiFlag {
		fmt.Fprintln(out, strings.Repeat("=", 60))
		fmt.Fprintln(out, "ASCII DEPENDENCY MAP")
		fmt.Fprintln(out, strings.Repeat("=", 60))
		fmt.Fprintln(out, report.RenderASCII(result.Graph, maxDepth, 80, relPath))
	}

	if graphvizFlag != "" {
		dot := report.RenderDOT(result.Graph, result.Cycles, report.GraphvizOptions{
			HighlightCycles:    highlightCyclesFlag,
			HighlightOversized: highlightOversizedFlag,
			OversizedLines:     oversized,
			RelativePath:       relPath,
		})
		written, err := report.WriteGraphviz(dot, graphvizFlag, formatFlag)
		if err != nil {
			fmt.Fprintf(out, "  warning: %v\n", err)
		} else {
			fmt.Fprintf(out, "  graph exported to: %s\n", written)
		}
	}

	if outputHTMLFlag != "" {
		f, err := os.Create(outputHTMLFlag)
		if err != nil {
			return fmt.Errorf("create html output: %w", err)
		}
		defer f.Close()
		if err := report.RenderHTML(f, result.Graph, result.Cycles, result.Oversized, allMetrics, repoURLFlag, relPath); err != nil {
			return fmt.Errorf("render html report: %w", err)
		}
		fmt.Fprintf(out, "\nHTML report generated: %s\n", outputHTMLFlag)
	}

	if badgeFlag {
		badge := report.GenerateBadge(repoURLFlag, len(result.Cycles), len(result.Oversized))
		fmt.Fprintln(out, badge.Markdown)
	}

	if summaryFlag {
		fmt.Fprintln(out, strings.Repeat("=", 60))
		report.RenderSummary(out, result.Graph, relPath)
	}

	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "Analysis complete!")
	fmt.Fprintln(out, strings.Repeat("=", 60))

	return nil
}

func metricsSlice(all map[string]types.ModuleMetrics) []types.ModuleMetrics {
	slice := make([]types.ModuleMetrics, 0, len(all))
	for _, m := range all {
		slice = append(slice, m)
	}
	sort.Slice(slice, func(i, j int) bool { return slice[i].Path < slice[j].Path })
	return slice
}

func relativePathFunc(root string) func(string) string {
	return func(p string) string {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return p
		}
		return rel
	}
}

// validateProject checks that dir exists, is a directory, and contains a
// recognized Python project indicator.
func validateProject(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory not found: %s", dir)
	}
	if err != nil {
		return fmt.Errorf("cannot access directory: %s", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	indicators := []string{"pyproject.toml", "setup.py", "setup.cfg", "requirements.txt"}
	for _, f := range indicators {
		if _, err := os.Stat(filepath.Join(dir, f)); err == nil {
			return nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cannot read directory: %s", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".py" {
			return nil
		}
	}

	return fmt.Errorf("no Python project found in: %s\nExpected pyproject.toml, setup.py, requirements.txt, or at least one .py file", dir)
}
