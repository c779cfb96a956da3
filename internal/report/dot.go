package report

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"

	"github.com/ingo/depviz/internal/cycle"
	"github.com/ingo/depviz/internal/graph"
)

var sanitizeRe = regexp.MustCompile(`[^A-Za-z0-9_]`)

func sanitizeID(path string) string {
	id := sanitizeRe.ReplaceAllString(path, "_")
	if len(id) > 50 {
		id = id[:50]
	}
	return id
}

// GraphvizOptions controls cycle/oversized highlighting for RenderDOT.
type GraphvizOptions struct {
	HighlightCycles   bool
	HighlightOversized bool
	OversizedLines    int
	RelativePath      func(string) string
}

// RenderDOT renders g as a Graphviz "dot" source document.
func RenderDOT(g *graph.Graph, cycles [][]string, opts GraphvizOptions) string {
	rel := opts.RelativePath
	if rel == nil {
		rel = func(s string) string { return s }
	}

	inCycle := make(map[string]bool)
	if opts.HighlightCycles {
		for _, n := range cycle.NodesInCycles(cycles) {
			inCycle[n] = true
		}
	}

	var b strings.Builder
	b.WriteString("digraph Dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, n := range g.Nodes() {
		id := sanitizeID(n)
		meta, _ := g.Metadata(n)
		label := escapeLabel(rel(n))
		if meta.LineCount > 0 {
			label += fmt.Sprintf("\\n(%d lines)", meta.LineCount)
		}
		attrs := fmt.Sprintf(`label="%s"`, label)

		oversized := opts.HighlightOversized && opts.OversizedLines > 0 && meta.LineCount > opts.OversizedLines

		switch {
		case inCycle[n]:
			attrs += `, color="red", fontcolor="red", penwidth=2`
		case oversized:
			attrs += `, color="orange", penwidth=2`
		}
		fmt.Fprintf(&b, "  %s [%s];\n", id, attrs)
	}

	b.WriteString("\n")
	for _, e := range g.Edges() {
		from, to := sanitizeID(e.From), sanitizeID(e.To)
		attrs := ""
		if opts.HighlightCycles && inCycle[e.From] && inCycle[e.To] {
			attrs = ` [color="red", penwidth=2]`
		}
		fmt.Fprintf(&b, "  %s -> %s%s;\n", from, to, attrs)
	}

	b.WriteString("}\n")
	return b.String()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// WriteGraphviz writes the DOT source to outputFile. When format is not
// "dot" it shells out to the `dot` binary to render outputFile into the
// requested image format; if `dot` is unavailable or fails, it degrades to
// a warning and leaves the .dot source in place.
func WriteGraphviz(dotSource, outputFile, format string) (string, error) {
	dotPath := outputFile
	if format != "dot" && !strings.HasSuffix(dotPath, ".dot") {
		dotPath = outputFile + ".dot"
	}

	if err := os.WriteFile(dotPath, []byte(dotSource), 0o644); err != nil {
		return "", fmt.Errorf("write dot file: %w", err)
	}

	if format == "" || format == "dot" {
		return dotPath, nil
	}

	if _, err := exec.LookPath("dot"); err != nil {
		return dotPath, fmt.Errorf("graphviz 'dot' binary not found, left %s in place: %w", dotPath, err)
	}

	cmd := exec.Command("dot", "-T"+format, dotPath, "-o", outputFile)
	if out, err := cmd.CombinedOutput(); err != nil {
		return dotPath, fmt.Errorf("dot -T%s failed: %w: %s", format, err, out)
	}

	return outputFile, nil
}

// cyclesSortedForDisplay returns cycles ordered by length then lexicographic
// content, used by terminal and JSON reporters for stable output.
func cyclesSortedForDisplay(cycles [][]string) [][]string {
	out := append([][]string(nil), cycles...)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return strings.Join(out[i], ",") < strings.Join(out[j], ",")
	})
	return out
}
