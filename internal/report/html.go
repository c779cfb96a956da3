package report

import (
	"fmt"
	"html"
	"io"
	"log/slog"

	"github.com/ingo/depviz/internal/graph"
	"github.com/ingo/depviz/pkg/types"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Dependency Report</title>
<style>
body { font-family: -apple-system, sans-serif; margin: 2rem; color: #222; }
h1, h2 { border-bottom: 1px solid #ddd; padding-bottom: 0.3rem; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
.badge { margin: 0.5rem 0; }
.charts { display: flex; flex-wrap: wrap; gap: 1rem; }
.stat { display: inline-block; margin-right: 2rem; font-size: 1.1rem; }
</style>
</head>
<body>
<h1>Dependency Report</h1>
<p class="badge"><img src="%s" alt="depviz badge"></p>
<p>
<span class="stat"><b>%d</b> modules</span>
<span class="stat"><b>%d</b> dependencies</span>
<span class="stat"><b>%d</b> cycles</span>
<span class="stat"><b>%d</b> oversized modules</span>
</p>
<h2>Dependency map</h2>
<pre>%s</pre>
<h2>Charts</h2>
<div class="charts">%s%s</div>
</body>
</html>
`

// RenderHTML writes a self-contained HTML report combining the ASCII
// dependency map with two SVG bar charts and a status badge. Chart
// generation failures are logged and degrade to an empty section rather
// than failing the whole report.
func RenderHTML(w io.Writer, g *graph.Graph, cycles [][]string, oversized []types.ModuleMetrics, allMetrics []types.ModuleMetrics, repoURL string, relativePath func(string) string) error {
	asciiMap := RenderASCII(g, 3, 80, relativePath)

	badge := GenerateBadge(repoURL, len(cycles), len(oversized))

	oversizedSVG, err := generateOversizedChart(oversized)
	if err != nil {
		slog.Warn("oversized chart generation failed", "error", err)
	}
	fanOutSVG, err := generateFanOutChart(allMetrics)
	if err != nil {
		slog.Warn("fan-out chart generation failed", "error", err)
	}

	_, err = fmt.Fprintf(w, htmlTemplate,
		html.EscapeString(badge.URL),
		g.NodeCount(),
		g.EdgeCount(),
		len(cycles),
		len(oversized),
		html.EscapeString(asciiMap),
		wrapChart(oversizedSVG),
		wrapChart(fanOutSVG),
	)
	return err
}

func wrapChart(svg string) string {
	if svg == "" {
		return ""
	}
	return "<div>" + svg + "</div>"
}
