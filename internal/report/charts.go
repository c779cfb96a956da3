package report

import (
	"sort"

	charts "github.com/vicanso/go-charts/v2"

	"github.com/ingo/depviz/pkg/types"
)

const (
	barChartWidth   = 600
	barChartHeight  = 360
	barChartPadTop  = 40
	barChartPadSide = 20
	barChartPadLeft = 50
	topNOversized   = 10
)

// generateOversizedChart renders a bar chart of the top oversized modules
// by line count. Returns an empty string if there is nothing to chart.
func generateOversizedChart(oversized []types.ModuleMetrics) (string, error) {
	if len(oversized) == 0 {
		return "", nil
	}
	top := oversized
	if len(top) > topNOversized {
		top = top[:topNOversized]
	}

	names := make([]string, len(top))
	values := make([]float64, len(top))
	for i, m := range top {
		names[i] = shortLabel(m.Path)
		values[i] = float64(m.LineCount)
	}

	p, err := charts.BarRender(
		[][]float64{values},
		charts.SVGTypeOption(),
		charts.TitleTextOptionFunc("Largest modules by line count"),
		charts.XAxisDataOptionFunc(names),
		charts.ThemeOptionFunc("light"),
		charts.WidthOptionFunc(barChartWidth),
		charts.HeightOptionFunc(barChartHeight),
		charts.PaddingOptionFunc(charts.Box{Top: barChartPadTop, Right: barChartPadSide, Bottom: barChartPadSide, Left: barChartPadLeft}),
	)
	if err != nil {
		return "", err
	}
	buf, err := p.Bytes()
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// generateFanOutChart renders a bar chart of fan-out distribution across
// all modules with at least one dependency, sorted descending.
func generateFanOutChart(all []types.ModuleMetrics) (string, error) {
	var withDeps []types.ModuleMetrics
	for _, m := range all {
		if m.FanOut > 0 {
			withDeps = append(withDeps, m)
		}
	}
	if len(withDeps) == 0 {
		return "", nil
	}
	sort.Slice(withDeps, func(i, j int) bool {
		if withDeps[i].FanOut != withDeps[j].FanOut {
			return withDeps[i].FanOut > withDeps[j].FanOut
		}
		return withDeps[i].Path < withDeps[j].Path
	})
	if len(withDeps) > topNOversized {
		withDeps = withDeps[:topNOversized]
	}

	names := make([]string, len(withDeps))
	values := make([]float64, len(withDeps))
	for i, m := range withDeps {
		names[i] = shortLabel(m.Path)
		values[i] = float64(m.FanOut)
	}

	p, err := charts.BarRender(
		[][]float64{values},
		charts.SVGTypeOption(),
		charts.TitleTextOptionFunc("Fan-out by module"),
		charts.XAxisDataOptionFunc(names),
		charts.ThemeOptionFunc("light"),
		charts.WidthOptionFunc(barChartWidth),
		charts.HeightOptionFunc(barChartHeight),
		charts.PaddingOptionFunc(charts.Box{Top: barChartPadTop, Right: barChartPadSide, Bottom: barChartPadSide, Left: barChartPadLeft}),
	)
	if err != nil {
		return "", err
	}
	buf, err := p.Bytes()
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func shortLabel(path string) string {
	if len(path) <= 24 {
		return path
	}
	return "..." + path[len(path)-21:]
}
