package rotfield

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var chartPalette = []string{"#7f00ff", "#0000ff", "#00ffff", "#00ff00", "#ffff00", "#ff0000"}

// chartColorRange is the visual map range; 0..1 when the color layer has no
// finite values.
func chartColorRange(b bounds) (float32, float32) {
	if !isFinite(b.MinC) || !isFinite(b.MaxC) {
		return 0, 1
	}
	return float32(b.MinC), float32(b.MaxC)
}

// SaveChart writes an interactive HTML scatter chart with one series per
// listed frame (first and last frame when none are listed). Points are
// [x, y, color] triples colored through a visual map on the third value.
func SaveChart(frames *AnimationFrames, v View, path string, only ...int) error {
	if frames == nil || frames.F == 0 {
		return stateErrorf("animation frames are empty and cannot be charted")
	}
	idx := only
	if len(idx) == 0 {
		idx = []int{0}
		if frames.F > 1 {
			idx = append(idx, frames.F-1)
		}
	}
	pr, err := project(frames, v, idx...)
	if err != nil {
		return err
	}
	b := pr.Bounds
	minC, maxC := chartColorRange(b)

	scatter := charts.NewScatter()
	px := fmt.Sprintf("%dpx", ChartWidthPx)
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Rotating field", Theme: "dark", Width: px, Height: px}),
		charts.WithTitleOpts(opts.Title{Title: "Rotating field", Subtitle: fmt.Sprintf("frames=%d layers=%d points=%d", frames.F, frames.D, frames.N())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: b.MinX, Max: b.MaxX, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: b.MinY, Max: b.MaxY, Name: "Y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        minC,
			Max:        maxC,
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: chartPalette},
		}),
	)
	for i, pts := range pr.Frames {
		data := make([]opts.ScatterData, 0, len(pts))
		for _, p := range pts {
			if !isFinite(p.X) || !isFinite(p.Y) || !isFinite(p.C) {
				continue
			}
			data = append(data, opts.ScatterData{Value: []interface{}{p.X, p.Y, p.C}})
		}
		scatter.AddSeries(fmt.Sprintf("frame %d", idx[i]), data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := scatter.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
