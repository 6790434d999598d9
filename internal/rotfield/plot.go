package rotfield

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// toColor converts an RGB in [0,1] into an opaque color.
func (c RGB) toColor() color.RGBA {
	return color.RGBA{R: uint8(clamp01(c.R) * 255), G: uint8(clamp01(c.G) * 255), B: uint8(clamp01(c.B) * 255), A: 255}
}

func clamp01(x Real) Real {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// framePlotPath derives the per-frame file name from the configured path:
// "out/plot.svg", frame 3 of 120 -> "out/plot_003.svg".
func framePlotPath(path string, f, nf int) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".png"
	}
	width := len(fmt.Sprint(max(nf-1, 0)))
	return fmt.Sprintf("%s_%0*d%s", strings.TrimSuffix(path, filepath.Ext(path)), width, f, ext)
}

// SavePlots writes one scatter plot per listed frame (all frames when none
// are listed). The image format follows the file extension.
func SavePlots(frames *AnimationFrames, v View, path string, only ...int) ([]string, error) {
	pr, err := project(frames, v, only...)
	if err != nil {
		return nil, err
	}
	idx := only
	if len(idx) == 0 {
		idx = make([]int, frames.F)
		for f := range idx {
			idx[f] = f
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	rv, _ := v.Resolve(frames.D)
	written := make([]string, 0, len(idx))
	for i, pts := range pr.Frames {
		f := idx[i]
		p := plot.New()
		p.Title.Text = fmt.Sprintf("Frame %d/%d", f+1, frames.F)
		p.X.Label.Text = fmt.Sprintf("layer %d", rv.Axes[0])
		p.Y.Label.Text = fmt.Sprintf("layer %d", rv.Axes[1])
		p.X.Min, p.X.Max = pr.Bounds.MinX, pr.Bounds.MaxX
		p.Y.Min, p.Y.Max = pr.Bounds.MinY, pr.Bounds.MaxY

		xys := make(plotter.XYs, 0, len(pts))
		cols := make([]color.Color, 0, len(pts))
		for _, sp := range pts {
			if !isFinite(sp.X) || !isFinite(sp.Y) {
				continue
			}
			xys = append(xys, plotter.XY{X: sp.X, Y: sp.Y})
			cols = append(cols, rainbow(pr.Bounds.normC(sp.C)).toColor())
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return written, fmt.Errorf("frame %d: %w", f, err)
		}
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{Color: cols[i], Radius: vg.Points(1), Shape: draw.CircleGlyph{}}
		}
		p.Add(sc)

		out := framePlotPath(path, f, frames.F)
		side := vg.Length(PlotSizeInches) * vg.Inch
		if err := p.Save(side, side, out); err != nil {
			return written, fmt.Errorf("frame %d: %w", f, err)
		}
		written = append(written, out)
	}
	return written, nil
}
