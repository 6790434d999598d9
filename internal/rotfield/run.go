package rotfield

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Compute evaluates a validated config: grid, field, animation frames and
// the optional swept basis.
func Compute(cfg *Config) (*Result, error) {
	if cfg == nil {
		return nil, stateErrorf("no configuration")
	}
	res := NewResult()
	DebugLog("Run %s", res.ID)

	g, err := BuildGridWithin(cfg.Ranges, cfg.MaxFrameBytes)
	if err != nil {
		return nil, err
	}
	fn, err := cfg.Field.Build()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	cloud, err := EvaluateField(g, fn)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", cfg.Field.Name, err)
	}
	nd, n := cloud.Dims()
	DebugLog("Field %s: %d points × %d layers, time: %s", cfg.Field.Name, n, nd, time.Since(start))
	res.Cloud = cloud

	spec, err := cfg.Rotations.Build()
	if err != nil {
		return nil, fmt.Errorf("rotations: %w", err)
	}
	basis, err := cfg.ProjectionBasis()
	if err != nil {
		return nil, fmt.Errorf("basis: %w", err)
	}
	start = time.Now()
	frames, err := Animate(cloud, spec, basis, ApplyOptions{MaxBytes: cfg.MaxFrameBytes, Progress: Progress})
	if err != nil {
		return nil, err
	}
	DebugLog("Frames: %d, time: %s", frames.F, time.Since(start))
	res.Frames = frames

	if bs := cfg.BasisSweep; bs != nil {
		seq, err := SweepBasis(bs.Basis, bs.Sweep)
		if err != nil {
			return nil, fmt.Errorf("basisSweep: %w", err)
		}
		res.Basis = seq
	}
	return res, nil
}

// outFile resolves an output file name against dir; def is used when name
// is empty or unusable.
func outFile(name, dir, def string) string {
	return outputPath(name, dir, filepath.Join(dir, def))
}

// WriteOutputs writes every output the config and the package switches ask
// for. It returns the written paths.
func WriteOutputs(cfg *Config, res *Result) ([]string, error) {
	if res == nil || res.Frames == nil {
		return nil, stateErrorf("nothing computed yet")
	}
	dir := cfg.OutputDir
	var written []string

	if cfg.PointsOut != "" {
		p, err := res.Write(DocComputedPoints, cfg.PointsOut, dir)
		if err != nil {
			return written, err
		}
		written = append(written, p)
	}
	if cfg.FramesOut != "" {
		p, err := res.Write(DocAnimationFrames, cfg.FramesOut, dir)
		if err != nil {
			return written, err
		}
		written = append(written, p)
	}
	if res.Basis != nil && cfg.BasisOut != "" {
		doc, err := res.BasisDocument(cfg.BasisSweep.Sweep, cfg.BasisSweep.WithVectors)
		if err != nil {
			return written, err
		}
		p := outFile(cfg.BasisOut, dir, "basis.json")
		if err := WriteJSON(p, doc); err != nil {
			return written, err
		}
		written = append(written, p)
	}
	if RAW || cfg.RawOut != "" {
		p := outFile(cfg.RawOut, dir, "frames.raw")
		if err := res.Frames.SaveRaw(p); err != nil {
			return written, err
		}
		DebugLog("Saved raw frames: %s", p)
		written = append(written, p)
	}

	if PNG {
		prefix := cfg.PNGOut
		if prefix == "" {
			prefix = strings.TrimSuffix(outFile(cfg.GIFOut, dir, "frames.gif"), ".gif")
		} else {
			prefix = outFile(prefix, dir, "frame")
		}
		if err := SavePNGSequence16(res.Frames, cfg.View, prefix, cfg.ImageRes, cfg.Gamma); err != nil {
			return written, err
		}
		DebugLog("Saved PNG sequence with prefix: %s", prefix)
		written = append(written, prefix+"_*.png")
	} else if cfg.GIFOut != "" {
		p := outFile(cfg.GIFOut, dir, "frames.gif")
		if err := SaveAnimatedGIF(res.Frames, cfg.View, p, cfg.ImageRes, cfg.GIFDelay, cfg.Gamma); err != nil {
			return written, err
		}
		DebugLog("Saved animated GIF: %s", p)
		written = append(written, p)
	}

	if Plot || cfg.PlotOut != "" {
		only := []int{0}
		if res.Frames.F > 1 {
			only = append(only, res.Frames.F-1)
		}
		ps, err := SavePlots(res.Frames, cfg.View, outFile(cfg.PlotOut, dir, "plot.png"), only...)
		written = append(written, ps...)
		if err != nil {
			return written, err
		}
	}
	if Chart || cfg.ChartOut != "" {
		p := outFile(cfg.ChartOut, dir, "chart.html")
		if err := SaveChart(res.Frames, cfg.View, p); err != nil {
			return written, err
		}
		written = append(written, p)
	}
	return written, nil
}

// Run loads the config at cfgPath, computes everything and writes the
// requested outputs.
func Run(cfgPath string) error {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	start := time.Now()
	res, err := Compute(cfg)
	if err != nil {
		return err
	}
	written, err := WriteOutputs(cfg, res)
	if err != nil {
		return err
	}
	for _, p := range written {
		Logf("Wrote %s", p)
	}
	DebugLog("Run %s done, time: %s", res.ID, time.Since(start))

	if Viewer {
		return RunViewer(res.Frames, cfg.View)
	}
	return nil
}
