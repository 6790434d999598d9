package rotfield

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RGB stores color components; each should be in [0,1].
type RGB struct {
	R, G, B Real
}

// View selects which frame layers are drawn and how the camera looks at
// them. Axes lists 2 or 3 layer indices mapped to X, Y and depth. Color is
// the layer used for coloring; nil means the last layer.
type View struct {
	Axes   []int   `json:"axes,omitempty"`
	Color  *int    `json:"color,omitempty"`
	RotDeg Rot3Deg `json:"rotDeg"`
}

// Resolve fills defaults for a D-layer tensor and validates indices.
func (v View) Resolve(d int) (View, error) {
	out := View{RotDeg: v.RotDeg}
	if len(v.Axes) == 0 {
		for i := 0; i < d && i < 3; i++ {
			out.Axes = append(out.Axes, i)
		}
	} else {
		out.Axes = append([]int(nil), v.Axes...)
	}
	if len(out.Axes) < 2 || len(out.Axes) > 3 {
		return out, configErrorf("view needs 2 or 3 axes, got %v", out.Axes)
	}
	for _, a := range out.Axes {
		if a < 0 || a >= d {
			return out, dimErrorf("view axis %d outside %d layers", a, d)
		}
	}
	c := d - 1
	if v.Color != nil {
		c = *v.Color
	}
	if c < 0 || c >= d {
		return out, dimErrorf("view color layer %d outside %d layers", c, d)
	}
	out.Color = &c
	return out, nil
}

// Validate checks the view against a D-layer tensor.
func (v View) Validate(d int) error {
	_, err := v.Resolve(d)
	return err
}

// screenPoint is one projected point: screen position, depth toward the
// viewer and the raw color value.
type screenPoint struct {
	X, Y, Depth, C Real
}

type bounds struct {
	MinX, MaxX, MinY, MaxY, MinC, MaxC Real
}

func (b bounds) normX(x Real) Real { return norm01(x, b.MinX, b.MaxX) }
func (b bounds) normY(y Real) Real { return norm01(y, b.MinY, b.MaxY) }
func (b bounds) normC(c Real) Real { return norm01(c, b.MinC, b.MaxC) }

func norm01(x, lo, hi Real) Real {
	if hi <= lo {
		return 0.5
	}
	return (x - lo) / (hi - lo)
}

// projection holds every frame projected with one camera and the bounds
// shared by all frames, so the animation does not rescale between frames.
type projection struct {
	Frames [][]screenPoint
	Bounds bounds
}

// projectFrame rotates the selected layers of frame f by the camera.
func projectFrame(a *AnimationFrames, f int, v View, cam *mat.Dense) []screenPoint {
	n := a.N()
	src := mat.NewDense(3, n, nil)
	for r, ax := range v.Axes {
		src.SetRow(r, a.Layer(f, ax))
	}
	var dst mat.Dense
	dst.Mul(cam, src)
	c := a.Layer(f, *v.Color)
	pts := make([]screenPoint, n)
	for p := range pts {
		pts[p] = screenPoint{X: dst.At(0, p), Y: dst.At(1, p), Depth: dst.At(2, p), C: c[p]}
	}
	return pts
}

// project projects all frames (or only the listed ones) with the view.
func project(a *AnimationFrames, v View, only ...int) (*projection, error) {
	if a == nil || a.F == 0 {
		return nil, stateErrorf("animation frames are empty and cannot be rendered")
	}
	rv, err := v.Resolve(a.D)
	if err != nil {
		return nil, err
	}
	idx := only
	if len(idx) == 0 {
		idx = make([]int, a.F)
		for f := range idx {
			idx[f] = f
		}
	}
	cam := rotFromAngles(rv.RotDeg.Radians())
	pr := &projection{
		Frames: make([][]screenPoint, 0, len(idx)),
		Bounds: bounds{
			MinX: math.Inf(1), MaxX: math.Inf(-1),
			MinY: math.Inf(1), MaxY: math.Inf(-1),
			MinC: math.Inf(1), MaxC: math.Inf(-1),
		},
	}
	for _, f := range idx {
		if f < 0 || f >= a.F {
			return nil, dimErrorf("frame %d outside %d frames", f, a.F)
		}
		pts := projectFrame(a, f, rv, cam)
		for _, p := range pts {
			if !isFinite(p.X) || !isFinite(p.Y) {
				continue
			}
			b := &pr.Bounds
			b.MinX, b.MaxX = math.Min(b.MinX, p.X), math.Max(b.MaxX, p.X)
			b.MinY, b.MaxY = math.Min(b.MinY, p.Y), math.Max(b.MaxY, p.Y)
			if isFinite(p.C) {
				b.MinC, b.MaxC = math.Min(b.MinC, p.C), math.Max(b.MaxC, p.C)
			}
		}
		pr.Frames = append(pr.Frames, pts)
	}
	return pr, nil
}

// rainbow maps t in [0,1] from violet (0) to red (1).
func rainbow(t Real) RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	h := (1 - t) * 270 / 60 // hue sector, 0..4.5
	x := 1 - math.Abs(math.Mod(h, 2)-1)
	switch int(h) {
	case 0:
		return RGB{1, x, 0}
	case 1:
		return RGB{x, 1, 0}
	case 2:
		return RGB{0, 1, x}
	case 3:
		return RGB{0, x, 1}
	}
	return RGB{x, 0, 1}
}

// raster is a w×h image of projected points with a depth buffer: the point
// nearest to the viewer wins each pixel.
type raster struct {
	W, H  int
	Pix   []RGB
	depth []Real
	hit   []bool
}

func rasterize(pts []screenPoint, b bounds, w, h int) *raster {
	r := &raster{W: w, H: h, Pix: make([]RGB, w*h), depth: make([]Real, w*h), hit: make([]bool, w*h)}
	for _, p := range pts {
		if !isFinite(p.X) || !isFinite(p.Y) {
			continue
		}
		i := int(b.normX(p.X) * Real(w-1))
		// flip Y so up is up
		j := h - 1 - int(b.normY(p.Y)*Real(h-1))
		if i < 0 || i >= w || j < 0 || j >= h {
			continue
		}
		k := j*w + i
		if r.hit[k] && r.depth[k] >= p.Depth {
			continue
		}
		r.hit[k] = true
		r.depth[k] = p.Depth
		r.Pix[k] = rainbow(b.normC(p.C))
	}
	return r
}
