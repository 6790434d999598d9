package rotfield

import (
	"gonum.org/v1/gonum/floats"
)

// RangeSpec describes Segments+1 evenly spaced samples from Min to Max
// inclusive.
type RangeSpec struct {
	Min      Real `json:"min"`
	Max      Real `json:"max"`
	Segments int  `json:"segments"`
}

// Validate checks the segment count and endpoint values.
func (r RangeSpec) Validate() error {
	if r.Segments < 1 {
		return configErrorf("range segments must be >= 1, got %d", r.Segments)
	}
	if !isFinite(r.Min) || !isFinite(r.Max) {
		return configErrorf("range bounds must be finite, got [%g, %g]", r.Min, r.Max)
	}
	return nil
}

// Samples returns the Segments+1 sample values.
func (r RangeSpec) Samples() ([]Real, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return linspace(r.Min, r.Max, r.Segments+1), nil
}

// linspace assumes n >= 2, which Segments >= 1 guarantees.
func linspace(lo, hi Real, n int) []Real {
	return floats.Span(make([]Real, n), lo, hi)
}

// Grid is a coordinate grid built from a list of ranges.
//
// Axis i holds Ranges[i].Segments+1 samples. Coordinate arrays use "ij"
// indexing and are stored flat in row-major order, so the last axis varies
// fastest: Coords[i][Shape.Offset(j0, j1, ...)] == Axes[i][ji].
type Grid struct {
	Ranges []RangeSpec
	Shape  Shape
	Axes   [][]Real
	Coords [][]Real
}

// K is the number of input dimensions.
func (g *Grid) K() int { return len(g.Coords) }

// CheckGrid validates the ranges and the size of the coordinate grid they
// describe without allocating it. maxBytes <= 0 uses MaxFrameBytes.
func CheckGrid(ranges []RangeSpec, maxBytes int64) (Shape, error) {
	if len(ranges) == 0 {
		return nil, configErrorf("empty range list")
	}
	shape := make(Shape, len(ranges))
	for i, r := range ranges {
		if err := r.Validate(); err != nil {
			return nil, wrapAxis(err, i)
		}
		shape[i] = r.Segments + 1
	}
	if _, err := checkGridBudget(len(ranges), shape, maxBytes); err != nil {
		return nil, err
	}
	return shape, nil
}

// BuildGrid turns the ranges into a 1-D sequence (one range) or an N-D mesh
// within the default size limit.
func BuildGrid(ranges []RangeSpec) (*Grid, error) {
	return BuildGridWithin(ranges, 0)
}

// BuildGridWithin is BuildGrid with an explicit byte limit for the
// coordinate arrays; maxBytes <= 0 uses MaxFrameBytes.
func BuildGridWithin(ranges []RangeSpec, maxBytes int64) (*Grid, error) {
	shape, err := CheckGrid(ranges, maxBytes)
	if err != nil {
		return nil, err
	}
	g := &Grid{
		Ranges: append([]RangeSpec(nil), ranges...),
		Shape:  shape,
		Axes:   make([][]Real, len(ranges)),
	}
	for i, r := range ranges {
		s, err := r.Samples()
		if err != nil {
			return nil, wrapAxis(err, i)
		}
		g.Axes[i] = s
	}

	n := g.Shape.NumElements()
	if len(ranges) == 1 {
		g.Coords = [][]Real{append([]Real(nil), g.Axes[0]...)}
		DebugLog("Built 1-D grid: %d samples", n)
		return g, nil
	}

	strides := g.Shape.Strides()
	g.Coords = make([][]Real, len(ranges))
	for i := range ranges {
		c := make([]Real, n)
		axis, stride, extent := g.Axes[i], strides[i], g.Shape[i]
		for p := 0; p < n; p++ {
			c[p] = axis[(p/stride)%extent]
		}
		g.Coords[i] = c
	}
	DebugLog("Built mesh grid: shape=%v, points=%d", []int(g.Shape), n)
	return g, nil
}
