package rotfield

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Document names accepted by Result.Document.
const (
	DocComputedPoints  = "computed_points"
	DocAnimationFrames = "animation_frames"
)

// Result carries the values computed by one run. Callers thread it
// explicitly; nothing is cached between runs.
type Result struct {
	ID     string
	Cloud  *PointCloud
	Frames *AnimationFrames
	Basis  *BasisSequence
}

// NewResult returns an empty result with a fresh run id.
func NewResult() *Result {
	return &Result{ID: uuid.New().String()}
}

// PointsDoc is the persisted form of a point cloud.
type PointsDoc struct {
	ID     string      `json:"id,omitempty"`
	Ranges []RangeSpec `json:"ranges"`
	Points any         `json:"points"`
}

// FramesDoc is the persisted form of a frame tensor.
type FramesDoc struct {
	ID     string      `json:"id,omitempty"`
	Ranges []RangeSpec `json:"ranges"`
	Frames any         `json:"frames"`
}

// BasisDoc is the persisted form of a swept basis sequence. Each entry of
// Orthonormals (and Vectors) is one frame, rows of the k×k basis matrix.
type BasisDoc struct {
	ID           string     `json:"id,omitempty"`
	Sweep        BasisSweep `json:"sweep"`
	Angles       []Real     `json:"angles"`
	Orthonormals [][][]Real `json:"orthonormals"`
	Vectors      [][][]Real `json:"vectors,omitempty"`
}

// Document builds the JSON-friendly form of a computed object.
func (r *Result) Document(name string) (any, error) {
	switch name {
	case DocComputedPoints:
		if r == nil || r.Cloud == nil {
			return nil, stateErrorf("computed points are empty and cannot be written")
		}
		return PointsDoc{ID: r.ID, Ranges: r.Cloud.Ranges, Points: r.Cloud.Nested()}, nil
	case DocAnimationFrames:
		if r == nil || r.Frames == nil {
			return nil, stateErrorf("animation frames are empty and cannot be written")
		}
		return FramesDoc{ID: r.ID, Ranges: r.Frames.Ranges, Frames: r.Frames.Nested()}, nil
	}
	return nil, configErrorf("unknown computed object %q (want %s or %s)", name, DocComputedPoints, DocAnimationFrames)
}

// BasisDocument builds the persisted form of the swept basis.
func (r *Result) BasisDocument(sweep BasisSweep, withVectors bool) (*BasisDoc, error) {
	if r == nil || r.Basis == nil {
		return nil, stateErrorf("basis sequence is empty and cannot be written")
	}
	doc := &BasisDoc{ID: r.ID, Sweep: sweep, Angles: r.Basis.Angles}
	for f := range r.Basis.Orthonormal {
		doc.Orthonormals = append(doc.Orthonormals, Rows(r.Basis.Orthonormal[f]))
		if withVectors {
			doc.Vectors = append(doc.Vectors, Rows(r.Basis.Raw[f]))
		}
	}
	return doc, nil
}

// Nested returns the cloud as nested arrays of shape (D, *gridShape).
func (c *PointCloud) Nested() any {
	out := make([]any, len(c.Layers))
	for d, l := range c.Layers {
		out[d] = nest(l, c.Shape)
	}
	return out
}

// Nested returns the frames as nested arrays of shape (F, D, *gridShape).
func (a *AnimationFrames) Nested() any {
	out := make([]any, a.F)
	for f := 0; f < a.F; f++ {
		layers := make([]any, a.D)
		for d := 0; d < a.D; d++ {
			layers[d] = nest(a.Layer(f, d), a.Shape)
		}
		out[f] = layers
	}
	return out
}

// nest reshapes a flat row-major slice into nested slices.
func nest(flat []Real, shape Shape) any {
	if len(shape) <= 1 {
		return append([]Real(nil), flat...)
	}
	step := len(flat) / shape[0]
	out := make([]any, shape[0])
	for i := range out {
		out[i] = nest(flat[i*step:(i+1)*step], shape[1:])
	}
	return out
}

// WriteJSON writes v as indented JSON, creating the parent directory.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Write resolves path against dir (see ResolveOutputPath) and writes the
// named document there. An empty dir means DefaultOutputDir. It returns the
// path actually written.
func (r *Result) Write(name, path, dir string) (string, error) {
	doc, err := r.Document(name)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = DefaultOutputDir
	}
	out := outputPath(path, dir, filepath.Join(dir, filepath.Base(DefaultOutputFile)))
	if err := WriteJSON(out, doc); err != nil {
		return "", err
	}
	DebugLog("Wrote %s to %s", name, out)
	return out, nil
}
