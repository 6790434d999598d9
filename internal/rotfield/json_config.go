package rotfield

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// TransformCfg is one swept transform. Either Transform (a template of
// numbers and cos/-cos/sin/-sin tokens) or Plane (two coordinate indices,
// needs RotationsCfg.Dims) must be given. Angles are radians; MinDeg/MaxDeg
// override them when present.
type TransformCfg struct {
	Min       Real     `json:"min"`
	Max       Real     `json:"max"`
	MinDeg    *Real    `json:"minDeg,omitempty"`
	MaxDeg    *Real    `json:"maxDeg,omitempty"`
	Transform Template `json:"transform,omitempty"`
	Plane     []int    `json:"plane,omitempty"`
}

type RotationsCfg struct {
	Segments   int            `json:"segments"`
	Dims       int            `json:"dims,omitempty"` // k for plane shorthands
	Transforms []TransformCfg `json:"transforms"`
}

type BasisSweepCfg struct {
	Basis       [][]Real   `json:"basis"`
	Sweep       BasisSweep `json:"sweep"`
	WithVectors bool       `json:"withVectors,omitempty"`
}

type Config struct {
	Ranges     []RangeSpec    `json:"ranges"`
	Field      FieldCfg       `json:"field"`
	Rotations  RotationsCfg   `json:"rotations"`
	Basis      [][]Real       `json:"basis,omitempty"` // projection basis, rows as given
	BasisSweep *BasisSweepCfg `json:"basisSweep,omitempty"`

	OutputDir     string `json:"outputDir,omitempty"`
	PointsOut     string `json:"pointsOut,omitempty"`
	FramesOut     string `json:"framesOut,omitempty"`
	RawOut        string `json:"rawOut,omitempty"`
	BasisOut      string `json:"basisOut,omitempty"`
	GIFOut        string `json:"gifOut,omitempty"`
	PNGOut        string `json:"pngOut,omitempty"` // file prefix
	PlotOut       string `json:"plotOut,omitempty"`
	ChartOut      string `json:"chartOut,omitempty"`
	View          View   `json:"view"`
	GIFDelay      int    `json:"gifDelay,omitempty"`
	Gamma         Real   `json:"gamma,omitempty"`
	ImageRes      int    `json:"imageRes,omitempty"`
	MaxFrameBytes int64  `json:"maxFrameBytes,omitempty"`
}

func deg2rad(d Real) Real { return d * math.Pi / 180 }

// Build validates the transform and resolves shorthands.
func (tc TransformCfg) Build(dims int) (TransformSpec, error) {
	ts := TransformSpec{Min: tc.Min, Max: tc.Max, Matrix: tc.Transform}
	if tc.MinDeg != nil {
		ts.Min = deg2rad(*tc.MinDeg)
	}
	if tc.MaxDeg != nil {
		ts.Max = deg2rad(*tc.MaxDeg)
	}
	switch {
	case len(tc.Plane) > 0 && len(tc.Transform) > 0:
		return ts, configErrorf("transform and plane are mutually exclusive")
	case len(tc.Plane) > 0:
		if len(tc.Plane) != 2 {
			return ts, configErrorf("plane needs exactly 2 coordinate indices, got %v", tc.Plane)
		}
		if dims <= 0 {
			return ts, configErrorf("plane shorthand needs rotations.dims")
		}
		t, err := PlaneTemplate(dims, tc.Plane[0], tc.Plane[1])
		if err != nil {
			return ts, err
		}
		ts.Matrix = t
	case len(tc.Transform) == 0:
		return ts, configErrorf("transform matrix missing")
	}
	return ts, nil
}

// Build resolves every transform into a RotationSpec and validates it.
func (rc RotationsCfg) Build() (RotationSpec, error) {
	spec := RotationSpec{Segments: rc.Segments, Transforms: make([]TransformSpec, len(rc.Transforms))}
	for i, tc := range rc.Transforms {
		ts, err := tc.Build(rc.Dims)
		if err != nil {
			return spec, fmt.Errorf("transform %d: %w", i, err)
		}
		spec.Transforms[i] = ts
	}
	k, err := spec.Validate()
	if err != nil {
		return spec, err
	}
	if rc.Dims > 0 && rc.Dims != k {
		return spec, dimErrorf("rotations.dims is %d but transforms are %d×%d", rc.Dims, k, k)
	}
	return spec, nil
}

// ProjectionBasis returns the configured basis matrix, or nil.
func (c *Config) ProjectionBasis() (*mat.Dense, error) {
	if len(c.Basis) == 0 {
		return nil, nil
	}
	return DenseFromRows(c.Basis)
}

// Validate checks the whole config without evaluating anything.
func (c *Config) Validate() error {
	if len(c.Ranges) == 0 {
		return configErrorf("config has no ranges")
	}
	for i, r := range c.Ranges {
		if err := r.Validate(); err != nil {
			return wrapAxis(err, i)
		}
	}
	if _, err := CheckGrid(c.Ranges, c.MaxFrameBytes); err != nil {
		return err
	}
	if _, err := c.Field.Build(); err != nil {
		return err
	}
	spec, err := c.Rotations.Build()
	if err != nil {
		return fmt.Errorf("rotations: %w", err)
	}
	k := spec.Transforms[0].Matrix.Size()
	if b, err := c.ProjectionBasis(); err != nil {
		return fmt.Errorf("basis: %w", err)
	} else if b != nil {
		if r, cc := b.Dims(); r != k || cc != k {
			return dimErrorf("basis is %d×%d, rotations are %d×%d", r, cc, k, k)
		}
	}
	if c.BasisSweep != nil {
		if _, err := BasisMatrix(c.BasisSweep.Basis); err != nil {
			return fmt.Errorf("basisSweep: %w", err)
		}
		if err := c.BasisSweep.Sweep.Validate(len(c.BasisSweep.Basis)); err != nil {
			return fmt.Errorf("basisSweep: %w", err)
		}
	}
	if err := c.View.Validate(k); err != nil {
		return fmt.Errorf("view: %w", err)
	}
	if c.MaxFrameBytes < 0 {
		return configErrorf("maxFrameBytes must be >= 0")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.GIFDelay <= 0 {
		c.GIFDelay = GIFDelay
	}
	if c.Gamma <= 0 {
		c.Gamma = Gamma
	}
	if c.ImageRes <= 0 {
		c.ImageRes = ImageRes
	}
	if c.MaxFrameBytes == 0 {
		c.MaxFrameBytes = MaxFrameBytes
	}
}

// ParseConfig decodes, fills defaults and validates a JSON config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// LoadConfig loads a run config. The file must have a .json extension and
// be at most MaxConfigBytes.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, configErrorf("config file must have .json extension, got %q", ext)
	}
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > MaxConfigBytes {
		return nil, configErrorf("config file too large: %d bytes (max %d)", fileInfo.Size(), MaxConfigBytes)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	DebugLog("Loaded config from %s: ranges=%d, field=%s, transforms=%d, segments=%d", path, len(cfg.Ranges), cfg.Field.Name, len(cfg.Rotations.Transforms), cfg.Rotations.Segments)
	return cfg, nil
}
