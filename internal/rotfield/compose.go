package rotfield

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/mat"
)

// CompositeRotator holds one combined k×k transform per frame.
type CompositeRotator struct {
	K      int
	Frames []*mat.Dense
	Basis  *mat.Dense // orthonormalized projection basis, nil if none
}

// Len returns F.
func (c *CompositeRotator) Len() int { return len(c.Frames) }

// Compose multiplies the sequences frame by frame in list order:
// composite[f] = seqs[0][f] · seqs[1][f] · ... . A non-nil basis must be
// k×k; it is orthonormalized once and right-multiplied into every frame.
func Compose(seqs []*RotatorSequence, basis *mat.Dense) (*CompositeRotator, error) {
	if len(seqs) == 0 {
		return nil, configErrorf("no rotator sequences to compose")
	}
	k, nf := seqs[0].K, seqs[0].Len()
	if nf == 0 {
		return nil, configErrorf("rotator sequence 0 has no frames")
	}
	for i, s := range seqs[1:] {
		if s.K != k || s.Len() != nf {
			return nil, dimErrorf("rotator sequence %d is (%d,%d,%d), sequence 0 is (%d,%d,%d)", i+1, s.K, s.K, s.Len(), k, k, nf)
		}
	}

	comp := &CompositeRotator{K: k, Frames: make([]*mat.Dense, nf)}
	if basis != nil {
		r, c := basis.Dims()
		if r != k || c != k {
			return nil, dimErrorf("projection basis is %d×%d, rotations are %d×%d", r, c, k, k)
		}
		q, err := Orthonormalize(basis)
		if err != nil {
			return nil, fmt.Errorf("projection basis: %w", err)
		}
		comp.Basis = q
	}

	for f := 0; f < nf; f++ {
		acc := mat.DenseCopyOf(seqs[0].At(f))
		for _, s := range seqs[1:] {
			var next mat.Dense
			next.Mul(acc, s.At(f))
			acc = &next
		}
		if comp.Basis != nil {
			var next mat.Dense
			next.Mul(acc, comp.Basis)
			acc = &next
		}
		comp.Frames[f] = acc
	}
	return comp, nil
}

// ApplyOptions tunes Apply.
type ApplyOptions struct {
	MaxBytes int64 // frame tensor size limit; <= 0 uses MaxFrameBytes
	Workers  int   // <= 0 uses runtime.NumCPU()
	Progress bool  // log [FRAMES] progress lines
}

// Apply transforms every point vector of the cloud by every frame's
// composite: frame f = composite[f] · P, P being the D×N cloud matrix.
// Frames are independent and computed in parallel.
func Apply(comp *CompositeRotator, cloud *PointCloud, opts ApplyOptions) (*AnimationFrames, error) {
	if comp == nil || comp.Len() == 0 {
		return nil, stateErrorf("no composite rotator")
	}
	if cloud == nil || len(cloud.Layers) == 0 {
		return nil, stateErrorf("no point cloud")
	}
	nd, n := cloud.Dims()
	if comp.K != nd {
		return nil, dimErrorf("rotation is %d×%d but point vectors have %d elements", comp.K, comp.K, nd)
	}
	for d, l := range cloud.Layers {
		if len(l) != n {
			return nil, dimErrorf("cloud layer %d has %d points, layer 0 has %d", d, len(l), n)
		}
	}
	if n != cloud.Shape.NumElements() {
		return nil, dimErrorf("cloud has %d points, shape %v has %d", n, []int(cloud.Shape), cloud.Shape.NumElements())
	}
	nf := comp.Len()
	size, err := checkFrameBudget(nf, nd, n, opts.MaxBytes)
	if err != nil {
		return nil, err
	}
	DebugLog("Allocating frame tensor (%d, %d, %d): %d bytes", nf, nd, n, size)

	out := newAnimationFrames(cloud.Ranges, cloud.Shape, nf, nd)
	P := cloud.Matrix()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > nf {
		workers = nf
	}

	var done int64
	nextPrint := int64(1)
	if nf >= 100 {
		nextPrint = int64(nf / 100) // ~1%
	}
	jobs := make(chan int, nf)
	for f := 0; f < nf; f++ {
		jobs <- f
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for f := range jobs {
				dst := out.Frame(f)
				dst.Mul(comp.Frames[f], P)
				fired := atomic.AddInt64(&done, 1)
				if opts.Progress && fired%nextPrint == 0 {
					Logf("[FRAMES] %.2f%%", Real(fired)*100/Real(nf))
				}
			}
		}()
	}
	wg.Wait()
	return out, nil
}

// Animate compiles the rotation spec, composes it with the optional basis
// and applies it to the cloud.
func Animate(cloud *PointCloud, spec RotationSpec, basis *mat.Dense, opts ApplyOptions) (*AnimationFrames, error) {
	if cloud == nil || len(cloud.Layers) == 0 {
		return nil, stateErrorf("no point cloud to animate")
	}
	k, err := spec.Validate()
	if err != nil {
		return nil, err
	}
	if nd, _ := cloud.Dims(); nd != k {
		return nil, dimErrorf("rotation is %d×%d but point vectors have %d elements", k, k, nd)
	}
	seqs, err := CompileRotation(spec)
	if err != nil {
		return nil, err
	}
	comp, err := Compose(seqs, basis)
	if err != nil {
		return nil, err
	}
	return Apply(comp, cloud, opts)
}
