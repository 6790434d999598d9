package rotfield

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// SavePNGSequence16 writes one 16-bit PNG per animation frame, named
// <prefix>_<frame>.png with zero-padded frame numbers.
func SavePNGSequence16(frames *AnimationFrames, v View, prefix string, res int, gamma Real) error {
	pr, err := project(frames, v)
	if err != nil {
		return err
	}
	if res <= 1 {
		res = ImageRes
	}
	nf := len(pr.Frames)

	// Helper: [0,1] -> [0..65535] with gamma.
	toU16 := func(n Real) uint16 {
		if n <= 0 {
			return 0
		}
		if n > 1 {
			n = 1
		}
		if gamma != 1 {
			n = math.Pow(n, 1.0/gamma)
		}
		return uint16(math.Round(n * 65535.0))
	}

	// Zero-padding width based on number of frames.
	width := 1
	if nf > 1 {
		width = int(math.Log10(Real(nf-1))) + 1
	}

	// Progress print step (~1%).
	step := 1
	if nf >= 100 {
		step = nf / 100
	}

	if err := os.MkdirAll(filepath.Dir(prefix), 0o755); err != nil {
		return err
	}
	for k, pts := range pr.Frames {
		if Progress && k%step == 0 {
			Logf("[PNG]  %.2f%%", Real(k+1)*100/Real(nf))
		}
		r := rasterize(pts, pr.Bounds, res, res)

		img := image.NewNRGBA64(image.Rect(0, 0, res, res))
		const pxBytes = 8 // 4 channels * 2 bytes/channel
		for y := 0; y < res; y++ {
			rowOff := y * img.Stride
			for x := 0; x < res; x++ {
				c := r.Pix[y*res+x]
				rr, g, b := toU16(c.R), toU16(c.G), toU16(c.B)
				a := uint16(0xFFFF)

				p := rowOff + x*pxBytes
				// NRGBA64 stores big-endian uint16 per channel: R,G, B, A.
				img.Pix[p+0] = uint8(rr >> 8)
				img.Pix[p+1] = uint8(rr)
				img.Pix[p+2] = uint8(g >> 8)
				img.Pix[p+3] = uint8(g)
				img.Pix[p+4] = uint8(b >> 8)
				img.Pix[p+5] = uint8(b)
				img.Pix[p+6] = uint8(a >> 8)
				img.Pix[p+7] = uint8(a)
			}
		}

		full := fmt.Sprintf("%s_%0*d.png", prefix, width, k)
		f, err := os.Create(full)
		if err != nil {
			return err
		}
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(f, img); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
