package rotfield

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"
	"os"
	"path/filepath"
)

// SaveAnimatedGIF writes a GIF with one frame per animation frame, drawn
// through view at res×res pixels. delay is in 100ths of a second (e.g.,
// 4 => 25 fps). gamma != 1 brightens (< 1) or darkens (> 1) the colors.
func SaveAnimatedGIF(frames *AnimationFrames, v View, path string, res, delay int, gamma Real) error {
	pr, err := project(frames, v)
	if err != nil {
		return err
	}
	if res <= 1 {
		res = ImageRes
	}
	nf := len(pr.Frames)

	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, nf),
		Delay:     make([]int, 0, nf),
		LoopCount: 0,
	}
	rgba := image.NewNRGBA(image.Rect(0, 0, res, res))

	// helper: [0,1] -> 0..255 with gamma
	toByte := func(n Real) uint8 {
		if n <= 0 {
			return 0
		}
		if n > 1 {
			n = 1
		}
		if gamma != 1 {
			n = math.Pow(n, 1.0/gamma)
		}
		return uint8(math.Round(n * 255))
	}

	for k, pts := range pr.Frames {
		if Progress && k%max(1, nf/100) == 0 { // ~1% steps
			Logf("[GIF] %.2f%%", Real(k+1)*100/Real(nf))
		}
		r := rasterize(pts, pr.Bounds, res, res)
		for y := 0; y < res; y++ {
			rowOff := y * rgba.Stride
			for x := 0; x < res; x++ {
				c := r.Pix[y*res+x]
				p := rowOff + x*4
				rgba.Pix[p+0] = toByte(c.R)
				rgba.Pix[p+1] = toByte(c.G)
				rgba.Pix[p+2] = toByte(c.B)
				rgba.Pix[p+3] = 255
			}
		}

		// Quantize to paletted for GIF
		pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})

		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}
