package rotfield

import (
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func tinyFrames(t *testing.T) *AnimationFrames {
	t.Helper()
	a, err := Animate(testCloud(t), planeSpec(t, 4, 0, 2, 2, 0, 1), nil, ApplyOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestSaveAnimatedGIF(t *testing.T) {
	a := tinyFrames(t)
	tmp := filepath.Join(t.TempDir(), "out.gif")
	if err := SaveAnimatedGIF(a, View{}, tmp, 32, 5, 0.8); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(tmp)
	if err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != a.F {
		t.Fatalf("gif has %d frames, want %d", len(g.Image), a.F)
	}
	if g.Delay[0] != 5 {
		t.Fatalf("delay = %d", g.Delay[0])
	}
}

func TestSavePNGSequence16(t *testing.T) {
	a := tinyFrames(t)
	prefix := filepath.Join(t.TempDir(), "frame")
	if err := SavePNGSequence16(a, View{Axes: []int{1, 3}}, prefix, 16, 0.8); err != nil {
		t.Fatal(err)
	}
	// 3 frames => "_0.png" .. "_2.png"
	for _, name := range []string{"_0.png", "_1.png", "_2.png"} {
		f, err := os.Open(prefix + name)
		if err != nil {
			t.Fatalf("png not written: %v", err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
			t.Fatalf("png size %v", b)
		}
	}
}

func TestRenderersRejectBadView(t *testing.T) {
	a := tinyFrames(t)
	dir := t.TempDir()
	if err := SaveAnimatedGIF(a, View{Axes: []int{0}}, filepath.Join(dir, "x.gif"), 8, 1, 1); err == nil {
		t.Fatal("expected error for a single axis")
	}
	if err := SavePNGSequence16(nil, View{}, filepath.Join(dir, "y"), 8, 1); err == nil {
		t.Fatal("expected error for missing frames")
	}
}
