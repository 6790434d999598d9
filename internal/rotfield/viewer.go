package rotfield

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// viewerState is what the terminal viewer shows: a frame, a camera and
// whether frames advance on their own.
type viewerState struct {
	frame int
	view  View
	auto  bool

	bounds    *bounds // over all frames, for camera boundsCam
	boundsCam Rot3Deg
}

// frameBounds returns the screen bounds of every frame under the current
// camera, recomputing them only when the camera moved.
func (st *viewerState) frameBounds(a *AnimationFrames) (bounds, error) {
	if st.bounds != nil && st.boundsCam == st.view.RotDeg {
		return *st.bounds, nil
	}
	pr, err := project(a, st.view)
	if err != nil {
		return bounds{}, err
	}
	st.bounds, st.boundsCam = &pr.Bounds, st.view.RotDeg
	return pr.Bounds, nil
}

const camStepDeg = 10

// handleKey updates the state for one key event and reports whether the
// viewer should quit.
func (st *viewerState) handleKey(ev *tcell.EventKey, nf int) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		st.frame = (st.frame - 1 + nf) % nf
	case tcell.KeyRight:
		st.frame = (st.frame + 1) % nf
	case tcell.KeyUp:
		st.view.RotDeg.Elevation -= camStepDeg
	case tcell.KeyDown:
		st.view.RotDeg.Elevation += camStepDeg
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'a', ' ':
			st.auto = !st.auto
		case 'h':
			st.view.RotDeg.Azimuth -= camStepDeg
		case 'l':
			st.view.RotDeg.Azimuth += camStepDeg
		case 'r':
			st.view.RotDeg = Rot3Deg{}
		}
	}
	return false
}

// drawFrame renders the current frame as colored dots on the whole screen
// except the status line.
func drawFrame(s tcell.Screen, a *AnimationFrames, st *viewerState) error {
	s.Clear()
	w, h := s.Size()
	if w < 2 || h < 3 {
		return nil
	}
	b, err := st.frameBounds(a)
	if err != nil {
		return err
	}
	pr, err := project(a, st.view, st.frame)
	if err != nil {
		return err
	}
	r := rasterize(pr.Frames[0], b, w, h-1)
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			k := y*r.W + x
			if !r.hit[k] {
				continue
			}
			c := r.Pix[k].toColor()
			s.SetContent(x, y, '•', nil, tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))))
		}
	}
	auto := "off"
	if st.auto {
		auto = "on"
	}
	info := fmt.Sprintf("Frame %d/%d | Cam %.0f/%.0f/%.0f | Auto: %s | ←→ frame ↑↓hl camera a auto q quit",
		st.frame+1, a.F, st.view.RotDeg.Elevation, st.view.RotDeg.Azimuth, st.view.RotDeg.Roll, auto)
	drawText(s, 0, h-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), info)
	return nil
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// RunViewer plays the animation in the terminal until the user quits.
func RunViewer(a *AnimationFrames, v View) error {
	if _, err := v.Resolve(a.D); err != nil {
		return err
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer s.Fini()
	return runViewer(s, a, v, 40*time.Millisecond)
}

func runViewer(s tcell.Screen, a *AnimationFrames, v View, tick time.Duration) error {
	st := &viewerState{view: v, auto: true}
	keys := make(chan *tcell.EventKey)
	quit := make(chan struct{})

	// Input handler
	go func() {
		for {
			ev := s.PollEvent()
			switch ev := ev.(type) {
			case nil:
				return
			case *tcell.EventKey:
				select {
				case keys <- ev:
				case <-quit:
					return
				}
			case *tcell.EventResize:
				s.Sync()
			}
		}
	}()
	defer close(quit)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case ev := <-keys:
			if st.handleKey(ev, a.F) {
				return nil
			}
		case <-ticker.C:
			if st.auto {
				st.frame = (st.frame + 1) % a.F
			}
		}
		if err := drawFrame(s, a, st); err != nil {
			return err
		}
		s.Show()
	}
}
