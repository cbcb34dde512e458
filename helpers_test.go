package repaint

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/gogpu/repaint/device"
	"github.com/gogpu/repaint/geom"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// item is one primitive emitted by the test driver.
type item struct {
	r *Renderable
	p *Paint
	m geom.Matrix
}

func rectGeometry(w, h float64) Geometry {
	return GeometryFunc(func() ([]Part, error) {
		return []Part{{Path: device.NewPath().Rectangle(0, 0, w, h), Solid: true}}, nil
	})
}

func box(w, h float64) *Renderable {
	return NewRenderable(rectGeometry(w, h))
}

func at(r *Renderable, p *Paint, x, y float64) item {
	return item{r: r, p: p, m: geom.Translate(x, y)}
}

func emit(s *Surface, items ...item) {
	for _, it := range items {
		for _, part := range it.r.Parts() {
			cmd := s.AllocateCommand()
			if cmd == nil {
				continue
			}
			cmd.Bind(it.r, it.p, part)
			s.FinalizeBounds(cmd, part.LocalBounds(), it.m, it.p.StrokeWidth())
		}
	}
}

func runFrame(t *testing.T, s *Surface, items ...item) FrameStats {
	t.Helper()
	s.BeginFrame()
	emit(s, items...)
	st := s.EndFrame()
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("frame %d: CheckInvariants() = %v", st.Frame, err)
	}
	return st
}

func exactConfig() Config {
	cfg := DefaultConfig()
	cfg.AntialiasMargin = 0
	return cfg
}

func newTestSurface(cfg Config) (*Surface, *device.Recorder) {
	rec := device.NewRecorder(200, 200)
	return NewSurface(rec, cfg), rec
}

// covered reports whether every pixel of r lies in one of regions.
func covered(regions []image.Rectangle, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := image.Pt(x, y)
			if !slices.ContainsFunc(regions, func(q image.Rectangle) bool { return p.In(q) }) {
				return false
			}
		}
	}
	return true
}

func sortRects(rs []image.Rectangle) []image.Rectangle {
	out := slices.Clone(rs)
	slices.SortFunc(out, func(a, b image.Rectangle) int {
		if a.Min.X != b.Min.X {
			return a.Min.X - b.Min.X
		}
		return a.Min.Y - b.Min.Y
	})
	return out
}
