package repaint

import (
	"image"
	"testing"

	"github.com/gogpu/repaint/device"
	"github.com/gogpu/repaint/geom"
)

func TestCommandPool(t *testing.T) {
	var p commandPool
	s := &Surface{}
	a := p.allocate(s)
	b := p.allocate(s)
	if a == b || a.Index() != 0 || b.Index() != 1 {
		t.Fatalf("allocate() = %p/%d, %p/%d", a, a.Index(), b, b.Index())
	}
	a.renderable = NewRenderable(nil)
	b.renderable = NewRenderable(nil)

	p.rewind()
	if got := p.allocate(s); got != a {
		t.Error("allocate() after rewind did not reuse the head node")
	}
	if !a.IsFree() {
		t.Error("reused node kept its renderable")
	}
	if n := p.collect(); n != 1 {
		t.Errorf("collect() = %d, want 1", n)
	}
	if !b.IsFree() {
		t.Error("node past the cursor not freed")
	}
	if p.size() != 2 {
		t.Errorf("size() = %d, want 2", p.size())
	}
}

func TestCommandPoolLimit(t *testing.T) {
	p := commandPool{limit: 1}
	s := &Surface{}
	if p.allocate(s) == nil {
		t.Fatal("allocate() = nil under limit")
	}
	if p.allocate(s) != nil {
		t.Error("allocate() over limit returned a command")
	}
}

func TestBindDestroyed(t *testing.T) {
	s, _ := newTestSurface(DefaultConfig())
	r := box(10, 10)
	r.Destroy()
	s.BeginFrame()
	cmd := s.AllocateCommand()
	cmd.Bind(r, NewFill(red), Part{})
	if !cmd.IsFree() {
		t.Error("Bind() attached a destroyed renderable")
	}
	s.EndFrame()
}

func TestCustomPainter(t *testing.T) {
	s, _ := newTestSurface(DefaultConfig())
	r := box(10, 10)
	var clips []image.Rectangle
	r.SetPainter(PainterFunc(func(_ device.Device, cmd *RenderCommand, clip image.Rectangle) {
		if cmd.Renderable() != r {
			t.Errorf("Renderable() = %p, want %p", cmd.Renderable(), r)
		}
		clips = append(clips, clip)
	}))
	runFrame(t, s, at(r, NewFill(red), 5, 5))
	if len(clips) != 1 || clips[0] != image.Rect(4, 4, 16, 16) {
		t.Errorf("painter clips = %v, want [(4,4)-(16,16)]", clips)
	}
}

func TestDefaultPainterStroke(t *testing.T) {
	rec := device.NewRecorder(100, 100)
	cmd := &RenderCommand{
		Paint:     NewStroke(red, 2),
		Transform: geom.Scale(2, 2),
		Part:      Part{Path: device.NewPath().Rectangle(0, 0, 10, 10)},
	}
	DefaultPainter.PaintCommand(rec, cmd, rec.Bounds())
	if rec.Count(device.OpStroke) != 1 || rec.Count(device.OpFill) != 0 {
		t.Fatalf("ops = %v, want one stroke", rec.Ops())
	}
	if b := rec.Ops()[0].Bounds; b != image.Rect(0, 0, 20, 20) {
		t.Errorf("stroke path bounds = %v, want transformed rectangle", b)
	}
}

func TestDefaultPainterMask(t *testing.T) {
	rec := device.NewRecorder(100, 100)
	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	cmd := &RenderCommand{Transform: geom.Identity(), Part: Part{Image: mask, Mask: true}}

	DefaultPainter.PaintCommand(rec, cmd, rec.Bounds())
	if n := len(rec.Ops()); n != 0 {
		t.Errorf("mask without fill painted %d ops, want 0", n)
	}
	cmd.Paint = NewFill(green)
	DefaultPainter.PaintCommand(rec, cmd, rec.Bounds())
	if rec.Count(device.OpImage) != 1 || rec.Ops()[0].Color != green {
		t.Errorf("ops = %v, want one green image", rec.Ops())
	}
}
