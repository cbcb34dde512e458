package scene

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/go-text/typesetting/di"

	"github.com/gogpu/repaint"
	"github.com/gogpu/repaint/device"
	"github.com/gogpu/repaint/geom"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
)

func newDriver(root Node) (*Driver, *device.Recorder) {
	rec := device.NewRecorder(200, 200)
	cfg := repaint.DefaultConfig()
	cfg.AntialiasMargin = 0
	return NewDriver(repaint.NewSurface(rec, cfg), root), rec
}

func frame(t *testing.T, d *Driver) repaint.FrameStats {
	t.Helper()
	st := d.Frame()
	if err := d.Surface().CheckInvariants(); err != nil {
		t.Fatalf("frame %d: CheckInvariants() = %v", st.Frame, err)
	}
	return st
}

func TestDriverIdle(t *testing.T) {
	root := NewGroup(
		NewRect(10, 10, 20, 20, repaint.NewFill(red)),
		NewCircle(100, 100, 10, repaint.NewFill(green)),
	)
	d, _ := newDriver(root)
	if st := frame(t, d); !st.Changed || st.Commands != 2 {
		t.Fatalf("frame 1: Changed, Commands = %v, %d, want true, 2", st.Changed, st.Commands)
	}
	if st := frame(t, d); st.Changed {
		t.Errorf("frame 2: Changed = true, want false")
	}
}

func TestRectSetBounds(t *testing.T) {
	r := NewRect(10, 10, 20, 20, repaint.NewFill(red))
	d, _ := newDriver(NewGroup(r))
	frame(t, d)

	r.SetBounds(100, 10, 20, 20)
	st := frame(t, d)
	want := []image.Rectangle{image.Rect(10, 10, 30, 30), image.Rect(100, 10, 120, 30)}
	got := slices.Clone(st.Regions)
	slices.SortFunc(got, func(a, b image.Rectangle) int { return a.Min.X - b.Min.X })
	if !slices.Equal(got, want) {
		t.Errorf("Regions = %v, want %v", got, want)
	}
}

func TestGroupTransform(t *testing.T) {
	r := NewRect(0, 0, 10, 10, repaint.NewFill(red))
	g := NewGroup(r)
	g.SetTransform(geom.Translate(50, 60))
	d, _ := newDriver(g)
	frame(t, d)

	b := r.Renderable().CurrentBounds(d.Surface())
	if len(b) != 1 || b[0].Clip != image.Rect(50, 60, 60, 70) {
		t.Errorf("CurrentBounds() = %v, want one bound at (50,60)-(60,70)", b)
	}

	g.SetTransform(geom.Translate(50, 61))
	if st := frame(t, d); !st.Changed {
		t.Error("Changed = false after group moved")
	}
}

func TestMirrorInsideSameBox(t *testing.T) {
	tri := func() *device.Path {
		return device.NewPath().MoveTo(0, 0).LineTo(40, 0).LineTo(0, 40).Close()
	}
	flip := geom.Translate(90, 50).Multiply(geom.Scale(-1, 1))
	tests := []struct {
		name string
		set  func(g *Group, n *PathNode, m geom.Matrix)
	}{
		{"group", func(g *Group, _ *PathNode, m geom.Matrix) { g.SetTransform(m) }},
		{"node", func(_ *Group, n *PathNode, m geom.Matrix) { n.SetTransform(m) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewPathNode(tri(), repaint.NewFill(red))
			g := NewGroup(n)
			tt.set(g, n, geom.Translate(50, 50))
			d, rec := newDriver(g)
			frame(t, d)
			rec.Reset()

			tt.set(g, n, flip)
			st := frame(t, d)
			if want := []image.Rectangle{image.Rect(50, 50, 90, 90)}; !slices.Equal(st.Regions, want) {
				t.Errorf("Regions = %v, want %v", st.Regions, want)
			}
			if got := rec.Count(device.OpFill); got != 1 {
				t.Errorf("fills = %d, want 1", got)
			}
		})
	}
}

func TestGroupHidden(t *testing.T) {
	r := NewRect(10, 10, 20, 20, repaint.NewFill(red))
	g := NewGroup(r)
	d, _ := newDriver(NewGroup(g))
	frame(t, d)

	g.SetHidden(true)
	st := frame(t, d)
	if want := []image.Rectangle{image.Rect(10, 10, 30, 30)}; !slices.Equal(st.Regions, want) {
		t.Errorf("Regions = %v, want %v", st.Regions, want)
	}
	if st.Removed != 1 {
		t.Errorf("Removed = %d, want 1", st.Removed)
	}

	g.SetHidden(false)
	if st := frame(t, d); !st.Changed {
		t.Error("Changed = false after group shown again")
	}
}

func TestGroupClip(t *testing.T) {
	r := NewRect(0, 0, 100, 100, repaint.NewFill(red))
	g := NewGroup(r)
	clip := geom.XYWH(0, 0, 40, 30)
	g.SetClip(&clip)
	g.SetTransform(geom.Translate(10, 10))
	d, _ := newDriver(g)
	st := frame(t, d)
	if want := []image.Rectangle{image.Rect(10, 10, 50, 40)}; !slices.Equal(st.Regions, want) {
		t.Errorf("Regions = %v, want %v", st.Regions, want)
	}
	if d.Surface().Clip() != d.Surface().Bounds() {
		t.Error("clip not popped after Measure")
	}
}

func TestGroupRemove(t *testing.T) {
	a := NewRect(10, 10, 20, 20, repaint.NewFill(red))
	b := NewRect(100, 100, 20, 20, repaint.NewFill(red))
	root := NewGroup(a, b)
	d, _ := newDriver(root)
	frame(t, d)

	if !root.Remove(a) {
		t.Fatal("Remove() = false, want true")
	}
	if root.Remove(a) {
		t.Error("second Remove() = true, want false")
	}
	if !a.Renderable().IsDestroyed() {
		t.Error("removed node not released")
	}
	st := frame(t, d)
	if want := []image.Rectangle{image.Rect(10, 10, 30, 30)}; !slices.Equal(st.Regions, want) {
		t.Errorf("Regions = %v, want %v", st.Regions, want)
	}
	if len(root.Children()) != 1 {
		t.Errorf("len(Children()) = %d, want 1", len(root.Children()))
	}
}

func TestRoundedRectNotSolid(t *testing.T) {
	r := NewRect(0, 0, 200, 200, repaint.NewFill(red))
	under := NewRect(50, 50, 10, 10, repaint.NewFill(green))
	d, rec := newDriver(NewGroup(under, r))
	frame(t, d)

	under.Paint().SetFill(red)
	rec.Reset()
	if st := frame(t, d); st.Occluded != 1 {
		t.Errorf("square cover: Occluded = %d, want 1", st.Occluded)
	}

	r.SetRadius(20)
	frame(t, d)
	under.Paint().SetFill(green)
	if st := frame(t, d); st.Occluded != 0 {
		t.Errorf("rounded cover: Occluded = %d, want 0", st.Occluded)
	}
}

func TestOverlayNode(t *testing.T) {
	over := NewRect(0, 0, 50, 50, repaint.NewFill(green))
	over.SetOverlay(true)
	under := NewRect(0, 0, 50, 50, repaint.NewFill(red))
	d, rec := newDriver(NewGroup(over, under))
	frame(t, d)

	var fills []color.Color
	for _, op := range rec.Ops() {
		if op.Kind == device.OpFill {
			fills = append(fills, op.Color)
		}
	}
	if len(fills) != 2 || fills[1] != green {
		t.Errorf("fills = %v, want overlay last", fills)
	}
}

func TestPathNode(t *testing.T) {
	p := NewPathNode(device.NewPath().MoveTo(10, 10).LineTo(40, 10).LineTo(25, 40).Close(), repaint.NewStroke(red, 2))
	d, rec := newDriver(NewGroup(p))
	st := frame(t, d)
	if want := []image.Rectangle{image.Rect(9, 9, 41, 41)}; !slices.Equal(st.Regions, want) {
		t.Errorf("Regions = %v, want %v", st.Regions, want)
	}
	if rec.Count(device.OpStroke) != 1 {
		t.Errorf("strokes = %d, want 1", rec.Count(device.OpStroke))
	}

	p.SetPath(nil)
	if st := frame(t, d); st.Removed != 1 {
		t.Errorf("empty path: Removed = %d, want 1", st.Removed)
	}
}

func TestBitmap(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 21, 13))
	b := NewBitmap(img, 30, 40)
	d, rec := newDriver(NewGroup(b))
	st := frame(t, d)
	if want := []image.Rectangle{image.Rect(30, 40, 46, 48)}; !slices.Equal(st.Regions, want) {
		t.Errorf("Regions = %v, want %v", st.Regions, want)
	}
	if ops := rec.Ops(); len(ops) == 0 || ops[len(ops)-1].Bounds != image.Rect(30, 40, 46, 48) {
		t.Errorf("image ops = %v, want blit at (30,40)-(46,48)", ops)
	}

	b.SetPosition(30, 40)
	if st := frame(t, d); !st.Changed {
		t.Error("Changed = false after SetPosition")
	}
	if st := frame(t, d); st.Changed {
		t.Error("Changed = true for static bitmap")
	}
}

func TestEmitCountsVisible(t *testing.T) {
	rec := device.NewRecorder(100, 100)
	s := repaint.NewSurface(rec, repaint.DefaultConfig())
	on := NewRect(0, 0, 10, 10, repaint.NewFill(red))
	off := NewRect(500, 500, 10, 10, repaint.NewFill(red))

	s.BeginFrame()
	n := Emit(s, on.Renderable(), on.Paint(), geom.Identity()) +
		Emit(s, off.Renderable(), off.Paint(), geom.Identity())
	s.EndFrame()
	if n != 1 {
		t.Errorf("Emit() visible = %d, want 1", n)
	}
}

func TestText(t *testing.T) {
	face, err := DefaultFace(16)
	if err != nil {
		t.Fatalf("DefaultFace() error = %v", err)
	}
	defer face.Close()

	txt := NewText(face, "e\u0301", 0, 0, nil)
	if got, want := txt.Text(), "\u00e9"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestFaceAdvance(t *testing.T) {
	face, err := DefaultFace(16)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()
	short, long := face.Advance("ab"), face.Advance("abcdef")
	if short <= 0 || long <= short {
		t.Errorf("Advance() = %v, %v, want 0 < short < long", short, long)
	}
	if face.Advance("") != 0 {
		t.Error("Advance(\"\") != 0")
	}
	if face.LineHeight() <= face.Ascent() || face.Ascent() <= 0 {
		t.Errorf("LineHeight(), Ascent() = %v, %v", face.LineHeight(), face.Ascent())
	}
}

func TestNewFaceInvalid(t *testing.T) {
	if _, err := NewFace([]byte("not a font"), 12); err == nil {
		t.Error("NewFace(garbage) error = nil, want error")
	}
	if _, err := DefaultFace(0); err == nil {
		t.Error("DefaultFace(0) error = nil, want error")
	}
}

func TestLineDirection(t *testing.T) {
	tests := []struct {
		line string
		want di.Direction
	}{
		{"hello", di.DirectionLTR},
		{"123 abc", di.DirectionLTR},
		{"שלום", di.DirectionRTL},
		{"  مرحبا", di.DirectionRTL},
		{"", di.DirectionLTR},
	}
	for _, tt := range tests {
		if got := lineDirection(tt.line); got != tt.want {
			t.Errorf("lineDirection(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestFaceMaskCached(t *testing.T) {
	face, err := DefaultFace(16)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	a, b := face.mask("hello"), face.mask("hello")
	if a == nil || a != b {
		t.Fatalf("mask() returned %p and %p, want the same non-nil mask", a, b)
	}
	if face.mask("") != nil {
		t.Error("mask(\"\") != nil")
	}
	if st := face.masks.Stats(); st.Hits != 1 {
		t.Errorf("cache hits = %d, want 1", st.Hits)
	}
}
