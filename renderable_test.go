package repaint

import (
	"errors"
	"testing"

	"github.com/gogpu/repaint/device"
)

func TestPartsLazyRebuild(t *testing.T) {
	builds := 0
	r := NewRenderable(GeometryFunc(func() ([]Part, error) {
		builds++
		return []Part{{Path: device.NewPath().Rectangle(0, 0, 1, 1)}}, nil
	}))
	r.Parts()
	r.Parts()
	if builds != 1 {
		t.Errorf("builds = %d after two Parts(), want 1", builds)
	}
	v := r.Version()
	r.MarkModified()
	if r.Version() == v {
		t.Error("MarkModified() did not bump Version()")
	}
	if n := len(r.Parts()); n != 1 || builds != 2 {
		t.Errorf("Parts() = %d parts after %d builds, want 1 after 2", n, builds)
	}
}

func TestPartsBuildError(t *testing.T) {
	r := NewRenderable(GeometryFunc(func() ([]Part, error) {
		return []Part{{}}, errors.New("broken")
	}))
	if parts := r.Parts(); len(parts) != 0 {
		t.Errorf("Parts() = %v on build error, want none", parts)
	}
}

func TestRegisterOnIdempotent(t *testing.T) {
	s, _ := newTestSurface(DefaultConfig())
	r := box(1, 1)
	r.RegisterOn(s)
	r.RegisterOn(s)
	if n := len(r.Surfaces()); n != 1 {
		t.Errorf("len(Surfaces()) = %d, want 1", n)
	}
	if r.FlushBounds(s, ModeIndirect) {
		t.Error("FlushBounds() = true for a renderable never drawn")
	}
}

func TestFlushBoundsUnregistered(t *testing.T) {
	s, _ := newTestSurface(DefaultConfig())
	if box(1, 1).FlushBounds(s, ModeIndirect) {
		t.Error("FlushBounds() = true for an unregistered renderable")
	}
}

func TestDestroyIdempotent(t *testing.T) {
	s, _ := newTestSurface(exactConfig())
	r := box(16, 16)
	runFrame(t, s, at(r, NewFill(red), 0, 0))
	r.Destroy()
	r.Destroy()
	if r.Parts() != nil {
		t.Error("Parts() of destroyed renderable not nil")
	}
	if st := runFrame(t, s); len(st.Regions) != 1 {
		t.Errorf("Regions = %v, want one", st.Regions)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		m    Mode
		want string
	}{
		{ModeIndirect, "Indirect"},
		{ModeDirect, "Direct"},
		{ModeDirectPersistent, "DirectPersistent"},
		{Mode(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}
