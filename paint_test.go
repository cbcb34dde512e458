package repaint

import (
	"image/color"
	"testing"
)

func TestPaintVersionBumps(t *testing.T) {
	p := NewFill(color.White)
	tok := p.Token()

	setters := []struct {
		name string
		fn   func()
	}{
		{"SetFill", func() { p.SetFill(color.Black) }},
		{"SetStroke", func() { p.SetStroke(color.Black, 2) }},
		{"SetAlpha", func() { p.SetAlpha(0.5) }},
		{"SetAntialias", func() { p.SetAntialias(false) }},
	}
	for _, s := range setters {
		s.fn()
		next := p.Token()
		if next == tok {
			t.Errorf("%s did not change Token()", s.name)
		}
		tok = next
	}
}

func TestPaintTokensDistinct(t *testing.T) {
	a := NewFill(color.White)
	b := NewFill(color.White)
	if a.Token() == b.Token() {
		t.Error("two paints share a Token()")
	}
	if a.Token() != a.Token() {
		t.Error("Token() not stable")
	}
}

func TestPaintIsOpaque(t *testing.T) {
	tests := []struct {
		name  string
		paint *Paint
		want  bool
	}{
		{"nil", nil, false},
		{"opaque fill", NewFill(color.RGBA{R: 255, A: 255}), true},
		{"translucent fill", NewFill(color.RGBA{R: 128, A: 128}), false},
		{"stroke only", NewStroke(color.Black, 1), false},
		{"alpha", NewFill(color.Black).SetAlpha(0.9), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.paint.IsOpaque(); got != tt.want {
				t.Errorf("IsOpaque() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaintNilSafe(t *testing.T) {
	var p *Paint
	if p.Alpha() != 1 {
		t.Errorf("Alpha() = %v, want 1", p.Alpha())
	}
	if !p.Antialias() {
		t.Error("Antialias() = false, want true")
	}
	if p.StrokeWidth() != 0 || p.Fill() != nil || p.Stroke() != nil {
		t.Error("nil paint reports a style")
	}
}

func TestStrokeWidth(t *testing.T) {
	p := NewStroke(color.Black, 3)
	if p.StrokeWidth() != 3 {
		t.Errorf("StrokeWidth() = %v, want 3", p.StrokeWidth())
	}
	p.SetStroke(nil, 3)
	if p.StrokeWidth() != 0 {
		t.Errorf("StrokeWidth() without color = %v, want 0", p.StrokeWidth())
	}
}

func TestScaleAlpha(t *testing.T) {
	got := scaleAlpha(color.RGBA{R: 255, A: 255}, 0.5)
	r, _, _, a := got.RGBA()
	if r != 0x7fff || a != 0x7fff {
		t.Errorf("scaleAlpha() = %v, want half intensity", got)
	}
	if c := scaleAlpha(color.White, 1); c != color.White {
		t.Errorf("scaleAlpha(1) = %v, want unchanged", c)
	}
}
