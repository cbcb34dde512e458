package repaint

import (
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/gogpu/repaint/geom"
)

var paintIDs atomic.Uint64

// Paint represents the styling information for drawing.
//
// A Paint may be shared by many renderables. Every setter bumps the paint
// version so each command painted with it is repainted on the next frame.
type Paint struct {
	id      uint64
	version uint64

	fill        color.Color
	stroke      color.Color
	strokeWidth float64
	alpha       float64
	noAA        bool
}

// NewPaint creates a Paint that draws nothing until a fill or stroke is set.
func NewPaint() *Paint {
	return &Paint{
		id:    paintIDs.Add(1),
		alpha: 1,
	}
}

// NewFill creates a Paint filling with c.
func NewFill(c color.Color) *Paint {
	p := NewPaint()
	p.fill = c
	return p
}

// NewStroke creates a Paint stroking with c at the given width.
func NewStroke(c color.Color, width float64) *Paint {
	p := NewPaint()
	p.stroke = c
	p.strokeWidth = max(width, 0)
	return p
}

// SetFill sets the fill color. nil disables filling.
func (p *Paint) SetFill(c color.Color) *Paint {
	p.fill = c
	p.version++
	return p
}

// Fill returns the fill color, or nil.
func (p *Paint) Fill() color.Color {
	if p == nil {
		return nil
	}
	return p.fill
}

// SetStroke sets the stroke color and width. A nil color or non-positive
// width disables stroking.
func (p *Paint) SetStroke(c color.Color, width float64) *Paint {
	p.stroke = c
	p.strokeWidth = max(width, 0)
	p.version++
	return p
}

// Stroke returns the stroke color, or nil.
func (p *Paint) Stroke() color.Color {
	if p == nil {
		return nil
	}
	return p.stroke
}

// StrokeWidth returns the stroke width in local units, or 0 when the paint
// does not stroke.
func (p *Paint) StrokeWidth() float64 {
	if p == nil || p.stroke == nil {
		return 0
	}
	return p.strokeWidth
}

// SetAlpha sets the opacity multiplier, clamped to [0, 1].
func (p *Paint) SetAlpha(a float64) *Paint {
	p.alpha = min(max(a, 0), 1)
	p.version++
	return p
}

// Alpha returns the opacity multiplier. A nil paint is opaque.
func (p *Paint) Alpha() float64 {
	if p == nil {
		return 1
	}
	return p.alpha
}

// SetAntialias enables or disables anti-aliasing. Bounds of paints without
// anti-aliasing get no pixel margin.
func (p *Paint) SetAntialias(on bool) *Paint {
	p.noAA = !on
	p.version++
	return p
}

// Antialias reports whether anti-aliasing is enabled.
func (p *Paint) Antialias() bool {
	return p == nil || !p.noAA
}

// IsOpaque reports whether the fill fully hides what lies below it.
func (p *Paint) IsOpaque() bool {
	if p == nil || p.fill == nil || p.alpha < 1 {
		return false
	}
	_, _, _, a := p.fill.RGBA()
	return a == 0xffff
}

// Token returns the paint identity at its current version.
func (p *Paint) Token() Token {
	return p.identity(0)
}

func (p *Paint) identity(geometry uint64) Token {
	if p == nil {
		return Token{geometry: geometry}
	}
	return Token{paint: p.id, paintVersion: p.version, geometry: geometry}
}

// Token identifies the visual appearance a bound was recorded with: which
// paint at which version, which geometry version and, for bounds, the
// transform the geometry was drawn with. Tokens are compared by value; two
// renderables sharing one paint produce equal paint halves.
type Token struct {
	paint        uint64
	paintVersion uint64
	geometry     uint64
	transform    geom.Matrix
}

// String implements fmt.Stringer.
func (t Token) String() string {
	m := t.transform
	return fmt.Sprintf("paint#%d.v%d/geom.v%d/[%g %g %g %g %g %g]",
		t.paint, t.paintVersion, t.geometry, m.A, m.B, m.C, m.D, m.E, m.F)
}

// scaleAlpha returns c with its opacity multiplied by a.
func scaleAlpha(c color.Color, a float64) color.Color {
	if c == nil || a >= 1 {
		return c
	}
	r, g, b, al := c.RGBA()
	k := max(a, 0)
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(al) * k),
	}
}
