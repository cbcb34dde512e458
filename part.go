package repaint

import (
	"image"

	"github.com/gogpu/repaint/device"
	"github.com/gogpu/repaint/geom"
)

// Part is one paintable piece of a renderable's geometry. Most renderables
// have one part; text has one per line run.
//
// A part is either a vector Path or an Image. Coordinates are local to the
// renderable.
type Part struct {
	// Path is filled and stroked with the command's paint.
	Path *device.Path

	// Image is composited at Origin. With Mask set, Image is a coverage
	// mask tinted with the paint's fill color.
	Image  image.Image
	Mask   bool
	Origin geom.Point

	// Bounds overrides the computed local bounds when non-empty.
	Bounds geom.Rect

	// Solid reports that Path fills Bounds exactly, so an opaque paint
	// hides everything below it inside those bounds.
	Solid bool
}

// IsEmpty reports whether the part has nothing to paint.
func (p Part) IsEmpty() bool {
	return p.Path.IsEmpty() && p.Image == nil
}

// LocalBounds returns the bounds of the part in local coordinates.
func (p Part) LocalBounds() geom.Rect {
	if !p.Bounds.IsEmpty() {
		return p.Bounds
	}
	if p.Image != nil {
		b := p.Image.Bounds()
		return geom.XYWH(p.Origin.X+float64(b.Min.X), p.Origin.Y+float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()))
	}
	if x0, y0, x1, y1, ok := p.Path.Bounds(); ok {
		return geom.Rect{Min: geom.Pt(x0, y0), Max: geom.Pt(x1, y1)}
	}
	return geom.Rect{}
}

// Geometry builds the parts of a renderable. Build is called lazily after
// Renderable.MarkModified.
type Geometry interface {
	Build() ([]Part, error)
}

// GeometryFunc adapts a function to Geometry.
type GeometryFunc func() ([]Part, error)

// Build calls f.
func (f GeometryFunc) Build() ([]Part, error) {
	return f()
}
