package scene

import (
	"github.com/gogpu/repaint"
	"github.com/gogpu/repaint/device"
	"github.com/gogpu/repaint/geom"
)

// shape holds what every leaf node has: a renderable, a paint and a local
// transform.
type shape struct {
	r         *repaint.Renderable
	paint     *repaint.Paint
	transform geom.Matrix
	hidden    bool
}

func newShape(g repaint.Geometry, p *repaint.Paint) shape {
	return shape{r: repaint.NewRenderable(g), paint: p, transform: geom.Identity()}
}

// Renderable returns the node's renderable.
func (s *shape) Renderable() *repaint.Renderable {
	return s.r
}

// Paint returns the node's paint.
func (s *shape) Paint() *repaint.Paint {
	return s.paint
}

// SetPaint replaces the paint.
func (s *shape) SetPaint(p *repaint.Paint) {
	s.paint = p
}

// SetTransform sets the node transform, applied before the parent's.
func (s *shape) SetTransform(m geom.Matrix) {
	s.transform = m
}

// Transform returns the node transform.
func (s *shape) Transform() geom.Matrix {
	return s.transform
}

// SetHidden hides or shows the node.
func (s *shape) SetHidden(hidden bool) {
	s.hidden = hidden
}

// SetOverlay draws the node above every regular node.
func (s *shape) SetOverlay(on bool) {
	s.r.SetOverlay(on)
}

// Release destroys the renderable.
func (s *shape) Release() {
	s.r.Destroy()
}

func (s *shape) measure(surf *repaint.Surface, m geom.Matrix) {
	if s.hidden || s.r.IsDestroyed() {
		return
	}
	Emit(surf, s.r, s.paint, m.Multiply(s.transform))
}

// Rect is a rectangle, optionally with rounded corners.
type Rect struct {
	shape
	x, y, w, h float64
	radius     float64
}

// NewRect creates a rectangle node.
func NewRect(x, y, w, h float64, p *repaint.Paint) *Rect {
	n := &Rect{x: x, y: y, w: w, h: h}
	n.shape = newShape(repaint.GeometryFunc(n.build), p)
	return n
}

// SetBounds moves and resizes the rectangle.
func (n *Rect) SetBounds(x, y, w, h float64) {
	n.x, n.y, n.w, n.h = x, y, w, h
	n.r.MarkModified()
}

// Bounds returns the rectangle in local coordinates.
func (n *Rect) Bounds() geom.Rect {
	return geom.XYWH(n.x, n.y, n.w, n.h)
}

// SetRadius sets the corner radius.
func (n *Rect) SetRadius(r float64) {
	n.radius = max(r, 0)
	n.r.MarkModified()
}

func (n *Rect) build() ([]repaint.Part, error) {
	if n.w <= 0 || n.h <= 0 {
		return nil, nil
	}
	path := device.NewPath()
	if n.radius > 0 {
		path.RoundedRectangle(n.x, n.y, n.w, n.h, n.radius)
	} else {
		path.Rectangle(n.x, n.y, n.w, n.h)
	}
	return []repaint.Part{{Path: path, Bounds: n.Bounds(), Solid: n.radius == 0}}, nil
}

// Measure implements Node.
func (n *Rect) Measure(s *repaint.Surface, m geom.Matrix) {
	n.measure(s, m)
}

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	shape
	cx, cy, rx, ry float64
}

// NewEllipse creates an ellipse node.
func NewEllipse(cx, cy, rx, ry float64, p *repaint.Paint) *Ellipse {
	n := &Ellipse{cx: cx, cy: cy, rx: rx, ry: ry}
	n.shape = newShape(repaint.GeometryFunc(n.build), p)
	return n
}

// NewCircle creates a circle node.
func NewCircle(cx, cy, r float64, p *repaint.Paint) *Ellipse {
	return NewEllipse(cx, cy, r, r, p)
}

// SetCenter moves the ellipse.
func (n *Ellipse) SetCenter(cx, cy float64) {
	n.cx, n.cy = cx, cy
	n.r.MarkModified()
}

// SetRadii resizes the ellipse.
func (n *Ellipse) SetRadii(rx, ry float64) {
	n.rx, n.ry = rx, ry
	n.r.MarkModified()
}

func (n *Ellipse) build() ([]repaint.Part, error) {
	if n.rx <= 0 || n.ry <= 0 {
		return nil, nil
	}
	return []repaint.Part{{
		Path:   device.NewPath().Ellipse(n.cx, n.cy, n.rx, n.ry),
		Bounds: geom.XYWH(n.cx-n.rx, n.cy-n.ry, 2*n.rx, 2*n.ry),
	}}, nil
}

// Measure implements Node.
func (n *Ellipse) Measure(s *repaint.Surface, m geom.Matrix) {
	n.measure(s, m)
}

// PathNode draws an arbitrary path.
type PathNode struct {
	shape
	path *device.Path
}

// NewPathNode creates a node drawing path.
func NewPathNode(path *device.Path, p *repaint.Paint) *PathNode {
	n := &PathNode{path: path}
	n.shape = newShape(repaint.GeometryFunc(n.build), p)
	return n
}

// SetPath replaces the path. The node keeps a reference; call SetPath
// again after mutating it.
func (n *PathNode) SetPath(path *device.Path) {
	n.path = path
	n.r.MarkModified()
}

func (n *PathNode) build() ([]repaint.Part, error) {
	if n.path.IsEmpty() {
		return nil, nil
	}
	return []repaint.Part{{Path: n.path}}, nil
}

// Measure implements Node.
func (n *PathNode) Measure(s *repaint.Surface, m geom.Matrix) {
	n.measure(s, m)
}
