package scene

import (
	"log/slog"
	"slices"

	"github.com/gogpu/repaint"
	"github.com/gogpu/repaint/geom"
)

// Node is an element of the scene tree.
type Node interface {
	// Measure emits the node's commands on s. m maps the node's parent
	// space to surface pixels.
	Measure(s *repaint.Surface, m geom.Matrix)
}

// Releaser is implemented by nodes owning renderables.
type Releaser interface {
	Release()
}

// Emit appends one command per part of r to the display list of s and
// finalizes its bound. It returns the number of commands with a visible
// bound.
func Emit(s *repaint.Surface, r *repaint.Renderable, p *repaint.Paint, m geom.Matrix) int {
	n := 0
	for _, part := range r.Parts() {
		cmd := s.AllocateCommand()
		if cmd == nil {
			return n
		}
		cmd.Bind(r, p, part)
		if s.FinalizeBounds(cmd, part.LocalBounds(), m, p.StrokeWidth()) {
			n++
		}
	}
	return n
}

// Group is a node with children, a transform and an optional clip.
type Group struct {
	transform geom.Matrix
	clip      *geom.Rect
	hidden    bool
	children  []Node
}

// NewGroup creates a group with an identity transform.
func NewGroup(children ...Node) *Group {
	return &Group{transform: geom.Identity(), children: children}
}

// Add appends children. Later children are painted above earlier ones.
func (g *Group) Add(children ...Node) {
	g.children = append(g.children, children...)
}

// Remove detaches n and releases it. It reports whether n was a child.
func (g *Group) Remove(n Node) bool {
	i := slices.Index(g.children, n)
	if i < 0 {
		return false
	}
	g.children = slices.Delete(g.children, i, i+1)
	if r, ok := n.(Releaser); ok {
		r.Release()
	}
	return true
}

// Children returns the children in paint order.
func (g *Group) Children() []Node {
	return g.children
}

// SetTransform sets the transform applied to every child.
func (g *Group) SetTransform(m geom.Matrix) {
	g.transform = m
}

// Transform returns the group transform.
func (g *Group) Transform() geom.Matrix {
	return g.transform
}

// SetClip restricts children to r, in group space. nil removes the clip.
func (g *Group) SetClip(r *geom.Rect) {
	g.clip = r
}

// SetHidden hides or shows the group.
func (g *Group) SetHidden(hidden bool) {
	g.hidden = hidden
}

// Measure implements Node.
func (g *Group) Measure(s *repaint.Surface, m geom.Matrix) {
	if g.hidden {
		return
	}
	m = m.Multiply(g.transform)
	if g.clip != nil {
		s.PushClipRect(*g.clip, m)
		defer s.PopClip()
	}
	for _, c := range g.children {
		c.Measure(s, m)
	}
}

// Release releases every child.
func (g *Group) Release() {
	for _, c := range g.children {
		if r, ok := c.(Releaser); ok {
			r.Release()
		}
	}
	g.children = nil
}

// Driver runs frames of a scene tree on a surface.
type Driver struct {
	surface *repaint.Surface
	root    Node
}

// NewDriver creates a driver painting root on s.
func NewDriver(s *repaint.Surface, root Node) *Driver {
	return &Driver{surface: s, root: root}
}

// Surface returns the surface the driver paints on.
func (d *Driver) Surface() *repaint.Surface {
	return d.surface
}

// SetRoot replaces the scene root.
func (d *Driver) SetRoot(root Node) {
	d.root = root
}

// Frame runs one frame: Begin, Measure over the whole tree, then End.
func (d *Driver) Frame() repaint.FrameStats {
	d.surface.BeginFrame()
	if d.root != nil {
		d.root.Measure(d.surface, geom.Identity())
	}
	st := d.surface.EndFrame()
	repaint.Logger().Debug("repaint: frame", slog.Any("stats", st))
	return st
}
