package repaint

import (
	"image"

	"github.com/gogpu/repaint/device"
	"github.com/gogpu/repaint/geom"
)

// RenderCommand is one entry of a frame's display list: a part of a
// renderable, the paint and transform it is drawn with, and the slot of its
// bound in the renderable's chain.
//
// Commands are pooled by their Surface and reused across frames. A command
// is free when it has no renderable.
type RenderCommand struct {
	Paint     *Paint
	Transform geom.Matrix
	Part      Part

	surface    *Surface
	renderable *Renderable
	reg        *registration

	index int
	slot  int
	clip  image.Rectangle
	cover image.Rectangle

	needsRepaint bool
	painted      bool

	path *device.Path
}

// Bind attaches the command to r, painted with p. It registers r on the
// command's surface.
func (c *RenderCommand) Bind(r *Renderable, p *Paint, part Part) {
	c.reset()
	if r == nil || r.destroyed {
		return
	}
	c.renderable = r
	c.reg = r.registrationFor(c.surface)
	c.Paint = p
	c.Part = part
}

// Renderable returns the bound renderable, or nil for a free command.
func (c *RenderCommand) Renderable() *Renderable {
	return c.renderable
}

// IsFree reports whether the command is unused.
func (c *RenderCommand) IsFree() bool {
	return c.renderable == nil
}

// Index returns the position of the command in the display list.
func (c *RenderCommand) Index() int {
	return c.index
}

// Bound returns the bound record written by FinalizeBounds. ok is false
// when the command has no bound this frame.
func (c *RenderCommand) Bound() (BoundRecord, bool) {
	if c.reg == nil {
		return BoundRecord{}, false
	}
	return c.reg.currentRecord(c.slot)
}

// NeedsRepaint reports whether the command changed since the last frame.
// It is valid between the diff step of EndFrame and the commit.
func (c *RenderCommand) NeedsRepaint() bool {
	return c.needsRepaint
}

// identity returns the token bounds of this command are recorded with.
// Any change of transform changes the token, even when the transformed
// bounds stay the same.
func (c *RenderCommand) identity() Token {
	var v uint64
	if c.renderable != nil {
		v = c.renderable.version
	}
	t := c.Paint.identity(v)
	t.transform = c.Transform
	return t
}

// visible reports whether the command takes part in the repaint.
func (c *RenderCommand) visible() bool {
	return c.renderable != nil && !c.renderable.destroyed && c.slot >= 0
}

// devicePath returns Part.Path transformed to device space, cached until
// the command is rebound.
func (c *RenderCommand) devicePath() *device.Path {
	if c.path == nil && c.Part.Path != nil {
		if c.Transform.IsIdentity() {
			c.path = c.Part.Path
		} else {
			c.path = c.Part.Path.Transform(c.Transform.Aff3())
		}
	}
	return c.path
}

func (c *RenderCommand) reset() {
	c.Paint = nil
	c.Transform = geom.Identity()
	c.Part = Part{}
	c.renderable = nil
	c.reg = nil
	c.slot = -1
	c.clip = image.Rectangle{}
	c.cover = image.Rectangle{}
	c.needsRepaint = false
	c.painted = false
	c.path = nil
}

// commandPool is the arena of commands of one surface. Nodes up to active
// form the display list of the frame in progress; nodes past it are free.
type commandPool struct {
	nodes  []*RenderCommand
	active int
	limit  int
}

// allocate returns the next command, reusing a free node when one exists.
// It returns nil once limit nodes are in use.
func (p *commandPool) allocate(s *Surface) *RenderCommand {
	var cmd *RenderCommand
	switch {
	case p.active < len(p.nodes):
		cmd = p.nodes[p.active]
	case p.limit > 0 && len(p.nodes) >= p.limit:
		return nil
	default:
		cmd = &RenderCommand{surface: s}
		p.nodes = append(p.nodes, cmd)
	}
	cmd.reset()
	cmd.index = p.active
	p.active++
	return cmd
}

// rewind moves the write cursor to the head of the list.
func (p *commandPool) rewind() {
	p.active = 0
}

// list returns the display list of the current frame.
func (p *commandPool) list() []*RenderCommand {
	return p.nodes[:p.active]
}

// collect frees every node past the write cursor.
func (p *commandPool) collect() int {
	n := 0
	for _, cmd := range p.nodes[p.active:] {
		if cmd.renderable != nil {
			n++
		}
		cmd.reset()
	}
	return n
}

// size returns the number of allocated nodes.
func (p *commandPool) size() int {
	return len(p.nodes)
}
