package repaint

import (
	"log/slog"
	"slices"
)

// Renderable is the persistent drawable of one scene node. It owns the
// node's geometry and remembers, per surface, where it was painted.
//
// Node logic calls MarkModified whenever the geometry changes and Destroy
// when the node goes away.
type Renderable struct {
	geometry Geometry
	parts    []Part
	built    bool
	version  uint64

	painter Painter
	regs    []*registration

	overlay   bool
	modified  bool
	destroyed bool
}

// registration is the state of a renderable on one surface.
type registration struct {
	surface *Surface
	chain   boundChain

	// flushed is the frame the chain was last rotated in; drew is what
	// that rotation reported.
	flushed uint64
	drew    bool
	// emitted is the last frame a bound was written.
	emitted uint64
	// listed reports membership in the surface's drawn list.
	listed bool
}

// NewRenderable creates a renderable built from g. g may be nil for a
// renderable whose commands carry their own parts.
func NewRenderable(g Geometry) *Renderable {
	return &Renderable{geometry: g, modified: true}
}

// MarkModified invalidates the geometry. Parts rebuilds it on next use and
// every bound written afterwards carries a new identity.
func (r *Renderable) MarkModified() {
	r.version++
	r.built = false
	r.modified = true
}

// Modified reports whether the renderable changed since the last frame
// that painted it.
func (r *Renderable) Modified() bool {
	return r.modified
}

// Version returns the geometry version.
func (r *Renderable) Version() uint64 {
	return r.version
}

// Parts returns the geometry, rebuilding it if it was marked modified.
// A build error is logged and yields no parts.
func (r *Renderable) Parts() []Part {
	if r.destroyed {
		return nil
	}
	if !r.built {
		r.built = true
		r.parts = r.parts[:0]
		if r.geometry != nil {
			parts, err := r.geometry.Build()
			if err != nil {
				Logger().Warn("repaint: geometry build failed", slog.Any("err", err))
				parts = nil
			}
			r.parts = append(r.parts, parts...)
		}
	}
	return r.parts
}

// SetOverlay marks the renderable as an overlay. Overlays are painted after
// every regular command of a region and never hide what lies below.
func (r *Renderable) SetOverlay(on bool) {
	if r.overlay != on {
		r.overlay = on
		r.MarkModified()
	}
}

// IsOverlay reports whether the renderable is an overlay.
func (r *Renderable) IsOverlay() bool {
	return r.overlay
}

// SetPainter replaces the painter used for this renderable's commands.
// nil restores DefaultPainter. Commands with a custom painter never occlude
// what is below them.
func (r *Renderable) SetPainter(p Painter) {
	r.painter = p
	r.MarkModified()
}

func (r *Renderable) painterOrDefault() Painter {
	if r.painter != nil {
		return r.painter
	}
	return DefaultPainter
}

// RegisterOn prepares the renderable for painting on s. It is idempotent
// and called implicitly by RenderCommand.Bind.
func (r *Renderable) RegisterOn(s *Surface) {
	r.registrationFor(s)
}

func (r *Renderable) registrationFor(s *Surface) *registration {
	if reg := r.lookup(s); reg != nil {
		return reg
	}
	reg := &registration{surface: s}
	r.regs = append(r.regs, reg)
	return reg
}

func (r *Renderable) lookup(s *Surface) *registration {
	for _, reg := range r.regs {
		if reg.surface == s {
			return reg
		}
	}
	return nil
}

func (r *Renderable) unregister(s *Surface) {
	r.regs = slices.DeleteFunc(r.regs, func(reg *registration) bool {
		return reg.surface == s
	})
}

// Surfaces returns the surfaces the renderable is registered on.
func (r *Renderable) Surfaces() []*Surface {
	out := make([]*Surface, 0, len(r.regs))
	for _, reg := range r.regs {
		out = append(out, reg.surface)
	}
	return out
}

// CurrentBounds returns the bounds written on s in the current (or last
// completed) frame.
func (r *Renderable) CurrentBounds(s *Surface) []BoundRecord {
	reg := r.lookup(s)
	if reg == nil {
		return nil
	}
	return reg.chain.live()
}

// SameBoundsAsLastFrame reports whether cmd's bound on s matches a bound
// from the previous frame: same identity, same clip and same unclipped
// origin. A matching previous record is consumed so it is not drained as a
// stale footprint.
func (r *Renderable) SameBoundsAsLastFrame(cmd *RenderCommand, s *Surface) bool {
	if cmd == nil || cmd.renderable != r || cmd.slot < 0 {
		return false
	}
	reg := r.lookup(s)
	if reg == nil || reg != cmd.reg || cmd.slot >= len(reg.chain.current) {
		return false
	}
	return reg.chain.match(reg.chain.current[cmd.slot])
}

// FlushBounds rotates the bound chain on s: bounds of the last frame become
// the previous chain. Outside ModeIndirect the previous chain is discarded.
// It reports whether the renderable had any bound on s last frame.
//
// Surface.BeginFrame calls FlushBounds for every renderable drawn last
// frame; a second call in the same frame is a no-op.
func (r *Renderable) FlushBounds(s *Surface, mode Mode) bool {
	reg := r.lookup(s)
	if reg == nil {
		return false
	}
	return reg.flush(s.frame, mode)
}

// flush rotates the chain once per frame and returns whether the chain that
// became previous held any bound. Later calls in the same frame return the
// first answer; match may have consumed the records since.
func (reg *registration) flush(frame uint64, mode Mode) bool {
	if reg.flushed != frame {
		reg.flushed = frame
		reg.drew = reg.chain.rotate(!mode.IsDirect())
	}
	return reg.drew
}

// Destroy removes the renderable from every surface. The areas it covered
// are added to each surface's dirty set so the removal gets painted.
func (r *Renderable) Destroy() {
	if r.destroyed {
		return
	}
	for _, reg := range r.regs {
		s := reg.surface
		reg.chain.drainAll(s.invalidate)
		s.forget(r)
	}
	r.regs = nil
	r.parts = nil
	r.geometry = nil
	r.destroyed = true
}

// IsDestroyed reports whether Destroy was called.
func (r *Renderable) IsDestroyed() bool {
	return r.destroyed
}

// currentRecord returns the record in slot of the chain on reg.
func (reg *registration) currentRecord(slot int) (BoundRecord, bool) {
	if slot < 0 || slot >= len(reg.chain.current) {
		return BoundRecord{}, false
	}
	return reg.chain.current[slot], true
}
