package repaint

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"slices"

	"github.com/gogpu/repaint/device"
	"github.com/gogpu/repaint/geom"
	"github.com/gogpu/repaint/region"
)

// Surface owns the display list, the dirty region set and the list of
// renderables drawn in the last frame for one device.
type Surface struct {
	dev  device.Device
	cfg  Config
	rect image.Rectangle

	clips []image.Rectangle
	pool  commandPool

	toRedraw *region.Set
	pending  *region.Set
	full     bool

	prevNodes []*Renderable

	frame       uint64
	mode        Mode
	forceDirect bool
	inFrame     bool
	closed      bool

	background *Paint
	bgBound    bool
	bgToken    Token

	cur  FrameStats
	last FrameStats
}

// NewSurface creates a surface painting on dev. Invalid config values are
// replaced with defaults.
func NewSurface(dev device.Device, cfg Config) *Surface {
	cfg = cfg.normalized()
	s := &Surface{
		dev:      dev,
		cfg:      cfg,
		rect:     dev.Bounds(),
		pool:     commandPool{limit: cfg.MaxCommands},
		toRedraw: region.NewSet(cfg.MaxRegions),
		pending:  region.NewSet(cfg.MaxRegions),
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		Logger().Warn("repaint: ignoring background", slog.Any("err", err))
	} else if bg != nil {
		s.background = NewFill(bg)
	}
	return s
}

// Device returns the device the surface paints on.
func (s *Surface) Device() device.Device {
	return s.dev
}

// Config returns the effective configuration.
func (s *Surface) Config() Config {
	return s.cfg
}

// Bounds returns the surface rectangle in device pixels.
func (s *Surface) Bounds() image.Rectangle {
	return s.rect
}

// Frame returns the number of the current or last frame.
func (s *Surface) Frame() uint64 {
	return s.frame
}

// InFrame reports whether a frame is in progress.
func (s *Surface) InFrame() bool {
	return s.inFrame
}

// Mode returns the repaint mode of the current or last frame.
func (s *Surface) Mode() Mode {
	return s.mode
}

// LastStats returns the statistics of the last completed frame.
func (s *Surface) LastStats() FrameStats {
	return s.last
}

// DisplayList returns the commands of the current or last frame in
// emission order. The slice is only valid until the next BeginFrame.
func (s *Surface) DisplayList() []*RenderCommand {
	return s.pool.list()
}

// PoolSize returns the number of pooled commands, free or in use.
func (s *Surface) PoolSize() int {
	return s.pool.size()
}

// DirtyRegions returns a copy of the dirty region set of the current or
// last frame.
func (s *Surface) DirtyRegions() []image.Rectangle {
	return slices.Clone(s.toRedraw.Rects())
}

// Clip returns the current clip rectangle.
func (s *Surface) Clip() image.Rectangle {
	if n := len(s.clips); n > 0 {
		return s.clips[n-1]
	}
	return s.rect
}

// PushClip restricts the current clip to r until the matching PopClip.
func (s *Surface) PushClip(r image.Rectangle) {
	s.clips = append(s.clips, s.Clip().Intersect(r))
}

// PushClipRect pushes the pixels covered by r transformed by m.
func (s *Surface) PushClipRect(r geom.Rect, m geom.Matrix) {
	s.PushClip(m.TransformRect(r).Pixels(0))
}

// PopClip restores the clip active before the last PushClip.
func (s *Surface) PopClip() {
	if n := len(s.clips); n > 0 {
		s.clips = s.clips[:n-1]
	}
}

// SetBackground sets the paint cleared into dirty regions. nil clears to
// transparent. Binding, unbinding or changing the background repaints the
// whole surface.
func (s *Surface) SetBackground(p *Paint) {
	s.background = p
}

// Background returns the background paint.
func (s *Surface) Background() *Paint {
	return s.background
}

// RequestFullRedraw makes the next frame repaint the whole surface.
func (s *Surface) RequestFullRedraw() {
	s.forceDirect = true
}

// Resize resizes the device and repaints everything on the next frame.
func (s *Surface) Resize(width, height int) error {
	rd, ok := s.dev.(device.Resizable)
	if !ok {
		return ErrNotResizable
	}
	if err := rd.Resize(width, height); err != nil {
		return fmt.Errorf("repaint: resize: %w", err)
	}
	s.rect = s.dev.Bounds()
	s.pending.Clear()
	s.forceDirect = true
	return nil
}

// AllocateCommand returns the next command of the display list. It returns
// nil when the pool is exhausted; the primitive is then skipped for this
// frame.
func (s *Surface) AllocateCommand() *RenderCommand {
	if !s.inFrame {
		Logger().Warn("repaint: AllocateCommand", slog.Any("err", ErrNotInFrame))
		return nil
	}
	cmd := s.pool.allocate(s)
	if cmd == nil {
		s.cur.Dropped++
		Logger().Warn("repaint: primitive skipped",
			slog.Any("err", ErrPoolExhausted),
			slog.Int("limit", s.cfg.MaxCommands))
	}
	return cmd
}

// FinalizeBounds computes and records the bound of cmd: local transformed
// by m, grown by half the stroke width scaled by m, rounded outward and
// padded by the anti-aliasing margin, then clipped to the current clip.
// It reports whether the command has a non-empty bound this frame.
func (s *Surface) FinalizeBounds(cmd *RenderCommand, local geom.Rect, m geom.Matrix, strokeWidth float64) bool {
	if cmd == nil || cmd.renderable == nil {
		return false
	}
	if cmd.Part.IsEmpty() {
		cmd.slot = -1
		return false
	}
	cmd.Transform = m

	unclip := m.TransformRect(local)
	if strokeWidth > 0 {
		unclip = unclip.Inflate(strokeWidth * m.LineScale() / 2)
	}
	margin := s.cfg.AntialiasMargin
	if !cmd.Paint.Antialias() {
		margin = 0
	}
	clip := unclip.Pixels(margin).Intersect(s.Clip())
	if !s.FinalizeBoundsRect(cmd, unclip, clip) {
		return false
	}

	// Only the default painter is known to fill a solid part opaquely.
	if s.cfg.OcclusionCulling && cmd.Part.Solid && !cmd.renderable.overlay &&
		cmd.renderable.painter == nil && cmd.Paint.IsOpaque() && m.IsAxisAligned() {
		cmd.cover = m.TransformRect(local).InnerPixels().Intersect(clip)
	}
	return true
}

// FinalizeBoundsRect records a precomputed bound for cmd. clip must lie
// inside the current clip; builds with the repaintdebug tag panic
// otherwise, release builds clamp it.
func (s *Surface) FinalizeBoundsRect(cmd *RenderCommand, unclip geom.Rect, clip image.Rectangle) bool {
	if cmd == nil || cmd.renderable == nil || cmd.reg == nil {
		return false
	}
	cmd.slot = -1
	if cur := s.Clip(); !clip.In(cur) {
		err := fmt.Errorf("%w: %v not in %v", ErrClipOutside, clip, cur)
		if debugAssertions {
			panic(err)
		}
		Logger().Error("repaint: clamping bound", slog.Any("err", err))
		clip = clip.Intersect(cur)
	}
	if clip.Empty() {
		return false
	}

	reg := cmd.reg
	reg.flush(s.frame, s.mode)
	rec := BoundRecord{Clip: clip, Unclip: unclip, Identity: cmd.identity()}
	slot, err := reg.chain.write(rec, s.cfg.MaxBounds)
	if err != nil {
		s.cur.Dropped++
		Logger().Warn("repaint: primitive skipped",
			slog.Any("err", err),
			slog.Int("limit", s.cfg.MaxBounds))
		return false
	}
	cmd.slot = slot
	cmd.clip = clip
	reg.emitted = s.frame
	return true
}

// Pick returns the topmost renderable whose current bound contains the
// pixel (x, y), or nil. Overlays are above everything else.
func (s *Surface) Pick(x, y int) *Renderable {
	pt := image.Pt(x, y)
	center := geom.Pt(float64(x)+0.5, float64(y)+0.5)
	cmds := s.pool.list()
	for _, overlay := range []bool{true, false} {
		for i := len(cmds) - 1; i >= 0; i-- {
			c := cmds[i]
			if !c.visible() || c.renderable.overlay != overlay {
				continue
			}
			rec, ok := c.Bound()
			if ok && pt.In(rec.Clip) && rec.Unclip.Contains(center) {
				return c.renderable
			}
		}
	}
	return nil
}

// Close detaches every renderable from the surface. The device is not
// closed.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	for _, r := range s.prevNodes {
		r.unregister(s)
	}
	for _, c := range s.pool.nodes {
		if c.renderable != nil {
			c.renderable.unregister(s)
		}
		c.reset()
	}
	s.prevNodes = nil
	s.pool.nodes = nil
	s.pool.active = 0
	s.inFrame = false
	s.closed = true
	return nil
}

// CheckInvariants verifies the bookkeeping of the last completed frame:
// the drawn list holds exactly the renderables with a bound on this
// surface, chains do not alias, bounds lie inside the surface, and dirty
// regions do not overlap.
func (s *Surface) CheckInvariants() error {
	if s.inFrame {
		return errors.New("repaint: invariants checked during a frame")
	}
	var errs []error
	drawn := make(map[*Renderable]bool)
	for _, c := range s.pool.list() {
		if c.visible() {
			drawn[c.renderable] = true
		}
	}
	seen := make(map[*Renderable]bool, len(s.prevNodes))
	for _, r := range s.prevNodes {
		if seen[r] {
			errs = append(errs, fmt.Errorf("renderable %p listed twice", r))
		}
		seen[r] = true
		reg := r.lookup(s)
		switch {
		case r.destroyed:
			errs = append(errs, fmt.Errorf("destroyed renderable %p still listed", r))
		case reg == nil:
			errs = append(errs, fmt.Errorf("listed renderable %p not registered", r))
		case len(reg.chain.live()) == 0:
			errs = append(errs, fmt.Errorf("listed renderable %p has no bound", r))
		}
		if !drawn[r] {
			errs = append(errs, fmt.Errorf("listed renderable %p not in display list", r))
		}
	}
	for r := range drawn {
		if !seen[r] {
			errs = append(errs, fmt.Errorf("drawn renderable %p not listed", r))
		}
		reg := r.lookup(s)
		if reg == nil {
			continue
		}
		if reg.chain.shared() {
			errs = append(errs, fmt.Errorf("renderable %p: current and previous chains alias", r))
		}
		for _, b := range reg.chain.live() {
			if !b.Clip.In(s.rect) {
				errs = append(errs, fmt.Errorf("renderable %p: bound %v outside surface", r, b.Clip))
			}
		}
	}
	if s.toRedraw.Overlapping() {
		errs = append(errs, errors.New("dirty regions overlap"))
	}
	return errors.Join(errs...)
}

// invalidate marks r dirty, in the current frame or the next one.
func (s *Surface) invalidate(r image.Rectangle) {
	if s.inFrame {
		s.addDirty(r)
		return
	}
	if err := s.pending.UnionAdd(r.Intersect(s.rect)); err != nil {
		s.forceDirect = true
	}
}

// forget removes r from the drawn list.
func (s *Surface) forget(r *Renderable) {
	s.prevNodes = slices.DeleteFunc(s.prevNodes, func(n *Renderable) bool { return n == r })
}

// addDirty adds r to the dirty set. A full set, or more regions than the
// threshold, promotes the frame to a whole-surface repaint.
func (s *Surface) addDirty(r image.Rectangle) {
	if s.full {
		return
	}
	r = r.Intersect(s.rect)
	if r.Empty() {
		return
	}
	if err := s.toRedraw.UnionAdd(r); err != nil {
		Logger().Debug("repaint: region set full", slog.Any("err", err))
		s.markFull()
		return
	}
	if s.toRedraw.Len() > region.Threshold(s.rect, s.cfg.MinRegionSize) {
		s.markFull()
	}
}

func (s *Surface) markFull() {
	s.toRedraw.Reset(s.rect)
	s.full = true
}

func (s *Surface) backgroundColor() color.Color {
	if s.background == nil || s.background.Fill() == nil {
		return color.Transparent
	}
	return scaleAlpha(s.background.Fill(), s.background.Alpha())
}
