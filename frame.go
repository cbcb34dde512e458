package repaint

import (
	"image"
	"log/slog"
	"slices"

	"github.com/gogpu/repaint/region"
)

// FrameStats describes one completed frame.
type FrameStats struct {
	Frame uint64
	Mode  Mode

	// Changed is false for an idle frame: nothing was painted and the
	// device needs no present.
	Changed bool

	// FullRedraw reports that the whole surface was repainted.
	FullRedraw bool

	// Regions is the dirty region set after merging.
	Regions []image.Rectangle

	// Commands is the length of the display list.
	Commands int
	// Painted counts commands painted in at least one region.
	Painted int
	// Occluded counts command/region pairs skipped below an opaque cover.
	Occluded int
	// Removed counts renderables drawn last frame and not this one.
	Removed int
	// Drained counts stale bounds added to the dirty set.
	Drained int
	// Dropped counts primitives skipped on exhausted limits.
	Dropped int
	// Collected counts pooled commands freed at the end of the frame.
	Collected int
}

// DirtyArea returns the number of pixels in Regions.
func (st FrameStats) DirtyArea() int {
	n := 0
	for _, r := range st.Regions {
		n += r.Dx() * r.Dy()
	}
	return n
}

// LogValue implements slog.LogValuer.
func (st FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", st.Frame),
		slog.String("mode", st.Mode.String()),
		slog.Bool("changed", st.Changed),
		slog.Bool("full", st.FullRedraw),
		slog.Int("regions", len(st.Regions)),
		slog.Int("area", st.DirtyArea()),
		slog.Int("commands", st.Commands),
		slog.Int("painted", st.Painted),
		slog.Int("occluded", st.Occluded),
		slog.Int("removed", st.Removed),
		slog.Int("dropped", st.Dropped),
	)
}

// BeginFrame starts a frame: the display list is rewound, the dirty set
// cleared, and the repaint mode decided. Bound chains of every renderable
// drawn last frame are rotated; outside ModeIndirect the previous bounds
// are discarded and the whole surface is marked dirty.
//
// Calling BeginFrame while a frame is in progress completes that frame
// first.
func (s *Surface) BeginFrame() {
	if s.closed {
		Logger().Warn("repaint: BeginFrame on closed surface")
		return
	}
	if s.inFrame {
		Logger().Warn("repaint: BeginFrame during a frame, completing it")
		s.EndFrame()
	}

	s.frame++
	s.inFrame = true
	s.pool.rewind()
	s.toRedraw.Clear()
	s.full = false
	s.clips = s.clips[:0]

	s.mode = s.cfg.persistentMode()
	if s.mode == ModeIndirect && s.forceDirect {
		s.mode = ModeDirect
	}
	s.forceDirect = false
	s.cur = FrameStats{Frame: s.frame, Mode: s.mode}

	for _, r := range s.prevNodes {
		if !r.FlushBounds(s, s.mode) {
			Logger().Debug("repaint: listed renderable had no bound", slog.Uint64("frame", s.frame))
		}
	}

	if s.mode.IsDirect() {
		s.pending.Clear()
		s.markFull()
		return
	}
	for _, r := range s.pending.Rects() {
		s.addDirty(r)
	}
	s.pending.Clear()
}

// EndFrame reconciles the display list with the last frame, repaints the
// dirty regions and commits the bookkeeping for the next frame.
func (s *Surface) EndFrame() FrameStats {
	if !s.inFrame {
		Logger().Warn("repaint: EndFrame", slog.Any("err", ErrNotInFrame))
		return FrameStats{Frame: s.frame, Mode: s.mode}
	}
	cmds := s.pool.list()
	st := s.cur
	st.Commands = len(cmds)

	s.reconcile(cmds, &st)
	s.checkBackground()

	if !s.toRedraw.IsEmpty() {
		s.toRedraw.Refresh()
		if s.cfg.OcclusionCulling {
			s.computeHints(cmds)
		}
		s.repaint(cmds, &st)
		if err := s.dev.Flush(); err != nil {
			Logger().Error("repaint: device flush failed", slog.Any("err", err))
		}
		st.Changed = true
		st.FullRedraw = s.full
		st.Regions = slices.Clone(s.toRedraw.Rects())
	}

	s.commit(cmds)
	st.Collected = s.pool.collect()
	s.inFrame = false
	s.last = st
	return st
}

// reconcile marks changed commands dirty and drains the stale bounds of
// every renderable drawn last frame.
func (s *Surface) reconcile(cmds []*RenderCommand, st *FrameStats) {
	if s.mode.IsDirect() {
		return
	}
	for _, c := range cmds {
		if !c.visible() {
			continue
		}
		if !c.renderable.SameBoundsAsLastFrame(c, s) {
			c.needsRepaint = true
			s.addDirty(c.clip)
		}
	}
	for _, r := range s.prevNodes {
		reg := r.lookup(s)
		if reg == nil {
			continue
		}
		if reg.emitted != s.frame {
			st.Removed++
		}
		st.Drained += reg.chain.drain(s.addDirty)
	}
}

// checkBackground marks the whole surface dirty when the background was
// bound, unbound or changed since the last frame.
func (s *Surface) checkBackground() {
	bound := s.background != nil
	var tok Token
	if bound {
		tok = s.background.Token()
	}
	if bound != s.bgBound || tok != s.bgToken {
		s.markFull()
	}
	s.bgBound, s.bgToken = bound, tok
}

// computeHints records, for every dirty region, the topmost command whose
// opaque cover contains it.
func (s *Surface) computeHints(cmds []*RenderCommand) {
	s.toRedraw.ResetHints()
	for i := range s.toRedraw.Len() {
		r := s.toRedraw.At(i)
		for j := len(cmds) - 1; j >= 0; j-- {
			c := cmds[j]
			if c.visible() && !c.cover.Empty() && r.In(c.cover) {
				s.toRedraw.SetHint(i, j)
				break
			}
		}
	}
}

// repaint clears and repaints every dirty region. Regular commands are
// painted in emission order starting at the region's occlusion hint, then
// overlays.
func (s *Surface) repaint(cmds []*RenderCommand, st *FrameStats) {
	bg := s.backgroundColor()
	for i := range s.toRedraw.Len() {
		r := s.toRedraw.At(i)
		start := 0
		if hint := s.toRedraw.Hint(i); hint != region.NoHint {
			start = hint
		} else {
			s.dev.Clear(r, bg)
		}
		for j, c := range cmds {
			if !c.visible() || c.renderable.overlay {
				continue
			}
			clip := c.clip.Intersect(r)
			if clip.Empty() {
				continue
			}
			if j < start {
				st.Occluded++
				continue
			}
			s.paint(c, clip)
		}
		for _, c := range cmds {
			if !c.visible() || !c.renderable.overlay {
				continue
			}
			if clip := c.clip.Intersect(r); !clip.Empty() {
				s.paint(c, clip)
			}
		}
	}
	for _, c := range cmds {
		if c.painted {
			st.Painted++
		}
	}
}

func (s *Surface) paint(c *RenderCommand, clip image.Rectangle) {
	c.renderable.painterOrDefault().PaintCommand(s.dev, c, clip)
	c.painted = true
}

// commit rebuilds the drawn list from the display list and clears the
// per-frame flags.
func (s *Surface) commit(cmds []*RenderCommand) {
	for _, r := range s.prevNodes {
		if reg := r.lookup(s); reg != nil {
			reg.listed = false
		}
	}
	s.prevNodes = s.prevNodes[:0]
	for _, c := range cmds {
		c.needsRepaint = false
		if !c.visible() {
			continue
		}
		c.renderable.modified = false
		if c.reg.listed {
			continue
		}
		c.reg.listed = true
		s.prevNodes = append(s.prevNodes, c.renderable)
	}
}
