// Package repaint implements the incremental repaint engine of a
// retained-mode 2D compositor.
//
// # Overview
//
// Once per frame a traversal driver walks the scene and emits one
// [RenderCommand] per visible primitive. Each command records where its
// [Renderable] lands on the [Surface] this frame (a [BoundRecord]). The
// Surface compares those records with the ones kept from the previous frame,
// collects every changed area into a set of non-overlapping dirty
// rectangles, and repaints only the commands touching that set.
//
// # Frame cycle
//
//	s := repaint.NewSurface(dev, repaint.DefaultConfig())
//
//	s.BeginFrame()
//	for each visible primitive {
//	    cmd := s.AllocateCommand()
//	    if cmd == nil {
//	        continue // pool exhausted, primitive skipped this frame
//	    }
//	    cmd.Bind(renderable, paint, part)
//	    s.FinalizeBounds(cmd, part.Bounds, transform, paint.StrokeWidth())
//	}
//	stats := s.EndFrame()
//	if !stats.Changed {
//	    // nothing to present
//	}
//
// Package scene provides a ready-made driver for simple node trees.
//
// # Repaint modes
//
//   - [ModeIndirect]: only the dirty region set is repainted (default).
//   - [ModeDirect]: one frame is repainted entirely, see [Surface.RequestFullRedraw].
//   - [ModeDirectPersistent]: every frame is repainted entirely, see [Config].
//
// # Threading
//
// A Surface and the Renderables drawn on it are NOT safe for concurrent
// use. Separate Surfaces may run frames on separate goroutines as long as
// the renderables they share are not mutated meanwhile.
//
// # Errors
//
// Frame operations never fail. Pool, chain and region limits are recovered
// locally: the affected primitive is skipped (or the frame is promoted to a
// full repaint) and the condition is logged through [Logger].
package repaint
