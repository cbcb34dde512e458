// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"image"
	"image/color"

	"golang.org/x/image/math/f64"
)

// OpKind identifies a recorded device operation.
type OpKind uint8

const (
	// OpClear is a Clear call.
	OpClear OpKind = iota
	// OpFill is a Fill call.
	OpFill
	// OpStroke is a Stroke call.
	OpStroke
	// OpImage is a DrawImage call.
	OpImage
)

// String returns the operation name.
func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFill:
		return "fill"
	case OpStroke:
		return "stroke"
	case OpImage:
		return "image"
	default:
		return "unknown"
	}
}

// Op is one recorded device operation.
type Op struct {
	Kind OpKind

	// Clip is the effective clip (already intersected with the device).
	Clip image.Rectangle

	// Color is the clear, fill, stroke or tint color.
	Color color.Color

	// Bounds is the pixel bounds of the path or transformed image.
	Bounds image.Rectangle
}

// Recorder is a Device that logs operations instead of touching pixels.
//
// Operations with an empty effective clip are not recorded, so the log
// shows exactly what would have reached a real device.
type Recorder struct {
	bounds image.Rectangle
	ops    []Op
	closed bool
}

// NewRecorder creates a recorder of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{bounds: image.Rect(0, 0, max(width, 1), max(height, 1))}
}

// Bounds returns the device rectangle.
func (r *Recorder) Bounds() image.Rectangle {
	return r.bounds
}

// Clear records a Clear call.
func (r *Recorder) Clear(rect image.Rectangle, c color.Color) {
	r.record(OpClear, rect, c, rect)
}

// Fill records a Fill call.
func (r *Recorder) Fill(path *Path, clip image.Rectangle, style FillStyle) {
	if path.IsEmpty() {
		return
	}
	r.record(OpFill, clip, style.Color, path.PixelBounds())
}

// Stroke records a Stroke call.
func (r *Recorder) Stroke(path *Path, clip image.Rectangle, style StrokeStyle) {
	if path.IsEmpty() {
		return
	}
	r.record(OpStroke, clip, style.Color, path.PixelBounds())
}

// DrawImage records a DrawImage call.
func (r *Recorder) DrawImage(img image.Image, m f64.Aff3, clip image.Rectangle, opts ImageOptions) {
	if img == nil {
		return
	}
	b := img.Bounds()
	p := NewPath().Rectangle(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy())).Transform(m)
	r.record(OpImage, clip, opts.Tint, p.PixelBounds())
}

// Ops returns the recorded operations.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Count returns the number of recorded operations of kind k.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Reset forgets all recorded operations.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// Flush is a no-op.
func (r *Recorder) Flush() error {
	return nil
}

// Snapshot returns nil: a recorder has no pixels.
func (r *Recorder) Snapshot() *image.RGBA {
	return nil
}

// Resize changes the recorded device bounds.
func (r *Recorder) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	r.bounds = image.Rect(0, 0, width, height)
	return nil
}

// Close marks the recorder closed. Close is idempotent.
func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

func (r *Recorder) record(k OpKind, clip image.Rectangle, c color.Color, b image.Rectangle) {
	if r.closed {
		return
	}
	clip = clip.Intersect(r.bounds)
	if clip.Empty() {
		return
	}
	r.ops = append(r.ops, Op{Kind: k, Clip: clip, Color: c, Bounds: b})
}

var _ Resizable = (*Recorder)(nil)
