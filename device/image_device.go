// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// strokeSegments is the number of line segments each curve is split into
// before stroking.
const strokeSegments = 16

// ImageDevice is a CPU device that renders to an *image.RGBA.
//
// Path coverage comes from golang.org/x/image/vector, which always
// anti-aliases and implements the non-zero winding rule.
//
// Example:
//
//	d := device.NewImageDevice(800, 600)
//	defer d.Close()
//
//	d.Clear(d.Bounds(), color.White)
//	p := device.NewPath().Circle(400, 300, 100)
//	d.Fill(p, d.Bounds(), device.FillStyle{Color: color.RGBA{255, 0, 0, 255}})
type ImageDevice struct {
	img *image.RGBA
	ras *vector.Rasterizer

	// closed tracks if Close has been called
	closed bool
}

// NewImageDevice creates a new CPU device with the given dimensions.
func NewImageDevice(width, height int) *ImageDevice {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &ImageDevice{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		ras: vector.NewRasterizer(width, height),
	}
}

// NewImageDeviceFromImage creates a device backed by an existing image.
// The image must be anchored at (0, 0).
func NewImageDeviceFromImage(img *image.RGBA) *ImageDevice {
	b := img.Bounds()
	return &ImageDevice{
		img: img,
		ras: vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// Bounds returns the device rectangle.
func (d *ImageDevice) Bounds() image.Rectangle {
	return d.img.Bounds()
}

// Image returns the backing image. Drawing calls modify it in place.
func (d *ImageDevice) Image() *image.RGBA {
	return d.img
}

// Clear replaces every pixel of r with c.
func (d *ImageDevice) Clear(r image.Rectangle, c color.Color) {
	if d.closed {
		return
	}
	r = r.Intersect(d.img.Bounds())
	if r.Empty() {
		return
	}
	if c == nil {
		c = color.Transparent
	}
	draw.Draw(d.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// Fill fills the given path within clip.
func (d *ImageDevice) Fill(path *Path, clip image.Rectangle, style FillStyle) {
	if d.closed || path.IsEmpty() || style.Color == nil {
		return
	}
	clip = clip.Intersect(d.img.Bounds()).Intersect(path.PixelBounds())
	if clip.Empty() {
		return
	}

	d.beginMask(clip)
	ox, oy := float32(clip.Min.X), float32(clip.Min.Y)
	path.Walk(func(v Verb, pts []float32) {
		switch v {
		case VerbMoveTo:
			d.ras.ClosePath()
			d.ras.MoveTo(pts[0]-ox, pts[1]-oy)
		case VerbLineTo:
			d.ras.LineTo(pts[0]-ox, pts[1]-oy)
		case VerbQuadTo:
			d.ras.QuadTo(pts[0]-ox, pts[1]-oy, pts[2]-ox, pts[3]-oy)
		case VerbCubicTo:
			d.ras.CubeTo(pts[0]-ox, pts[1]-oy, pts[2]-ox, pts[3]-oy, pts[4]-ox, pts[5]-oy)
		case VerbClose:
			d.ras.ClosePath()
		}
	})
	d.ras.ClosePath()
	d.ras.Draw(d.img, clip, image.NewUniform(style.Color), image.Point{})
}

// Stroke strokes the given path within clip.
//
// Each flattened segment becomes a quad and each vertex a square join cap,
// all wound the same way so that overlaps saturate instead of cancelling.
func (d *ImageDevice) Stroke(path *Path, clip image.Rectangle, style StrokeStyle) {
	if d.closed || path.IsEmpty() || style.Color == nil || style.Width <= 0 {
		return
	}
	hw := float32(style.Width / 2)
	pad := int(math.Ceil(style.Width/2)) + 1
	clip = clip.Intersect(d.img.Bounds()).Intersect(path.PixelBounds().Inset(-pad))
	if clip.Empty() {
		return
	}

	d.beginMask(clip)
	ox, oy := float32(clip.Min.X), float32(clip.Min.Y)
	lines, _ := path.Flatten(strokeSegments)
	for _, pts := range lines {
		for i := 0; i+3 < len(pts); i += 2 {
			x0, y0 := pts[i]-ox, pts[i+1]-oy
			x1, y1 := pts[i+2]-ox, pts[i+3]-oy
			d.segmentQuad(x0, y0, x1, y1, hw)
		}
		for i := 0; i+1 < len(pts); i += 2 {
			d.square(pts[i]-ox, pts[i+1]-oy, hw)
		}
	}
	d.ras.Draw(d.img, clip, image.NewUniform(style.Color), image.Point{})
}

// DrawImage composites img transformed by m within clip.
func (d *ImageDevice) DrawImage(img image.Image, m f64.Aff3, clip image.Rectangle, opts ImageOptions) {
	if d.closed || img == nil {
		return
	}
	clip = clip.Intersect(d.img.Bounds())
	if clip.Empty() || opts.Alpha <= 0 {
		return
	}

	src := img
	sb := img.Bounds()
	if opts.Tint != nil || opts.Alpha < 1 {
		tinted := image.NewRGBA(sb)
		if opts.Tint != nil {
			draw.DrawMask(tinted, sb, image.NewUniform(opts.Tint), image.Point{}, img, sb.Min, draw.Src)
		} else {
			draw.Draw(tinted, sb, img, sb.Min, draw.Src)
		}
		if opts.Alpha < 1 {
			a := uint8(math.Round(math.Max(0, opts.Alpha) * 255))
			faded := image.NewRGBA(sb)
			draw.DrawMask(faded, sb, tinted, sb.Min, image.NewUniform(color.Alpha{A: a}), image.Point{}, draw.Src)
			tinted = faded
		}
		src = tinted
	}

	dst, ok := d.img.SubImage(clip).(*image.RGBA)
	if !ok {
		return
	}
	var interp draw.Interpolator = draw.NearestNeighbor
	if opts.Smooth {
		interp = draw.ApproxBiLinear
	}
	interp.Transform(dst, m, src, sb, draw.Over, nil)
}

// Flush is a no-op for CPU devices.
func (d *ImageDevice) Flush() error {
	return nil
}

// Snapshot returns a copy of the current pixels.
func (d *ImageDevice) Snapshot() *image.RGBA {
	out := image.NewRGBA(d.img.Bounds())
	copy(out.Pix, d.img.Pix)
	return out
}

// Resize replaces the backing image with a new transparent one.
func (d *ImageDevice) Resize(width, height int) error {
	if d.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	d.img = image.NewRGBA(image.Rect(0, 0, width, height))
	d.ras = vector.NewRasterizer(width, height)
	return nil
}

// Close releases the backing image. Close is idempotent.
func (d *ImageDevice) Close() error {
	d.closed = true
	return nil
}

func (d *ImageDevice) beginMask(clip image.Rectangle) {
	d.ras.Reset(clip.Dx(), clip.Dy())
	d.ras.DrawOp = draw.Over
}

// segmentQuad adds the rectangle of half-width hw around the segment,
// wound clockwise in device space.
func (d *ImageDevice) segmentQuad(x0, y0, x1, y1, hw float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	ax, ay := x0+nx, y0+ny
	bx, by := x1+nx, y1+ny
	cx, cy := x1-nx, y1-ny
	ex, ey := x0-nx, y0-ny
	if cross(ax, ay, bx, by, cx, cy) < 0 {
		ax, ay, ex, ey = ex, ey, ax, ay
		bx, by, cx, cy = cx, cy, bx, by
	}
	d.ras.MoveTo(ax, ay)
	d.ras.LineTo(bx, by)
	d.ras.LineTo(cx, cy)
	d.ras.LineTo(ex, ey)
	d.ras.ClosePath()
}

// square adds an axis-aligned square join, wound like segmentQuad.
func (d *ImageDevice) square(x, y, hw float32) {
	d.ras.MoveTo(x-hw, y-hw)
	d.ras.LineTo(x+hw, y-hw)
	d.ras.LineTo(x+hw, y+hw)
	d.ras.LineTo(x-hw, y+hw)
	d.ras.ClosePath()
}

func cross(ax, ay, bx, by, cx, cy float32) float32 {
	return (bx-ax)*(cy-by) - (by-ay)*(cx-bx)
}

var _ Resizable = (*ImageDevice)(nil)
