// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// Verb is a path construction command.
type Verb uint8

const (
	// VerbMoveTo starts a new subpath. Consumes 1 point.
	VerbMoveTo Verb = iota
	// VerbLineTo draws a line. Consumes 1 point.
	VerbLineTo
	// VerbQuadTo draws a quadratic Bezier. Consumes 2 points.
	VerbQuadTo
	// VerbCubicTo draws a cubic Bezier. Consumes 3 points.
	VerbCubicTo
	// VerbClose closes the current subpath. Consumes 0 points.
	VerbClose
)

// points returns the number of points consumed by the verb.
func (v Verb) points() int {
	switch v {
	case VerbMoveTo, VerbLineTo:
		return 1
	case VerbQuadTo:
		return 2
	case VerbCubicTo:
		return 3
	default:
		return 0
	}
}

// Path represents a vector path for drawing operations.
//
// Example:
//
//	p := device.NewPath()
//	p.MoveTo(100, 100)
//	p.LineTo(200, 100)
//	p.LineTo(150, 200)
//	p.Close()
type Path struct {
	verbs  []Verb
	points []float32
	start  [2]float32

	// bounds is the control-point bounding box; valid when hasBounds.
	minX, minY, maxX, maxY float32
	hasBounds              bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]Verb, 0, 16),
		points: make([]float32, 0, 64),
	}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) *Path {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.addPoint(float32(x), float32(y))
	p.start = [2]float32{float32(x), float32(y)}
	return p
}

// LineTo adds a line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	if len(p.verbs) == 0 {
		return p.MoveTo(x, y)
	}
	p.verbs = append(p.verbs, VerbLineTo)
	p.addPoint(float32(x), float32(y))
	return p
}

// QuadTo adds a quadratic Bezier curve from the current point.
// (cx, cy) is the control point, (x, y) is the endpoint.
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	if len(p.verbs) == 0 {
		p.MoveTo(cx, cy)
	}
	p.verbs = append(p.verbs, VerbQuadTo)
	p.addPoint(float32(cx), float32(cy))
	p.addPoint(float32(x), float32(y))
	return p
}

// CubicTo adds a cubic Bezier curve from the current point.
// (c1x, c1y) and (c2x, c2y) are control points, (x, y) is the endpoint.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	if len(p.verbs) == 0 {
		p.MoveTo(c1x, c1y)
	}
	p.verbs = append(p.verbs, VerbCubicTo)
	p.addPoint(float32(c1x), float32(c1y))
	p.addPoint(float32(c2x), float32(c2y))
	p.addPoint(float32(x), float32(y))
	return p
}

// Close closes the current subpath by connecting to the start point.
func (p *Path) Close() *Path {
	if len(p.verbs) == 0 {
		return p
	}
	p.verbs = append(p.verbs, VerbClose)
	return p
}

// Rectangle adds a rectangle subpath.
func (p *Path) Rectangle(x, y, w, h float64) *Path {
	return p.MoveTo(x, y).
		LineTo(x+w, y).
		LineTo(x+w, y+h).
		LineTo(x, y+h).
		Close()
}

// RoundedRectangle adds a rounded rectangle subpath.
func (p *Path) RoundedRectangle(x, y, w, h, r float64) *Path {
	// Clamp radius to half the minimum dimension
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return p.Rectangle(x, y, w, h)
	}

	// k = 4 * (sqrt(2) - 1) / 3 approximates a quarter circle with a cubic.
	kr := 0.5522847498 * r

	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.CubicTo(x+w-r+kr, y, x+w, y+r-kr, x+w, y+r)
	p.LineTo(x+w, y+h-r)
	p.CubicTo(x+w, y+h-r+kr, x+w-r+kr, y+h, x+w-r, y+h)
	p.LineTo(x+r, y+h)
	p.CubicTo(x+r-kr, y+h, x, y+h-r+kr, x, y+h-r)
	p.LineTo(x, y+r)
	p.CubicTo(x, y+r-kr, x+r-kr, y, x+r, y)
	return p.Close()
}

// Ellipse adds an ellipse subpath.
func (p *Path) Ellipse(cx, cy, rx, ry float64) *Path {
	kx := 0.5522847498 * rx
	ky := 0.5522847498 * ry

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	return p.Close()
}

// Circle adds a circle subpath.
func (p *Path) Circle(cx, cy, r float64) *Path {
	return p.Ellipse(cx, cy, r, r)
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.start = [2]float32{}
	p.hasBounds = false
}

// IsEmpty returns true if the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.verbs) == 0
}

// Verbs returns the verb stream.
func (p *Path) Verbs() []Verb {
	return p.verbs
}

// Points returns the point data stream (x, y pairs).
func (p *Path) Points() []float32 {
	return p.points
}

// Bounds returns the control-point bounding box as (minX, minY, maxX, maxY).
// This is a conservative approximation of the painted area.
// ok is false for an empty path.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if p.IsEmpty() || !p.hasBounds {
		return 0, 0, 0, 0, false
	}
	return float64(p.minX), float64(p.minY), float64(p.maxX), float64(p.maxY), true
}

// PixelBounds returns the integer rectangle covering Bounds.
func (p *Path) PixelBounds() image.Rectangle {
	x0, y0, x1, y1, ok := p.Bounds()
	if !ok {
		return image.Rectangle{}
	}
	return image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1)))
}

// Transform returns a new path with all points transformed by m.
func (p *Path) Transform(m f64.Aff3) *Path {
	result := &Path{
		verbs:  make([]Verb, len(p.verbs)),
		points: make([]float32, 0, len(p.points)),
	}
	copy(result.verbs, p.verbs)
	for i := 0; i+1 < len(p.points); i += 2 {
		x, y := float64(p.points[i]), float64(p.points[i+1])
		result.addPoint(
			float32(m[0]*x+m[1]*y+m[2]),
			float32(m[3]*x+m[4]*y+m[5]),
		)
	}
	sx, sy := float64(p.start[0]), float64(p.start[1])
	result.start = [2]float32{float32(m[0]*sx + m[1]*sy + m[2]), float32(m[3]*sx + m[4]*sy + m[5])}
	return result
}

// Walk calls fn for every verb with its points.
// pts aliases internal storage and is valid only during the call.
func (p *Path) Walk(fn func(v Verb, pts []float32)) {
	i := 0
	for _, v := range p.verbs {
		n := v.points() * 2
		if i+n > len(p.points) {
			return
		}
		fn(v, p.points[i:i+n])
		i += n
	}
}

// Flatten converts the path to polylines, subdividing curves into
// segments. closed reports whether each polyline ends with a Close.
func (p *Path) Flatten(segments int) (lines [][]float32, closed []bool) {
	if segments < 1 {
		segments = 1
	}
	var cur []float32
	var cx, cy, sx, sy float32
	flush := func(c bool) {
		if len(cur) >= 4 {
			lines = append(lines, cur)
			closed = append(closed, c)
		}
		cur = nil
	}
	p.Walk(func(v Verb, pts []float32) {
		switch v {
		case VerbMoveTo:
			flush(false)
			cx, cy = pts[0], pts[1]
			sx, sy = cx, cy
			cur = append(cur, cx, cy)
		case VerbLineTo:
			cx, cy = pts[0], pts[1]
			cur = append(cur, cx, cy)
		case VerbQuadTo:
			for i := 1; i <= segments; i++ {
				t := float32(i) / float32(segments)
				mt := 1 - t
				x := mt*mt*cx + 2*mt*t*pts[0] + t*t*pts[2]
				y := mt*mt*cy + 2*mt*t*pts[1] + t*t*pts[3]
				cur = append(cur, x, y)
			}
			cx, cy = pts[2], pts[3]
		case VerbCubicTo:
			for i := 1; i <= segments; i++ {
				t := float32(i) / float32(segments)
				mt := 1 - t
				a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
				x := a*cx + b*pts[0] + c*pts[2] + d*pts[4]
				y := a*cy + b*pts[1] + c*pts[3] + d*pts[5]
				cur = append(cur, x, y)
			}
			cx, cy = pts[4], pts[5]
		case VerbClose:
			flush(true)
			cx, cy = sx, sy
			cur = append(cur, cx, cy)
		}
	})
	flush(false)
	return lines, closed
}

func (p *Path) addPoint(x, y float32) {
	p.points = append(p.points, x, y)
	if !p.hasBounds {
		p.minX, p.minY, p.maxX, p.maxY = x, y, x, y
		p.hasBounds = true
		return
	}
	p.minX = min(p.minX, x)
	p.minY = min(p.minY, y)
	p.maxX = max(p.maxX, x)
	p.maxY = max(p.maxY, y)
}
