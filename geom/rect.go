// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"image"
	"math"
)

// Rect represents an axis-aligned rectangle with real-valued coordinates.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// XYWH creates a rectangle from its origin and size.
func XYWH(x, y, w, h float64) Rect {
	return NewRect(Pt(x, y), Pt(x+w, y+h))
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// IsEmpty reports whether the rectangle has no area.
// NaN coordinates count as empty.
func (r Rect) IsEmpty() bool {
	return !(r.Max.X > r.Min.X) || !(r.Max.Y > r.Min.Y)
}

// Union returns the smallest rectangle containing both r and other.
// An empty operand is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// UnionPoint grows the rectangle to include p.
func (r Rect) UnionPoint(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Inflate grows the rectangle by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Pixels returns the smallest integer rectangle covering r, padded by
// margin pixels on every side. An empty or non-finite r yields the zero
// rectangle.
func (r Rect) Pixels(margin int) image.Rectangle {
	if r.IsEmpty() || !finite(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y) {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.Min.X))-margin,
		int(math.Floor(r.Min.Y))-margin,
		int(math.Ceil(r.Max.X))+margin,
		int(math.Ceil(r.Max.Y))+margin,
	)
}

// InnerPixels returns the largest integer rectangle fully inside r.
func (r Rect) InnerPixels() image.Rectangle {
	if r.IsEmpty() || !finite(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y) {
		return image.Rectangle{}
	}
	in := image.Rect(
		int(math.Ceil(r.Min.X)),
		int(math.Ceil(r.Min.Y)),
		int(math.Floor(r.Max.X)),
		int(math.Floor(r.Max.Y)),
	)
	if in.Empty() {
		return image.Rectangle{}
	}
	return in
}

// FromImageRect converts an integer rectangle to a Rect.
func FromImageRect(r image.Rectangle) Rect {
	return Rect{
		Min: Point{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		Max: Point{X: float64(r.Max.X), Y: float64(r.Max.Y)},
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
