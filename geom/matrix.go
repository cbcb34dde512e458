// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Multiply multiplies two matrices (m * other).
// The result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformRect returns the axis-aligned bounds of r after transformation.
func (m Matrix) TransformRect(r Rect) Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	if m.IsTranslation() {
		return Rect{
			Min: Point{X: r.Min.X + m.C, Y: r.Min.Y + m.F},
			Max: Point{X: r.Max.X + m.C, Y: r.Max.Y + m.F},
		}
	}
	p := m.TransformPoint(r.Min)
	out := Rect{Min: p, Max: p}
	out = out.UnionPoint(m.TransformPoint(Point{X: r.Max.X, Y: r.Min.Y}))
	out = out.UnionPoint(m.TransformPoint(Point{X: r.Min.X, Y: r.Max.Y}))
	return out.UnionPoint(m.TransformPoint(r.Max))
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsTranslation returns true if the matrix is only a translation.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// IsAxisAligned reports whether the matrix maps axis-aligned rectangles to
// axis-aligned rectangles (scale and translation only).
func (m Matrix) IsAxisAligned() bool {
	return m.B == 0 && m.D == 0
}

// LineScale returns the largest singular value of the linear part of m.
// A stroke of width w drawn under m covers at most w*LineScale() device
// pixels across, also for non-uniform scales.
func (m Matrix) LineScale() float64 {
	if m.IsAxisAligned() {
		return math.Max(math.Abs(m.A), math.Abs(m.E))
	}
	s := m.A*m.A + m.B*m.B + m.D*m.D + m.E*m.E
	det := m.A*m.E - m.B*m.D
	disc := s*s - 4*det*det
	if disc < 0 {
		disc = 0
	}
	return math.Sqrt((s + math.Sqrt(disc)) / 2)
}

// Aff3 returns the matrix in the layout used by golang.org/x/image/draw.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
