// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"image"
	"testing"

	"golang.org/x/image/math/f64"
)

func TestPathBounds(t *testing.T) {
	p := NewPath().Rectangle(10, 20, 30, 40)
	x0, y0, x1, y1, ok := p.Bounds()
	if !ok {
		t.Fatal("Bounds() ok = false, want true")
	}
	if x0 != 10 || y0 != 20 || x1 != 40 || y1 != 60 {
		t.Errorf("Bounds() = (%v,%v,%v,%v), want (10,20,40,60)", x0, y0, x1, y1)
	}
	if got, want := p.PixelBounds(), image.Rect(10, 20, 40, 60); got != want {
		t.Errorf("PixelBounds() = %v, want %v", got, want)
	}
}

func TestPathEmpty(t *testing.T) {
	var nilPath *Path
	if !nilPath.IsEmpty() {
		t.Error("nil path IsEmpty() = false, want true")
	}
	p := NewPath()
	if _, _, _, _, ok := p.Bounds(); ok {
		t.Error("empty path Bounds() ok = true, want false")
	}
	p.Rectangle(0, 0, 1, 1)
	p.Clear()
	if !p.IsEmpty() {
		t.Error("IsEmpty() after Clear = false, want true")
	}
}

func TestPathTransform(t *testing.T) {
	p := NewPath().Rectangle(0, 0, 10, 10)
	q := p.Transform(f64.Aff3{2, 0, 5, 0, 3, -5})
	if got, want := q.PixelBounds(), image.Rect(5, -5, 25, 25); got != want {
		t.Errorf("PixelBounds() = %v, want %v", got, want)
	}
	// The original is unchanged.
	if got, want := p.PixelBounds(), image.Rect(0, 0, 10, 10); got != want {
		t.Errorf("original PixelBounds() = %v, want %v", got, want)
	}
}

func TestFlatten(t *testing.T) {
	p := NewPath().MoveTo(0, 0).LineTo(10, 0).QuadTo(20, 0, 20, 10).Close()
	lines, closed := p.Flatten(4)
	if len(lines) != 1 {
		t.Fatalf("Flatten() returned %d polylines, want 1", len(lines))
	}
	// 1 move + 1 line + 4 quad segments.
	if got := len(lines[0]) / 2; got != 6 {
		t.Errorf("polyline has %d points, want 6", got)
	}
	if !closed[0] {
		t.Error("closed[0] = false, want true")
	}
	n := len(lines[0])
	if lines[0][n-2] != 20 || lines[0][n-1] != 10 {
		t.Errorf("last point = (%v,%v), want (20,10)", lines[0][n-2], lines[0][n-1])
	}
}

func TestCircleBounds(t *testing.T) {
	p := NewPath().Circle(50, 50, 10)
	if got, want := p.PixelBounds(), image.Rect(40, 40, 60, 60); got != want {
		t.Errorf("PixelBounds() = %v, want %v", got, want)
	}
}
