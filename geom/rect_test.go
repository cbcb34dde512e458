// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"image"
	"math"
	"testing"
)

func TestPixels(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		margin int
		want   image.Rectangle
	}{
		{"integral", XYWH(10, 10, 16, 16), 0, image.Rect(10, 10, 26, 26)},
		{"integral with margin", XYWH(10, 10, 16, 16), 1, image.Rect(9, 9, 27, 27)},
		{"fractional", NewRect(Pt(0.5, 1.2), Pt(3.1, 4.9)), 0, image.Rect(0, 1, 4, 5)},
		{"negative", NewRect(Pt(-2.5, -0.1), Pt(1, 1)), 2, image.Rect(-5, -3, 3, 3)},
		{"empty", Rect{}, 2, image.Rectangle{}},
		{"infinite", Rect{Min: Pt(0, 0), Max: Pt(math.Inf(1), 1)}, 0, image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Pixels(tt.margin); got != tt.want {
				t.Errorf("Pixels(%d) = %v, want %v", tt.margin, got, tt.want)
			}
		})
	}
}

func TestInnerPixels(t *testing.T) {
	r := NewRect(Pt(0.5, 0.5), Pt(10.5, 3.9))
	if got, want := r.InnerPixels(), image.Rect(1, 1, 10, 3); got != want {
		t.Errorf("InnerPixels() = %v, want %v", got, want)
	}
	thin := NewRect(Pt(0.2, 0), Pt(0.8, 10))
	if got := thin.InnerPixels(); !got.Empty() {
		t.Errorf("InnerPixels() of thin rect = %v, want empty", got)
	}
}

func TestUnionIgnoresEmpty(t *testing.T) {
	r := XYWH(1, 2, 3, 4)
	if got := r.Union(Rect{}); got != r {
		t.Errorf("Union(empty) = %+v, want %+v", got, r)
	}
	if got := (Rect{}).Union(r); got != r {
		t.Errorf("empty.Union(r) = %+v, want %+v", got, r)
	}
}
