// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package region implements the per-frame set of dirty screen rectangles.
//
// A [Set] holds integer rectangles that are kept pairwise non-overlapping
// by merging overlapping entries into their bounding union. The merge is
// deliberately simple (quadratic in the number of entries): a frame is
// expected to produce tens of regions, not thousands. Callers that see more
// regions than [Threshold] should repaint the whole surface instead.
//
// Touching rectangles do not overlap; a rectangle fully inside another
// still merges, leaving the larger one.
package region

import (
	"errors"
	"image"
)

// ErrFull is returned when a bounded Set cannot take another rectangle.
var ErrFull = errors.New("region: set is full")

// NoHint marks a region without a known opaque cover.
const NoHint = -1

// Set is a collection of non-overlapping integer rectangles.
//
// The zero value is an empty, unbounded Set ready to use.
// Set is NOT safe for concurrent use.
type Set struct {
	rects []image.Rectangle

	// hints maps each region to the display-list index of the topmost
	// opaque command known to cover it, or NoHint.
	hints []int

	// limit is the maximum number of entries, 0 = unlimited.
	limit int
}

// NewSet creates a Set that holds at most limit rectangles.
// A limit of zero or less means unlimited.
func NewSet(limit int) *Set {
	if limit < 0 {
		limit = 0
	}
	return &Set{limit: limit}
}

// Len returns the number of rectangles in the set.
func (s *Set) Len() int {
	return len(s.rects)
}

// IsEmpty reports whether the set holds no rectangles.
func (s *Set) IsEmpty() bool {
	return len(s.rects) == 0
}

// At returns the i-th rectangle.
func (s *Set) At(i int) image.Rectangle {
	return s.rects[i]
}

// Rects returns the rectangles in the set.
// The returned slice aliases internal storage and is valid until the next
// mutation; callers must not modify it.
func (s *Set) Rects() []image.Rectangle {
	return s.rects
}

// Add appends r unconditionally, without checking for overlap.
// Degenerate rectangles are ignored.
func (s *Set) Add(r image.Rectangle) error {
	if r.Empty() {
		return nil
	}
	return s.push(r)
}

// UnionAdd inserts r, merging it with every entry it overlaps.
// The grown entry is re-checked against the rest of the set, so the net
// effect equals Add followed by Refresh.
func (s *Set) UnionAdd(r image.Rectangle) error {
	if r.Empty() {
		return nil
	}
	for {
		merged := false
		for i := 0; i < len(s.rects); i++ {
			if !s.rects[i].Overlaps(r) {
				continue
			}
			r = r.Union(s.rects[i])
			s.remove(i)
			merged = true
			break
		}
		if !merged {
			break
		}
	}
	return s.push(r)
}

// Refresh merges overlapping pairs until no two entries overlap.
// Hints of merged entries are reset to NoHint.
func (s *Set) Refresh() {
	for {
		merged := false
	scan:
		for i := 0; i < len(s.rects); i++ {
			for j := i + 1; j < len(s.rects); j++ {
				if !s.rects[i].Overlaps(s.rects[j]) {
					continue
				}
				s.rects[i] = s.rects[i].Union(s.rects[j])
				s.hints[i] = NoHint
				s.remove(j)
				merged = true
				break scan
			}
		}
		if !merged {
			return
		}
	}
}

// Clear removes all rectangles. Storage is retained for reuse.
func (s *Set) Clear() {
	s.rects = s.rects[:0]
	s.hints = s.hints[:0]
}

// Reset replaces the content with the single rectangle r.
func (s *Set) Reset(r image.Rectangle) {
	s.Clear()
	if !r.Empty() {
		s.rects = append(s.rects, r)
		s.hints = append(s.hints, NoHint)
	}
}

// Intersects reports whether r overlaps any rectangle of the set.
func (s *Set) Intersects(r image.Rectangle) bool {
	for _, q := range s.rects {
		if q.Overlaps(r) {
			return true
		}
	}
	return false
}

// Covers reports whether r lies entirely inside a single entry.
func (s *Set) Covers(r image.Rectangle) bool {
	if r.Empty() {
		return true
	}
	for _, q := range s.rects {
		if r.In(q) {
			return true
		}
	}
	return false
}

// Bounds returns the bounding rectangle of all entries.
func (s *Set) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, q := range s.rects {
		b = b.Union(q)
	}
	return b
}

// Area returns the total number of pixels covered. Entries never overlap
// after Refresh, so this is a plain sum.
func (s *Set) Area() int {
	n := 0
	for _, q := range s.rects {
		n += q.Dx() * q.Dy()
	}
	return n
}

// Hint returns the occlusion hint of region i.
func (s *Set) Hint(i int) int {
	return s.hints[i]
}

// SetHint records the index of the topmost opaque command covering region i.
func (s *Set) SetHint(i, cmd int) {
	s.hints[i] = cmd
}

// ResetHints sets every hint to NoHint.
func (s *Set) ResetHints() {
	for i := range s.hints {
		s.hints[i] = NoHint
	}
}

// Overlapping reports whether any two entries overlap.
// Used by tests and debug checks.
func (s *Set) Overlapping() bool {
	for i := 0; i < len(s.rects); i++ {
		for j := i + 1; j < len(s.rects); j++ {
			if s.rects[i].Overlaps(s.rects[j]) {
				return true
			}
		}
	}
	return false
}

// Threshold returns the number of distinct regions above which repainting
// area, not refining regions, becomes the cheaper option: the surface area
// divided by the area of a minSize x minSize rectangle.
func Threshold(area image.Rectangle, minSize int) int {
	if minSize <= 0 {
		minSize = 1
	}
	n := (area.Dx() * area.Dy()) / (minSize * minSize)
	if n < 1 {
		n = 1
	}
	return n
}

func (s *Set) push(r image.Rectangle) error {
	if s.limit > 0 && len(s.rects) >= s.limit {
		return ErrFull
	}
	s.rects = append(s.rects, r)
	s.hints = append(s.hints, NoHint)
	return nil
}

// remove deletes entry i by moving the last entry into its slot.
// Order is not part of the contract.
func (s *Set) remove(i int) {
	last := len(s.rects) - 1
	s.rects[i] = s.rects[last]
	s.hints[i] = s.hints[last]
	s.rects = s.rects[:last]
	s.hints = s.hints[:last]
}
