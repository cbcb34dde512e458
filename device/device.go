// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"image"
	"image/color"

	"golang.org/x/image/math/f64"
)

// Device is a rasterizer target.
//
// Every drawing call takes a clip rectangle in device pixels; nothing outside
// clip may change. An empty clip makes the call a no-op.
type Device interface {
	// Bounds returns the device rectangle, always anchored at (0, 0).
	Bounds() image.Rectangle

	// Clear replaces every pixel of r with c (no blending).
	Clear(r image.Rectangle, c color.Color)

	// Fill fills path (already in device space) within clip.
	Fill(path *Path, clip image.Rectangle, style FillStyle)

	// Stroke strokes path (already in device space) within clip.
	Stroke(path *Path, clip image.Rectangle, style StrokeStyle)

	// DrawImage composites img transformed by m within clip.
	// m maps image coordinates to device coordinates.
	DrawImage(img image.Image, m f64.Aff3, clip image.Rectangle, opts ImageOptions)

	// Flush ensures all pending drawing operations are complete.
	Flush() error

	// Snapshot returns a copy of the current pixels, or nil for devices
	// that have none.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the device.
	// Close is idempotent.
	Close() error
}

// Resizable is implemented by devices that can change size in place.
type Resizable interface {
	Device

	// Resize changes the device dimensions. Content is discarded.
	Resize(width, height int) error
}

// FillRule specifies how to determine which areas are inside a path.
type FillRule uint8

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota

	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// FillStyle defines how to fill a path.
type FillStyle struct {
	// Color is the fill color.
	Color color.Color

	// Rule is the fill rule. ImageDevice supports non-zero only and
	// treats even-odd paths as non-zero.
	Rule FillRule
}

// StrokeStyle defines how to stroke a path.
type StrokeStyle struct {
	// Color is the stroke color.
	Color color.Color

	// Width is the line width in device pixels.
	Width float64
}

// ImageOptions controls DrawImage.
type ImageOptions struct {
	// Alpha is the opacity multiplier (0.0 = transparent, 1.0 = opaque).
	Alpha float64

	// Tint, when non-nil, treats img as a coverage mask and paints
	// Tint through it. Text runs use this.
	Tint color.Color

	// Smooth selects bilinear instead of nearest-neighbor sampling.
	Smooth bool
}

// Options configures device creation.
type Options struct {
	// Width is the device width in pixels.
	Width int

	// Height is the device height in pixels.
	Height int

	// Background is the initial content. Default: transparent.
	Background color.Color
}
