// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom provides the small amount of 2D geometry the repaint engine
// needs: points, real-valued rectangles and 2x3 affine matrices.
//
// Real-valued rectangles are the "unclipped" world bounds of a shape.
// Integer pixel rectangles are plain [image.Rectangle] values; [Rect.Pixels]
// converts between the two.
package geom
