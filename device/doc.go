// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device provides the pluggable rasterizer backends the repaint
// engine paints through.
//
// A [Device] is an opaque pixel target: the engine never reads pixels back
// during a frame, it only issues clears, fills, strokes and image blits, each
// limited to a clip rectangle. Two backends are built in:
//
//   - [ImageDevice] renders into an *image.RGBA using golang.org/x/image/vector
//     for path coverage and golang.org/x/image/draw for transformed blits.
//   - [Recorder] keeps a log of operations and touches no pixels. It is the
//     backend used for dry runs and tests.
//
// Backends register themselves in a [Registry] under a name and a priority,
// so callers can pick one at runtime:
//
//	dev, err := device.NewByName("image", device.Options{Width: 640, Height: 480})
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
// Devices are NOT safe for concurrent use.
package device
