package repaint

import "errors"

// Conditions reported through the logger when a frame recovers locally.
// They never reach the caller of a frame operation.
var (
	// ErrPoolExhausted means Config.MaxCommands was reached; the primitive
	// is not painted this frame.
	ErrPoolExhausted = errors.New("repaint: command pool exhausted")

	// ErrChainExhausted means Config.MaxBounds was reached for one
	// renderable on one surface; the primitive is not painted this frame.
	ErrChainExhausted = errors.New("repaint: bound chain exhausted")

	// ErrClipOutside means a bound was finalized with a clip rectangle not
	// contained in the surface clip. This is a driver bug.
	ErrClipOutside = errors.New("repaint: clip outside surface clip")

	// ErrNotInFrame means a frame operation ran outside BeginFrame/EndFrame.
	ErrNotInFrame = errors.New("repaint: no frame in progress")
)

// ErrNotResizable is returned by Surface.Resize when the device cannot
// change size.
var ErrNotResizable = errors.New("repaint: device is not resizable")
