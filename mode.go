package repaint

// Mode selects how much of the surface a frame repaints.
type Mode uint8

const (
	// ModeIndirect repaints only the dirty region set.
	ModeIndirect Mode = iota

	// ModeDirect repaints the whole surface for one frame, then returns
	// to ModeIndirect. Requested with Surface.RequestFullRedraw or implied
	// by Surface.Resize.
	ModeDirect

	// ModeDirectPersistent repaints the whole surface every frame.
	// Selected with Config.Mode = "direct".
	ModeDirectPersistent
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIndirect:
		return "Indirect"
	case ModeDirect:
		return "Direct"
	case ModeDirectPersistent:
		return "DirectPersistent"
	default:
		return unknownStr
	}
}

// IsDirect reports whether the mode skips bound diffing.
func (m Mode) IsDirect() bool {
	return m != ModeIndirect
}

const unknownStr = "Unknown"
