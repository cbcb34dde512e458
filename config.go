package repaint

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunables of a Surface.
//
// The zero value is not useful; start from DefaultConfig. Config files are
// TOML:
//
//	antialias_margin = 1
//	min_region_size = 16
//	mode = "indirect"
//	occlusion_culling = true
//	background = "#202020"
type Config struct {
	// AntialiasMargin pads every clip rectangle by this many pixels so
	// anti-aliased edges are repainted. Paints with antialiasing disabled
	// use no padding.
	AntialiasMargin int `toml:"antialias_margin"`

	// MinRegionSize is the side of the smallest rectangle worth tracking
	// separately. A frame with more than area/MinRegionSize² regions is
	// repainted entirely.
	MinRegionSize int `toml:"min_region_size"`

	// Mode is "indirect" (dirty regions only) or "direct" (every frame is
	// repainted entirely).
	Mode string `toml:"mode"`

	// OcclusionCulling skips paints hidden below an opaque rectangle.
	OcclusionCulling bool `toml:"occlusion_culling"`

	// MaxCommands limits the command pool, 0 = unlimited.
	MaxCommands int `toml:"max_commands"`

	// MaxBounds limits the bound records one renderable may write on one
	// surface per frame, 0 = unlimited.
	MaxBounds int `toml:"max_bounds"`

	// MaxRegions limits the dirty region set, 0 = unlimited. Reaching it
	// promotes the frame to a full repaint.
	MaxRegions int `toml:"max_regions"`

	// Background is the initial background color as #rrggbb or #rrggbbaa.
	// Empty means transparent.
	Background string `toml:"background"`
}

// Mode names accepted in Config.Mode.
const (
	ModeNameIndirect = "indirect"
	ModeNameDirect   = "direct"
)

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		AntialiasMargin:  1,
		MinRegionSize:    16,
		Mode:             ModeNameIndirect,
		OcclusionCulling: true,
	}
}

// ParseConfig decodes TOML data on top of DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("repaint: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("repaint: load config: %w", err)
	}
	return ParseConfig(data)
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.AntialiasMargin < 0 {
		errs = append(errs, fmt.Errorf("antialias_margin %d is negative", c.AntialiasMargin))
	}
	if c.MinRegionSize < 1 {
		errs = append(errs, fmt.Errorf("min_region_size %d must be at least 1", c.MinRegionSize))
	}
	switch c.Mode {
	case "", ModeNameIndirect, ModeNameDirect:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	for name, v := range map[string]int{
		"max_commands": c.MaxCommands,
		"max_bounds":   c.MaxBounds,
		"max_regions":  c.MaxRegions,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s %d is negative", name, v))
		}
	}
	if _, err := c.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("repaint: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// BackgroundColor parses Background. It returns nil for an empty value.
func (c Config) BackgroundColor() (color.Color, error) {
	if c.Background == "" {
		return nil, nil
	}
	return parseHexColor(c.Background)
}

// persistentMode returns the mode every frame starts in.
func (c Config) persistentMode() Mode {
	if c.Mode == ModeNameDirect {
		return ModeDirectPersistent
	}
	return ModeIndirect
}

// normalized replaces out-of-range values with defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.AntialiasMargin < 0 {
		c.AntialiasMargin = d.AntialiasMargin
	}
	if c.MinRegionSize < 1 {
		c.MinRegionSize = d.MinRegionSize
	}
	c.MaxCommands = max(c.MaxCommands, 0)
	c.MaxBounds = max(c.MaxBounds, 0)
	c.MaxRegions = max(c.MaxRegions, 0)
	return c
}

func parseHexColor(s string) (color.Color, error) {
	h, ok := strings.CutPrefix(s, "#")
	if !ok || (len(h) != 6 && len(h) != 8) {
		return nil, fmt.Errorf("background %q is not #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("background %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
