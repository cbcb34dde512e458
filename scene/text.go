package scene

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/repaint"
	"github.com/gogpu/repaint/geom"
	"github.com/gogpu/repaint/internal/cache"
)

// maskCacheSize bounds the rasterized lines kept per face.
const maskCacheSize = 256

// Face is a font at one size. Lines are shaped with go-text's HarfBuzz
// shaper and rasterized into coverage masks with x/image/font/opentype.
//
// Face is safe for concurrent use.
type Face struct {
	size float64

	mu     sync.Mutex
	shaper shaping.HarfbuzzShaper
	shape  *gotext.Font
	raster xfont.Face

	ascent, descent, height float64

	masks *cache.Cache[string, *image.Alpha]
}

// NewFace parses TrueType or OpenType data at the given pixel size.
func NewFace(ttf []byte, size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("scene: invalid font size %v", size)
	}
	parsed, err := gotext.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("scene: parse font: %w", err)
	}
	otf, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("scene: parse font: %w", err)
	}
	raster, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("scene: create face: %w", err)
	}
	m := raster.Metrics()
	return &Face{
		size:    size,
		shape:   parsed.Font,
		raster:  raster,
		ascent:  fixedToFloat(m.Ascent),
		descent: fixedToFloat(m.Descent),
		height:  fixedToFloat(m.Height),
		masks:   cache.New[string, *image.Alpha](maskCacheSize),
	}, nil
}

// DefaultFace returns the Go Regular font at the given size.
func DefaultFace(size float64) (*Face, error) {
	return NewFace(goregular.TTF, size)
}

// Size returns the font size in pixels.
func (f *Face) Size() float64 {
	return f.size
}

// LineHeight returns the distance between baselines.
func (f *Face) LineHeight() float64 {
	return f.height
}

// Ascent returns the distance from the top of a line to its baseline.
func (f *Face) Ascent() float64 {
	return f.ascent
}

// Advance returns the shaped width of a single line.
func (f *Face) Advance(line string) float64 {
	runes := []rune(line)
	if len(runes) == 0 {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: lineDirection(line),
		Face:      gotext.NewFace(f.shape),
		Size:      floatToFixed(f.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})
	return math.Abs(fixedToFloat(out.Advance))
}

// mask returns the coverage mask for line, rasterizing it on first use.
// Masks are shared between nodes and must not be modified.
func (f *Face) mask(line string) *image.Alpha {
	return f.masks.GetOrCreate(line, func() *image.Alpha { return f.rasterize(line) })
}

// rasterize draws line into a coverage mask whose top-left corner is the
// top of the line box.
func (f *Face) rasterize(line string) *image.Alpha {
	f.mu.Lock()
	w := fixedToFloat(xfont.MeasureString(f.raster, line))
	f.mu.Unlock()
	w = max(w, f.Advance(line))
	if w <= 0 {
		return nil
	}
	dst := image.NewAlpha(image.Rect(0, 0, int(math.Ceil(w))+1, int(math.Ceil(f.ascent+f.descent))))

	f.mu.Lock()
	defer f.mu.Unlock()
	d := &xfont.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: f.raster,
		Dot:  fixed.Point26_6{Y: floatToFixed(f.ascent)},
	}
	d.DrawString(line)
	return dst
}

// Close releases the rasterizer face.
func (f *Face) Close() error {
	f.masks.Clear()
	return f.raster.Close()
}

// Text is a block of lines drawn with one face. The paint's fill colors the
// glyphs. Right-to-left lines are right-aligned to the widest line.
type Text struct {
	shape
	face *Face
	text string
	x, y float64
}

// NewText creates a text node with the top-left corner of its block at
// (x, y). text is normalized to NFC.
func NewText(face *Face, text string, x, y float64, p *repaint.Paint) *Text {
	n := &Text{face: face, text: norm.NFC.String(text), x: x, y: y}
	n.shape = newShape(repaint.GeometryFunc(n.build), p)
	return n
}

// SetText replaces the text.
func (n *Text) SetText(text string) {
	text = norm.NFC.String(text)
	if text == n.text {
		return
	}
	n.text = text
	n.r.MarkModified()
}

// Text returns the normalized text.
func (n *Text) Text() string {
	return n.text
}

// SetPosition moves the block.
func (n *Text) SetPosition(x, y float64) {
	n.x, n.y = x, y
	n.r.MarkModified()
}

// SetFace changes the font.
func (n *Text) SetFace(face *Face) {
	n.face = face
	n.r.MarkModified()
}

// build emits one mask part per non-empty line, so a multi-line block
// keeps one bound per line run.
func (n *Text) build() ([]repaint.Part, error) {
	if n.face == nil || n.text == "" {
		return nil, nil
	}
	lines := strings.Split(n.text, "\n")
	widths := make([]float64, len(lines))
	block := 0.0
	for i, l := range lines {
		widths[i] = n.face.Advance(l)
		block = max(block, widths[i])
	}
	var parts []repaint.Part
	for i, l := range lines {
		m := n.face.mask(l)
		if m == nil {
			continue
		}
		x := n.x
		if lineDirection(l) == di.DirectionRTL {
			x += block - widths[i]
		}
		parts = append(parts, repaint.Part{
			Image:  m,
			Mask:   true,
			Origin: geom.Pt(x, n.y+float64(i)*n.face.height),
		})
	}
	return parts, nil
}

// Measure implements Node.
func (n *Text) Measure(s *repaint.Surface, m geom.Matrix) {
	n.measure(s, m)
}

// lineDirection returns the base direction of a paragraph: the direction
// of its first strong character.
func lineDirection(line string) di.Direction {
	for _, r := range line {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return di.DirectionLTR
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		}
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
