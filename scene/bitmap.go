package scene

import (
	"image"

	"github.com/gogpu/repaint"
	"github.com/gogpu/repaint/geom"
)

// Bitmap composites an image with its top-left corner at (x, y). The paint
// only contributes its alpha; a nil paint is opaque.
type Bitmap struct {
	shape
	img  image.Image
	x, y float64
}

// NewBitmap creates an image node.
func NewBitmap(img image.Image, x, y float64) *Bitmap {
	n := &Bitmap{img: img, x: x, y: y}
	n.shape = newShape(repaint.GeometryFunc(n.build), nil)
	return n
}

// SetImage replaces the image.
func (n *Bitmap) SetImage(img image.Image) {
	n.img = img
	n.r.MarkModified()
}

// SetPosition moves the image.
func (n *Bitmap) SetPosition(x, y float64) {
	n.x, n.y = x, y
	n.r.MarkModified()
}

func (n *Bitmap) build() ([]repaint.Part, error) {
	if n.img == nil || n.img.Bounds().Empty() {
		return nil, nil
	}
	b := n.img.Bounds()
	return []repaint.Part{{
		Image:  n.img,
		Origin: geom.Pt(n.x-float64(b.Min.X), n.y-float64(b.Min.Y)),
	}}, nil
}

// Measure implements Node.
func (n *Bitmap) Measure(s *repaint.Surface, m geom.Matrix) {
	n.measure(s, m)
}
