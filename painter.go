package repaint

import (
	"image"

	"github.com/gogpu/repaint/device"
	"github.com/gogpu/repaint/geom"
)

// Painter rasterizes one command onto a device. Nothing outside clip may
// change.
type Painter interface {
	PaintCommand(dev device.Device, cmd *RenderCommand, clip image.Rectangle)
}

// PainterFunc adapts a function to Painter.
type PainterFunc func(dev device.Device, cmd *RenderCommand, clip image.Rectangle)

// PaintCommand calls f.
func (f PainterFunc) PaintCommand(dev device.Device, cmd *RenderCommand, clip image.Rectangle) {
	f(dev, cmd, clip)
}

// DefaultPainter paints a command's part with its paint: images are
// composited (mask images tinted with the fill), paths filled then stroked.
var DefaultPainter Painter = defaultPainter{}

type defaultPainter struct{}

func (defaultPainter) PaintCommand(dev device.Device, cmd *RenderCommand, clip image.Rectangle) {
	part := cmd.Part
	p := cmd.Paint

	if part.Image != nil {
		m := cmd.Transform.Multiply(geom.Translate(part.Origin.X, part.Origin.Y))
		opts := device.ImageOptions{Alpha: p.Alpha(), Smooth: !m.IsTranslation()}
		if part.Mask {
			opts.Tint = p.Fill()
			if opts.Tint == nil {
				return
			}
		}
		dev.DrawImage(part.Image, m.Aff3(), clip, opts)
		return
	}

	if p == nil {
		return
	}
	path := cmd.devicePath()
	if path.IsEmpty() {
		return
	}
	if fill := p.Fill(); fill != nil {
		dev.Fill(path, clip, device.FillStyle{Color: scaleAlpha(fill, p.Alpha())})
	}
	if stroke := p.Stroke(); stroke != nil && p.StrokeWidth() > 0 {
		dev.Stroke(path, clip, device.StrokeStyle{
			Color: scaleAlpha(stroke, p.Alpha()),
			Width: p.StrokeWidth() * cmd.Transform.LineScale(),
		})
	}
}
