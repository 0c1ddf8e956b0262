// Package render rasterizes a border outline into an image so the
// configured width and color can be checked without a running daemon.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/yourusername/borders/internal/types"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Options controls how an outline is rasterized
type Options struct {
	Width      float64     // Stroke width in pixels
	Color      types.Color // Stroke color
	Padding    int         // Empty margin around the outline
	Background color.Color // Fill behind the outline, transparent when nil
	Label      bool        // Draw the frame size in the middle
}

// DefaultPadding leaves room for half the stroke of wide borders
const DefaultPadding = 16

// Outline draws the stroke of a rect with the given size. The stroke is
// centered on the rect edge, the way the compositor strokes the path.
func Outline(size types.Size, opts Options) (*image.RGBA, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("invalid size %.0fx%.0f", size.Width, size.Height)
	}
	if opts.Width <= 0 {
		return nil, fmt.Errorf("invalid stroke width %v", opts.Width)
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}

	w := int(math.Ceil(size.Width)) + 2*opts.Padding
	h := int(math.Ceil(size.Height)) + 2*opts.Padding
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}

	frame := types.Rect{
		X:      float64(opts.Padding),
		Y:      float64(opts.Padding),
		Width:  size.Width,
		Height: size.Height,
	}
	half := opts.Width / 2
	outer := inset(frame, -half)
	inner := inset(frame, half)

	z := vector.NewRasterizer(w, h)
	addPath(z, outer.Outline())
	// The inner path runs the other way so its area cancels out
	if !inner.IsEmpty() {
		addPath(z, reversed(inner.Outline()))
	}

	r, g, b, a := opts.Color.RGBA8()
	src := image.NewUniform(color.NRGBA{R: r, G: g, B: b, A: a})
	z.Draw(img, img.Bounds(), src, image.Point{})

	if opts.Label {
		drawLabel(img, fmt.Sprintf("%.0fx%.0f", size.Width, size.Height), frame.Center(), src)
	}

	return img, nil
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func inset(r types.Rect, d float64) types.Rect {
	return types.Rect{
		X:      r.X + d,
		Y:      r.Y + d,
		Width:  r.Width - 2*d,
		Height: r.Height - 2*d,
	}
}

func addPath(z *vector.Rasterizer, pts []types.Point) {
	if len(pts) == 0 {
		return
	}
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
}

func reversed(pts []types.Point) []types.Point {
	out := make([]types.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// drawLabel centers text on p using the 7x13 bitmap face
func drawLabel(img *image.RGBA, text string, p types.Point, src image.Image) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text)
	metrics := face.Metrics()

	dot := fixed.Point26_6{
		X: fixed.Int26_6(p.X*64) - width/2,
		Y: fixed.Int26_6(p.Y*64) + (metrics.Ascent-metrics.Descent)/2,
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  src,
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}
