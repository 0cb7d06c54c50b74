// Package overlay draws the toggle button and the external link icon that sit
// on top of the effect, and hit-tests clicks against them.
package overlay

import (
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Labeler supplies the current button text and accent colour.
// *reveal.Machine satisfies it.
type Labeler interface {
	Label() string
	Accent() colorful.Color
}

// Button is a flat label plate in framebuffer pixels, origin top left.
type Button struct {
	Bounds image.Rectangle

	src    Labeler
	label  string
	accent colorful.Color
	img    *image.RGBA
}

func NewButton(src Labeler, bounds image.Rectangle) *Button {
	return &Button{Bounds: bounds, src: src}
}

// Contains reports whether the framebuffer point (x, y) is on the button.
func (b *Button) Contains(x, y float64) bool {
	return contains(b.Bounds, x, y)
}

// Image returns the rasterised button and whether it changed since the last
// call. It is only redrawn when the label, accent or size change.
func (b *Button) Image() (*image.RGBA, bool) {
	label, accent := b.src.Label(), b.src.Accent()
	size := b.Bounds.Size()
	if b.img != nil && label == b.label && accent == b.accent && b.img.Bounds().Size() == size {
		return b.img, false
	}
	b.label, b.accent = label, accent
	b.img = drawPlate(size, label, accent)
	return b.img, true
}

func drawPlate(size image.Point, label string, accent colorful.Color) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(toRGBA(accent)), image.Point{}, draw.Src)

	// 1px darker border
	border := toRGBA(accent.BlendLab(colorful.Color{}, 0.35))
	for x := 0; x < size.X; x++ {
		img.SetRGBA(x, 0, border)
		img.SetRGBA(x, size.Y-1, border)
	}
	for y := 0; y < size.Y; y++ {
		img.SetRGBA(0, y, border)
		img.SetRGBA(size.X-1, y, border)
	}

	drawCentredText(img, label, textColor(accent))
	return img
}

func drawCentredText(img *image.RGBA, text string, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	b := img.Bounds()
	width := d.MeasureString(text).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	x := b.Min.X + (b.Dx()-width)/2
	y := b.Min.Y + (b.Dy()-height)/2 + metrics.Ascent.Ceil()
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

// textColor picks white or near-black for legibility on the accent.
func textColor(accent colorful.Color) color.RGBA {
	l, _, _ := accent.Lab()
	if l > 0.7 {
		return color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func contains(r image.Rectangle, x, y float64) bool {
	return x >= float64(r.Min.X) && x < float64(r.Max.X) &&
		y >= float64(r.Min.Y) && y < float64(r.Max.Y)
}
