// Package raster renders the vortex effect on the CPU by evaluating the
// fragment shader once per pixel centre.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/govortex/vortex"
	"golang.org/x/image/draw"
)

// Evaluator is anything that can shade a texture coordinate.
type Evaluator interface {
	Evaluate(uv mgl32.Vec2) vortex.Color
}

// Options control a software render.
type Options struct {
	// Background is the framebuffer content the effect is added onto.
	Background color.RGBA
	// Fade multiplies the shaded alpha, e.g. with the reveal amount.
	Fade float32
}

// DefaultOptions composites onto opaque black at full strength.
var DefaultOptions = Options{
	Background: color.RGBA{A: 0xff},
	Fade:       1,
}

// Render shades a width x height image. The effect quad is fitted the way
// the GL vertex stage does it: square, centred, spanning the shorter axis, so
// the disc stays round. Pixels off the quad keep the background.
func Render(ev Evaluator, width, height int, opts Options) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid render size %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bg := [3]float32{
		float32(opts.Background.R) / 255,
		float32(opts.Background.G) / 255,
		float32(opts.Background.B) / 255,
	}

	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			px := row[x*4 : x*4+4]
			px[3] = opts.Background.A

			uv, ok := quadUV(x, y, width, height)
			if !ok {
				px[0], px[1], px[2] = toByte(bg[0]), toByte(bg[1]), toByte(bg[2])
				continue
			}
			c := ev.Evaluate(uv)
			a := c.A * opts.Fade

			// SRC_ALPHA, ONE
			px[0] = toByte(bg[0] + c.R*a)
			px[1] = toByte(bg[1] + c.G*a)
			px[2] = toByte(bg[2] + c.B*a)
		}
	}
	return img, nil
}

// quadUV maps the centre of pixel (x, y) to texture coordinates on the
// aspect-corrected quad. Texture v runs bottom to top, as in GL.
func quadUV(x, y, width, height int) (mgl32.Vec2, bool) {
	nx := (float32(x)+0.5)/float32(width)*2 - 1
	ny := 1 - (float32(y)+0.5)/float32(height)*2
	aspect := float32(width) / float32(height)
	if aspect > 1 {
		nx *= aspect
	} else {
		ny /= aspect
	}
	if nx < -1 || nx > 1 || ny < -1 || ny > 1 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{nx*0.5 + 0.5, ny*0.5 + 0.5}, true
}

// RenderScaled shades at 1/factor of the requested size and upscales the
// result with a Catmull-Rom filter.
func RenderScaled(ev Evaluator, width, height, factor int, opts Options) (*image.RGBA, error) {
	if factor <= 1 {
		return Render(ev, width, height, opts)
	}
	sw, sh := max(1, width/factor), max(1, height/factor)
	small, err := Render(ev, sw, sh, opts)
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)
	return dst, nil
}

// WritePNG encodes img to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func toByte(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
