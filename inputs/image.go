// inputs/image.go
package inputs

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ImageTexture is a 2D texture uploaded from an RGBA image, used for the
// overlay plates drawn over the effect.
type ImageTexture struct {
	textureID  uint32
	resolution [2]int32
}

// vflip vertically flips the provided RGBA image. GL expects the first row of
// texel data to be the bottom of the image.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	// This is faster than calling At/Set for each pixel
	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// NewImageTexture creates and initializes a new OpenGL texture from an image.
func NewImageTexture(img *image.RGBA) (*ImageTexture, error) {
	if img == nil {
		return nil, fmt.Errorf("input image for texture is nil")
	}

	t := &ImageTexture{}
	gl.GenTextures(1, &t.textureID)
	gl.BindTexture(gl.TEXTURE_2D, t.textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := t.Update(img); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

// Update replaces the texel data, reallocating when the size changes.
func (t *ImageTexture) Update(img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("input image for texture %d is nil", t.textureID)
	}
	rgba := vflip(img)
	width := int32(rgba.Rect.Dx())
	height := int32(rgba.Rect.Dy())
	if width == 0 || height == 0 {
		return fmt.Errorf("texture %d: empty image", t.textureID)
	}

	gl.BindTexture(gl.TEXTURE_2D, t.textureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if width == t.resolution[0] && height == t.resolution[1] {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
		t.resolution = [2]int32{width, height}
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (t *ImageTexture) GetTextureID() uint32 {
	return t.textureID
}

func (t *ImageTexture) Resolution() [2]int32 {
	return t.resolution
}

func (t *ImageTexture) Destroy() {
	gl.DeleteTextures(1, &t.textureID)
}
