package renderer

import (
	"fmt"
	"log"
	"math"
	"time"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/govortex/encoder"
	options "github.com/richinsley/govortex/options"
)

// OffscreenRenderer is the 8-bit RGBA target every frame is drawn into. In
// window mode it is blitted to the screen; in record mode it is read back.
type OffscreenRenderer struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid offscreen size %dx%d", width, height)
	}
	or := &OffscreenRenderer{width: width, height: height}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		or.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete: 0x%x", status)
	}
	return or, nil
}

// Resize reallocates the color texture. The framebuffer attachment follows
// the texture object so it does not need rebinding.
func (or *OffscreenRenderer) Resize(width, height int) {
	or.width, or.height = width, height
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
}

// readPixels returns the target as tightly packed RGBA rows, bottom row first.
func (or *OffscreenRenderer) readPixels() []byte {
	pixels := make([]byte, or.width*or.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return pixels
}

// RunOffscreen renders Duration seconds at a fixed time step and streams the
// frames to ffmpeg. The vortex is toggled on at the first frame so the reveal
// is part of the recording.
func (r *Renderer) RunOffscreen(opts *options.VortexOptions) error {
	totalFrames := int(math.Round(*opts.Duration * float64(*opts.FPS)))
	if totalFrames <= 0 {
		return fmt.Errorf("%w: duration %.2fs at %d fps", errNoFrames, *opts.Duration, *opts.FPS)
	}

	enc, err := encoder.NewFFmpegEncoder(opts)
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}
	log.Printf("ffmpeg %v", enc.Args())
	go enc.Run()

	if !r.machine.Visible() && !r.machine.Animating() {
		r.Toggle()
	}

	timeStep := float32(1.0 / float64(*opts.FPS))
	start := time.Now()
	for i := 0; i < totalFrames; i++ {
		if err := r.RenderFrame(timeStep); err != nil {
			enc.Close()
			return fmt.Errorf("frame %d: %w", i, err)
		}
		enc.SendVideo(&encoder.Frame{
			Pixels: r.offscreenRenderer.readPixels(),
			PTS:    int64(i),
		})
		if i > 0 && i%(*opts.FPS) == 0 {
			log.Printf("Rendered %d/%d frames", i, totalFrames)
		}
	}

	if err := enc.Close(); err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.Printf("Rendered %d frames in %s (%.1f fps)", totalFrames, elapsed.Round(time.Millisecond), float64(totalFrames)/elapsed.Seconds())
	return nil
}
