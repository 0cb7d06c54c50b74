package renderer

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/govortex/graphics"
	inputs "github.com/richinsley/govortex/inputs"
	"github.com/richinsley/govortex/options"
	"github.com/richinsley/govortex/overlay"
	"github.com/richinsley/govortex/reveal"
	shader "github.com/richinsley/govortex/shader"
	"github.com/richinsley/govortex/vortex"
)

// rotationSpeed is the spin of the effect plane in radians per second.
const rotationSpeed = 0.2

var glInitOnce sync.Once

type Renderer struct {
	context           graphics.Context
	effect            *vortex.Effect
	machine           *reveal.Machine
	button            *overlay.Button
	link              *overlay.Link
	quadVAO           uint32
	quadVBO           uint32
	vortexPass        *VortexPass
	overlayPass       *OverlayPass
	buttonTexture     *inputs.ImageTexture
	linkTexture       *inputs.ImageTexture
	offscreenRenderer *OffscreenRenderer
	blitProgram       uint32
	width             int
	height            int
	recordMode        bool
	rotation          float32
}

// NewRenderer prepares GL on the context, which must already be current.
// recordMode fixes the render size to the configured dimensions.
func NewRenderer(opts *options.VortexOptions, ctx graphics.Context, recordMode bool) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		width:      *opts.Width,
		height:     *opts.Height,
		recordMode: recordMode,
	}

	var err error
	glInitOnce.Do(func() {
		err = gl.Init()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gl: %w", err)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if !recordMode {
		r.width, r.height = ctx.GetFramebufferSize()
	}
	r.offscreenRenderer, err = NewOffscreenRenderer(r.width, r.height)
	if err != nil {
		return nil, fmt.Errorf("failed to create offscreen renderer: %w", err)
	}
	return r, nil
}

func (r *Renderer) Shutdown() {
	if r.vortexPass != nil {
		r.vortexPass.Destroy()
	}
	if r.overlayPass != nil {
		r.overlayPass.Destroy()
	}
	if r.buttonTexture != nil {
		r.buttonTexture.Destroy()
	}
	if r.linkTexture != nil {
		r.linkTexture.Destroy()
	}
	gl.DeleteProgram(r.blitProgram)
	r.offscreenRenderer.Destroy()
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
	r.context.Shutdown()
}

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// InitScene compiles the programs and builds the overlay for the effect and
// its toggle. link may be nil, in which case no icon is drawn.
func (r *Renderer) InitScene(effect *vortex.Effect, machine *reveal.Machine, link *overlay.Link) error {
	r.effect = effect
	r.machine = machine
	r.link = link

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	isGLES := r.context.IsGLES()
	var err error
	r.blitProgram, err = newProgram(shader.GenerateVertexShader(isGLES), shader.GetBlitFragmentShader(isGLES))
	if err != nil {
		return fmt.Errorf("failed to create blit program: %w", err)
	}
	if r.vortexPass, err = newVortexPass(isGLES); err != nil {
		return err
	}
	if r.overlayPass, err = newOverlayPass(isGLES); err != nil {
		return err
	}

	buttonRect, linkRect := overlay.Layout(r.width, r.height)
	r.button = overlay.NewButton(machine, buttonRect)
	img, _ := r.button.Image()
	if r.buttonTexture, err = inputs.NewImageTexture(img); err != nil {
		return fmt.Errorf("failed to create button texture: %w", err)
	}
	if r.link != nil {
		r.link.Bounds = linkRect
		img, _ := r.link.Image()
		if r.linkTexture, err = inputs.NewImageTexture(img); err != nil {
			return fmt.Errorf("failed to create link texture: %w", err)
		}
	}
	return nil
}

// Toggle flips the reveal state, as the button does.
func (r *Renderer) Toggle() {
	r.machine.Toggle()
}

// OpenLink launches the link if one is configured. Errors are logged only.
func (r *Renderer) OpenLink() {
	if r.link == nil {
		return
	}
	if err := r.link.Open(); err != nil {
		log.Printf("Link: %v", err)
	}
}

// Click dispatches a framebuffer-space click to the overlay.
func (r *Renderer) Click(x, y float64) {
	switch {
	case r.button.Contains(x, y):
		r.Toggle()
	case r.link != nil && r.link.Contains(x, y):
		r.OpenLink()
	}
}

// RenderFrame advances the effect and the reveal by delta seconds and draws
// one frame into the offscreen target.
func (r *Renderer) RenderFrame(delta float32) error {
	r.tick(delta)

	if !r.recordMode {
		// In interactive mode, match the window's framebuffer size to allow resizing.
		fbWidth, fbHeight := r.context.GetFramebufferSize()
		if fbWidth > 0 && fbHeight > 0 && (fbWidth != r.width || fbHeight != r.height) {
			r.width, r.height = fbWidth, fbHeight
			r.offscreenRenderer.Resize(fbWidth, fbHeight)
			r.button.Bounds, _ = overlay.Layout(fbWidth, fbHeight)
			if r.link != nil {
				_, r.link.Bounds = overlay.Layout(fbWidth, fbHeight)
			}
		}
	}
	r.effect.SetResolution(float32(r.width), float32(r.height))

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.offscreenRenderer.fbo)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if r.machine.Visible() {
		r.drawVortex()
	}
	if err := r.drawOverlay(); err != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return err
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

func (r *Renderer) drawVortex() {
	applyMaterial(r.effect.Material())
	gl.UseProgram(r.vortexPass.ShaderProgram)
	r.vortexPass.update(r.frameParams())
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// tick advances the effect time, the reveal ease and the plane rotation.
func (r *Renderer) tick(delta float32) {
	r.effect.Advance(delta)
	r.machine.Update(delta)
	r.rotation += rotationSpeed * delta
}

// frameParams is what the vortex pass binds for the current frame: the
// effect uniforms with opacity scaled by the reveal, the disc scale and the
// plane rotation.
func (r *Renderer) frameParams() (u vortex.Uniforms, scale, rotation float32) {
	amount := r.machine.Value()
	u = r.effect.Uniforms()
	u.Opacity *= amount
	return u, amount, r.rotation
}

// applyMaterial maps the effect's render state onto GL.
func applyMaterial(m vortex.Material) {
	if m.Transparent || m.Blending != vortex.NormalBlending {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}
	switch m.Blending {
	case vortex.AdditiveBlending:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	default:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	if m.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(m.DepthWrite)
	if m.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
	}
}

func (r *Renderer) drawOverlay() error {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(r.overlayPass.ShaderProgram)
	gl.Uniform1i(r.overlayPass.textureLoc, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.quadVAO)

	img, changed := r.button.Image()
	if err := r.drawPlate(r.buttonTexture, img, changed, r.button.Bounds); err != nil {
		return fmt.Errorf("button: %w", err)
	}
	if r.link != nil {
		img, changed := r.link.Image()
		if err := r.drawPlate(r.linkTexture, img, changed, r.link.Bounds); err != nil {
			return fmt.Errorf("link: %w", err)
		}
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)
	return nil
}

func (r *Renderer) drawPlate(tex *inputs.ImageTexture, img *image.RGBA, changed bool, bounds image.Rectangle) error {
	if changed {
		if err := tex.Update(img); err != nil {
			return err
		}
	}
	x0, y0, x1, y1 := ndcRect(bounds, r.width, r.height)
	gl.Uniform4f(r.overlayPass.rectLoc, x0, y0, x1, y1)
	gl.BindTexture(gl.TEXTURE_2D, tex.GetTextureID())
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	return nil
}

// ndcRect converts a top-left origin pixel rectangle to NDC corners
// (left, bottom, right, top).
func ndcRect(b image.Rectangle, width, height int) (x0, y0, x1, y1 float32) {
	w, h := float32(width), float32(height)
	x0 = float32(b.Min.X)/w*2 - 1
	x1 = float32(b.Max.X)/w*2 - 1
	y0 = 1 - float32(b.Max.Y)/h*2
	y1 = 1 - float32(b.Min.Y)/h*2
	return
}

// Run is the interactive loop. Space or Enter toggles, L opens the link and
// clicks are routed to the overlay.
func (r *Renderer) Run() error {
	r.context.OnKeyPress(graphics.KeySpace, r.Toggle)
	r.context.OnKeyPress(graphics.KeyEnter, r.Toggle)
	r.context.OnKeyPress(graphics.KeyL, r.OpenLink)
	r.context.OnMouseClick(r.Click)

	last := r.context.Time()
	for !r.context.ShouldClose() {
		now := r.context.Time()
		delta := float32(now - last)
		last = now

		if err := r.RenderFrame(delta); err != nil {
			return err
		}

		fbWidth, fbHeight := r.context.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.UseProgram(r.blitProgram)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.offscreenRenderer.textureID)
		gl.BindVertexArray(r.quadVAO)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
		gl.BindTexture(gl.TEXTURE_2D, 0)

		r.context.EndFrame()
	}
	return nil
}

var errNoFrames = errors.New("nothing to record")

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", logText)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
