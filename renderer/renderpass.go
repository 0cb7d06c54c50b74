package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/govortex/shader"
	xlate "github.com/richinsley/govortex/translator"
	"github.com/richinsley/govortex/vortex"
	gst "github.com/richinsley/goshadertranslator"
)

// VortexPass is the linked vortex program and its uniform locations. A
// location of -1 means the driver optimised the uniform away.
type VortexPass struct {
	ShaderProgram uint32
	timeLoc       int32
	resolutionLoc int32
	seedLoc       int32
	speedLoc      int32
	strengthLoc   int32
	brightnessLoc int32
	opacityLoc    int32
	scaleLoc      int32
	rotationLoc   int32
}

// OverlayPass draws a textured rectangle given in NDC.
type OverlayPass struct {
	ShaderProgram uint32
	rectLoc       int32
	textureLoc    int32
}

func newVortexPass(isGLES bool) (*VortexPass, error) {
	vs, err := xlate.Translate(shader.VortexVertexShader(), "vertex", isGLES)
	if err != nil {
		return nil, err
	}
	fs, err := xlate.Translate(shader.VortexFragmentShader(), "fragment", isGLES)
	if err != nil {
		return nil, err
	}

	program, err := newProgram(vs.Code, fs.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create vortex program: %w", err)
	}

	// uniforms shared by both stages resolve to the same location
	vars := make(map[string]gst.ShaderVariable, len(vs.Variables)+len(fs.Variables))
	for k, v := range vs.Variables {
		vars[k] = v
	}
	for k, v := range fs.Variables {
		vars[k] = v
	}

	gl.UseProgram(program)
	p := &VortexPass{
		ShaderProgram: program,
		timeLoc:       getUniformLocation(vars, program, vortex.UniformTime),
		resolutionLoc: getUniformLocation(vars, program, vortex.UniformResolution),
		seedLoc:       getUniformLocation(vars, program, vortex.UniformSeed),
		speedLoc:      getUniformLocation(vars, program, vortex.UniformSpeed),
		strengthLoc:   getUniformLocation(vars, program, vortex.UniformStrength),
		brightnessLoc: getUniformLocation(vars, program, vortex.UniformBrightness),
		opacityLoc:    getUniformLocation(vars, program, vortex.UniformOpacity),
		scaleLoc:      getUniformLocation(vars, program, "uScale"),
		rotationLoc:   getUniformLocation(vars, program, "uRotation"),
	}
	gl.UseProgram(0)
	return p, nil
}

// update binds the effect uniforms and the plane transform.
func (p *VortexPass) update(u vortex.Uniforms, scale, rotation float32) {
	setFloat(p.timeLoc, u.Time)
	if p.resolutionLoc != -1 {
		gl.Uniform2f(p.resolutionLoc, u.Resolution.X(), u.Resolution.Y())
	}
	setFloat(p.seedLoc, u.Seed)
	setFloat(p.speedLoc, u.Speed)
	setFloat(p.strengthLoc, u.Strength)
	setFloat(p.brightnessLoc, u.Brightness)
	setFloat(p.opacityLoc, u.Opacity)
	setFloat(p.scaleLoc, scale)
	setFloat(p.rotationLoc, rotation)
}

func (p *VortexPass) Destroy() {
	gl.DeleteProgram(p.ShaderProgram)
}

func newOverlayPass(isGLES bool) (*OverlayPass, error) {
	program, err := newProgram(shader.GetOverlayVertexShader(isGLES), shader.GetBlitFragmentShader(isGLES))
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay program: %w", err)
	}
	return &OverlayPass{
		ShaderProgram: program,
		rectLoc:       gl.GetUniformLocation(program, gl.Str("u_rect\x00")),
		textureLoc:    gl.GetUniformLocation(program, gl.Str("u_texture\x00")),
	}, nil
}

func (p *OverlayPass) Destroy() {
	gl.DeleteProgram(p.ShaderProgram)
}

func setFloat(loc int32, v float32) {
	if loc != -1 {
		gl.Uniform1f(loc, v)
	}
}

// getUniformLocation resolves a source uniform name through the translator's
// name mapping.
func getUniformLocation(vars map[string]gst.ShaderVariable, program uint32, name string) int32 {
	if v, ok := vars[name]; ok {
		return gl.GetUniformLocation(program, gl.Str(v.MappedName+"\x00"))
	}
	return -1
}
