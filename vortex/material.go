package vortex

import "github.com/go-gl/mathgl/mgl32"

// Uniform names as declared in the fragment shader.
const (
	UniformTime       = "uTime"
	UniformResolution = "uResolution"
	UniformSeed       = "uSeed"
	UniformSpeed      = "uSpeed"
	UniformStrength   = "uStrength"
	UniformBrightness = "uBrightness"
	UniformOpacity    = "uOpacity"
)

// Uniforms is the per-draw parameter block of the effect.
type Uniforms struct {
	Time       float32
	Resolution mgl32.Vec2
	Seed       float32
	Speed      float32
	Strength   float32 // declared by the shader but not read by it
	Brightness float32
	Opacity    float32
}

// Floats returns the scalar uniforms keyed by shader name. uResolution is
// omitted; it is a vec2.
func (u Uniforms) Floats() map[string]float32 {
	return map[string]float32{
		UniformTime:       u.Time,
		UniformSeed:       u.Seed,
		UniformSpeed:      u.Speed,
		UniformStrength:   u.Strength,
		UniformBrightness: u.Brightness,
		UniformOpacity:    u.Opacity,
	}
}

type Blending int

const (
	NormalBlending Blending = iota
	AdditiveBlending
)

func (b Blending) String() string {
	switch b {
	case AdditiveBlending:
		return "additive"
	default:
		return "normal"
	}
}

// Material describes the fixed-function state the effect is drawn with.
type Material struct {
	Blending    Blending
	Transparent bool
	DoubleSided bool
	DepthWrite  bool
	DepthTest   bool
}

// DefaultMaterial always draws on top and layers additively with whatever is
// behind it.
var DefaultMaterial = Material{
	Blending:    AdditiveBlending,
	Transparent: true,
	DoubleSided: true,
	DepthWrite:  false,
	DepthTest:   false,
}
