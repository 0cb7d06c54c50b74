package vortex

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Float32 counterparts of the GLSL built-ins used by the fragment shader.
// They follow the GLSL definitions rather than Go's math conventions.

func sin(x float32) float32 { return float32(math.Sin(float64(x))) }

func cos(x float32) float32 { return float32(math.Cos(float64(x))) }

func sqrt(x float32) float32 { return float32(math.Sqrt(float64(x))) }

func atan2(y, x float32) float32 { return float32(math.Atan2(float64(y), float64(x))) }

func fract(x float32) float32 {
	return x - float32(math.Floor(float64(x)))
}

func clamp(x, lo, hi float32) float32 {
	return mgl32.Clamp(x, lo, hi)
}

// smoothstep is evaluated literally, so reversed edges (e0 > e1) produce a
// falling curve exactly as GLSL drivers do.
func smoothstep(e0, e1, x float32) float32 {
	t := clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

func mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func mix2(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func mix3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// random is the shader's hash: fract(sin(s) * 43758.5453123).
func random(s float32) float32 {
	return fract(sin(s) * 43758.5453123)
}

// improvedNoise is the secondary smooth noise layer.
func improvedNoise(uv mgl32.Vec2, seed, time float32) float32 {
	x := uv.X()*10 + time + seed
	y := uv.Y()*10 - time + seed
	return (sin(x)*cos(y)+cos(x+y)+sin(x*1.5)*0.5)*0.25 + 0.5
}
