package vortex

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	maskRadius = 0.95
	iterations = 9
	// Iterations below this index get the secondary harmonic.
	harmonicCutoff = 5
)

var (
	brightAqua = mgl32.Vec3{40.0 / 255.0, 210.0 / 255.0, 230.0 / 255.0}
	midTeal    = mgl32.Vec3{10.0 / 255.0, 160.0 / 255.0, 170.0 / 255.0}
	nearBlack  = mgl32.Vec3{5.0 / 255.0, 20.0 / 255.0, 40.0 / 255.0}
)

// Color is a straight (non-premultiplied) RGBA value as written by the
// fragment shader. Channels are not clamped.
type Color struct {
	R, G, B, A float32
}

// RGB returns the colour channels.
func (c Color) RGB() mgl32.Vec3 { return mgl32.Vec3{c.R, c.G, c.B} }

// Finite reports whether every channel is a finite number.
func (c Color) Finite() bool {
	for _, v := range [4]float32{c.R, c.G, c.B, c.A} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Evaluate runs the fragment shader for one texture coordinate in [0,1]^2.
// It reads the current state only and has no side effects.
func (e *Effect) Evaluate(uv mgl32.Vec2) Color {
	// [0,1] -> [-1,1]
	c := uv.Mul(2).Sub(mgl32.Vec2{1, 1})
	radius := c.Len()
	if radius > maskRadius {
		return Color{}
	}

	// depth on the implied unit sphere, only used for brightness
	z := sqrt(max(0, 1-radius*radius))

	p, seed := e.warp(c, e.time*e.speed)

	phi := atan2(p.Y(), p.X())
	swirl := phi + e.time*0.15
	swirled := mgl32.Vec2{radius * cos(swirl), radius * sin(swirl)}

	extraNoise := improvedNoise(p.Mul(2), seed+10, e.time*0.1)

	p = mix2(p, swirled, 0.4)

	darkCore := smoothstep(0, 0.4, radius)

	mixFactor := sin(p.X()*4+p.Y()*4+1+extraNoise)*0.5 + 0.5
	color := mix3(brightAqua, midTeal, mixFactor)
	color = mix3(color, nearBlack, (1-darkCore)*0.9)
	color = mix3(color, brightAqua.Mul(1.2), extraNoise*0.25*darkCore)

	brightness := smoothstep(0.1, 0.4, radius) * (1 - smoothstep(0.7, 0.95, radius))
	brightness = mix(brightness, 0.7, z*0.5)
	color = color.Mul(brightness * e.brightness)

	outerGlow := smoothstep(0.35, 0.6, radius) * (1 - smoothstep(0.7, 0.9, radius)) * 0.25
	color = color.Add(brightAqua.Mul(outerGlow * extraNoise))

	pulse := sin(e.time*0.25)*0.15 + 0.85
	color = color.Mul(pulse)

	centerFade := smoothstep(0, 0.3, radius)
	alpha := smoothstep(0.95, 0.2, radius) * e.opacity * centerFade

	return Color{R: color.X(), G: color.Y(), B: color.Z(), A: alpha}
}

// warp runs the layered harmonic feedback loop on the centred coordinate uv
// with the phase t = time*speed. It returns the displaced point and the final
// value of the seed accumulator.
func (e *Effect) warp(uv mgl32.Vec2, t float32) (mgl32.Vec2, float32) {
	p := uv.Mul(1.5)
	seed := e.seed
	drift := mgl32.Vec2{uv[0] / 15, uv[1] / 15}

	for i := 1; i <= iterations; i++ {
		fi := float32(i)
		seed += fi * 12
		freq := fi * 2.8
		amp := 0.35 / fi

		p[0] += amp*cos(freq*p[1]+t+random(seed)) + drift[0]
		p[1] += amp*sin(freq*p[0]+t+random(seed+1)) + drift[1]

		if i < harmonicCutoff {
			p[0] += amp * 0.5 * sin(freq*1.5*p[1]+t*0.7+random(seed+3))
			p[1] += amp * 0.5 * cos(freq*1.5*p[0]+t*0.7+random(seed+4))
		}
	}
	return p, seed
}
