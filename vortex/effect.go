// Package vortex owns the uniform state of the swirling nebula effect and a
// CPU evaluation of its fragment shader.
package vortex

import "github.com/go-gl/mathgl/mgl32"

// Default tunables, matching the values the effect ships with.
const (
	DefaultSpeed      = 0.4
	DefaultStrength   = 1.0
	DefaultBrightness = 1.1
	DefaultOpacity    = 0.7
	DefaultDelta      = 0.01
)

// Seeder is the random source used to pick the per-instance seed.
// *math/rand.Rand satisfies it.
type Seeder interface {
	Float32() float32
}

// Effect is the state of one vortex instance. It is owned by a single render
// loop and is not safe for concurrent use.
type Effect struct {
	time       float32
	resolution mgl32.Vec2
	seed       float32
	speed      float32
	strength   float32
	brightness float32
	opacity    float32
}

// New creates an effect with default tunables and a seed drawn from src.
// A nil src gives a seed of zero.
func New(src Seeder) *Effect {
	var seed float32
	if src != nil {
		seed = src.Float32()
	}
	return NewWithSeed(seed)
}

// NewWithSeed creates an effect with a fixed seed.
func NewWithSeed(seed float32) *Effect {
	return &Effect{
		resolution: mgl32.Vec2{1, 1},
		seed:       seed,
		speed:      DefaultSpeed,
		strength:   DefaultStrength,
		brightness: DefaultBrightness,
		opacity:    DefaultOpacity,
	}
}

// Advance moves the effect clock forward by delta seconds. Negative deltas
// are ignored; the clock never runs backwards.
func (e *Effect) Advance(delta float32) {
	if delta <= 0 {
		return
	}
	e.time += delta
}

// AdvanceDefault advances the clock by DefaultDelta.
func (e *Effect) AdvanceDefault() {
	e.Advance(DefaultDelta)
}

func (e *Effect) SetResolution(width, height float32) {
	e.resolution = mgl32.Vec2{width, height}
}

func (e *Effect) SetSpeed(v float32) { e.speed = v }
func (e *Effect) SetStrength(v float32) { e.strength = v }
func (e *Effect) SetBrightness(v float32) { e.brightness = v }
func (e *Effect) SetOpacity(v float32) { e.opacity = v }

func (e *Effect) Time() float32 { return e.time }
func (e *Effect) Resolution() mgl32.Vec2 { return e.resolution }
func (e *Effect) Seed() float32 { return e.seed }
func (e *Effect) Speed() float32 { return e.speed }
func (e *Effect) Strength() float32 { return e.strength }
func (e *Effect) Brightness() float32 { return e.brightness }
func (e *Effect) Opacity() float32 { return e.opacity }

// Material returns the render state a renderer must apply when drawing the effect.
func (e *Effect) Material() Material { return DefaultMaterial }

// Uniforms returns a snapshot of the values bound to the shader program.
func (e *Effect) Uniforms() Uniforms {
	return Uniforms{
		Time:       e.time,
		Resolution: e.resolution,
		Seed:       e.seed,
		Speed:      e.speed,
		Strength:   e.strength,
		Brightness: e.brightness,
		Opacity:    e.opacity,
	}
}
