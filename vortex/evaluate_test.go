package vortex

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func centred(uv mgl32.Vec2) mgl32.Vec2 {
	return uv.Mul(2).Sub(mgl32.Vec2{1, 1})
}

func TestEvaluateOutsideMaskIsTransparent(t *testing.T) {
	e := NewWithSeed(0.77)
	e.Advance(12.5)

	checked := 0
	for y := 0; y <= 40; y++ {
		for x := 0; x <= 40; x++ {
			uv := mgl32.Vec2{float32(x) / 40, float32(y) / 40}
			if centred(uv).Len() <= maskRadius {
				continue
			}
			checked++
			if c := e.Evaluate(uv); c.A != 0 {
				t.Fatalf("uv %v (radius %v) expected alpha 0, got %+v", uv, centred(uv).Len(), c)
			}
		}
	}
	if checked == 0 {
		t.Fatal("grid never left the mask")
	}
}

func TestEvaluateCentreIsTransparent(t *testing.T) {
	e := New(fixedSeeder(0.5))
	c := e.Evaluate(mgl32.Vec2{0.5, 0.5})
	if c.A != 0 {
		t.Errorf("Expected alpha 0 at the centre, got %v", c.A)
	}
	if !c.Finite() {
		t.Errorf("Expected finite colour at the centre, got %+v", c)
	}
}

func TestEvaluateScenarios(t *testing.T) {
	tests := []struct {
		name    string
		uv      mgl32.Vec2
		visible bool
	}{
		// maps to (0, 0.9): inside the mask
		{"near rim", mgl32.Vec2{0.5, 0.95}, true},
		// maps to (0, 1.9): outside the mask
		{"far outside", mgl32.Vec2{0.5, 1.45}, false},
		{"mid radius", mgl32.Vec2{0.75, 0.5}, true},
		{"exact mask edge", mgl32.Vec2{0.5, 0.975}, false},
	}

	e := New(fixedSeeder(0.5))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := e.Evaluate(tc.uv)
			if !c.Finite() {
				t.Fatalf("Expected finite colour, got %+v", c)
			}
			if tc.visible != (c.A > 0) {
				t.Fatalf("Expected visible=%v, got alpha %v", tc.visible, c.A)
			}
			for _, ch := range []float32{c.R, c.G, c.B} {
				if ch < 0 || ch > 1.5 {
					t.Errorf("Channel %v outside plausible display range in %+v", ch, c)
				}
			}
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	a := NewWithSeed(0.123)
	b := NewWithSeed(0.123)
	a.Advance(3.3)
	b.Advance(3.3)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			uv := mgl32.Vec2{float32(x) / 15, float32(y) / 15}
			first := a.Evaluate(uv)
			if again := a.Evaluate(uv); again != first {
				t.Fatalf("uv %v: repeated evaluation differs: %+v vs %+v", uv, first, again)
			}
			if other := b.Evaluate(uv); other != first {
				t.Fatalf("uv %v: identical state differs: %+v vs %+v", uv, first, other)
			}
		}
	}
	if a.Time() != 3.3 {
		t.Errorf("Evaluate mutated the clock: %v", a.Time())
	}
}

func TestZeroSpeedFreezesWarp(t *testing.T) {
	e := NewWithSeed(0.4)
	e.SetSpeed(0)
	uv := centred(mgl32.Vec2{0.3, 0.6})

	p0, s0 := e.warp(uv, e.Time()*e.Speed())
	e.Advance(7.25)
	p1, s1 := e.warp(uv, e.Time()*e.Speed())

	if p0 != p1 || s0 != s1 {
		t.Errorf("Expected frozen warp at speed 0, got %v/%v then %v/%v", p0, s0, p1, s1)
	}

	e.SetSpeed(DefaultSpeed)
	p2, _ := e.warp(uv, e.Time()*e.Speed())
	if p2 == p0 {
		t.Errorf("Expected warp to move with non-zero speed")
	}
}

func TestSeedDecorrelatesInstances(t *testing.T) {
	a := NewWithSeed(0.1)
	b := NewWithSeed(0.9)

	differs := false
	for i := 0; i < 10 && !differs; i++ {
		uv := mgl32.Vec2{0.3 + float32(i)*0.04, 0.4}
		differs = a.Evaluate(uv) != b.Evaluate(uv)
	}
	if !differs {
		t.Error("Expected different seeds to produce different colours")
	}
}

func TestBrightnessAndOpacityScale(t *testing.T) {
	uv := mgl32.Vec2{0.7, 0.6}
	e := NewWithSeed(0.2)
	base := e.Evaluate(uv)

	e.SetBrightness(0)
	dark := e.Evaluate(uv)
	if dark.A != base.A {
		t.Errorf("Brightness changed alpha: %v vs %v", dark.A, base.A)
	}

	e.SetBrightness(DefaultBrightness)
	e.SetOpacity(0)
	if c := e.Evaluate(uv); c.A != 0 {
		t.Errorf("Expected alpha 0 with opacity 0, got %v", c.A)
	}
}

func TestGLSLHelpers(t *testing.T) {
	tests := []struct {
		name      string
		got, want float32
	}{
		{"smoothstep low", smoothstep(0, 1, -1), 0},
		{"smoothstep high", smoothstep(0, 1, 2), 1},
		{"smoothstep mid", smoothstep(0, 1, 0.5), 0.5},
		{"smoothstep reversed inner", smoothstep(0.95, 0.2, 0.2), 1},
		{"smoothstep reversed outer", smoothstep(0.95, 0.2, 0.95), 0},
		{"fract negative", fract(-0.25), 0.75},
		{"mix", mix(2, 4, 0.25), 2.5},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}

	for s := float32(0); s < 200; s += 3.7 {
		if r := random(s); r < 0 || r >= 1 {
			t.Fatalf("random(%v) = %v outside [0,1)", s, r)
		}
	}
}
