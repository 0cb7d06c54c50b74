package shader

import (
	"strings"
	"testing"

	"github.com/richinsley/govortex/vortex"
)

func TestVortexFragmentDeclaresUniforms(t *testing.T) {
	src := VortexFragmentShader()
	names := []string{
		vortex.UniformTime,
		vortex.UniformResolution,
		vortex.UniformSeed,
		vortex.UniformSpeed,
		vortex.UniformStrength,
		vortex.UniformBrightness,
		vortex.UniformOpacity,
	}
	for _, name := range names {
		if !strings.Contains(src, " "+name+";") {
			t.Errorf("Fragment source does not declare %s", name)
		}
	}
	if !strings.HasPrefix(src, "#version 300 es") {
		t.Error("Fragment source must target WebGL2")
	}
}

func TestVortexVertexFeedsFragment(t *testing.T) {
	if !strings.Contains(VortexVertexShader(), "out vec2 vUv;") {
		t.Error("Vertex stage must write vUv")
	}
	if !strings.Contains(VortexFragmentShader(), "in vec2 vUv;") {
		t.Error("Fragment stage must read vUv")
	}
}

func TestDialectSelection(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		prefix string
	}{
		{"vertex gl", GenerateVertexShader(false), "#version 410 core"},
		{"vertex gles", GenerateVertexShader(true), "#version 300 es"},
		{"overlay gl", GetOverlayVertexShader(false), "#version 410 core"},
		{"overlay gles", GetOverlayVertexShader(true), "#version 300 es"},
		{"blit gl", GetBlitFragmentShader(false), "#version 410 core"},
		{"blit gles", GetBlitFragmentShader(true), "#version 300 es"},
	}
	for _, tc := range tests {
		if !strings.HasPrefix(tc.src, tc.prefix) {
			t.Errorf("%s: expected prefix %q", tc.name, tc.prefix)
		}
	}
	if strings.Contains(GetBlitFragmentShader(false), "1.0 - frag_uv.y") {
		t.Error("Blit must sample the offscreen target unflipped")
	}
}
