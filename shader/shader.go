package shader

// ───────────────────────────────── Vortex (WebGL2) ──────────────────────────────
//
// Written as GLSL ES 3.00 (WebGL2) and translated to the native dialect at load
// time. The fragment program must stay in step with vortex.Evaluate.

const vortexVertexShaderSource = `#version 300 es
precision highp float;

layout (location = 0) in vec2 in_vert;

uniform vec2  uResolution;
uniform float uScale;
uniform float uRotation;

out vec2 vUv;

void main() {
    vUv = in_vert * 0.5 + 0.5;

    float c = cos(uRotation);
    float s = sin(uRotation);
    vec2 pos = mat2(c, s, -s, c) * in_vert * uScale;

    // keep the disc round on non-square framebuffers
    float aspect = uResolution.x / max(uResolution.y, 1.0);
    if (aspect > 1.0) {
        pos.x /= aspect;
    } else {
        pos.y *= aspect;
    }
    gl_Position = vec4(pos, 0.0, 1.0);
}
`

const vortexFragmentShaderSource = `#version 300 es
precision mediump float;

uniform float uTime;
uniform vec2  uResolution;
uniform float uSeed;
uniform float uSpeed;
uniform float uStrength;
uniform float uBrightness;
uniform float uOpacity;

in vec2 vUv;
out vec4 fragColor;

float random(float seed) {
    return fract(sin(seed) * 43758.5453123);
}

float improvedNoise(vec2 uv, float seed, float time) {
    float x = uv.x * 10.0 + time + seed;
    float y = uv.y * 10.0 - time + seed;
    return (sin(x) * cos(y) + cos(x + y) + sin(x * 1.5) * 0.5) * 0.25 + 0.5;
}

void main() {
    vec2 uv = vUv * 2.0 - 1.0;
    float radius = length(uv);

    if (radius > 0.95) {
        fragColor = vec4(0.0);
        return;
    }

    float z = sqrt(max(0.0, 1.0 - radius * radius));

    float t = uTime * uSpeed;
    vec2 p = uv * 1.5;
    float seed = uSeed;

    for (int i = 1; i < 10; i++) {
        seed += float(i) * 12.0;
        float freq = float(i) * 2.8;
        float amp = 0.35 / float(i);

        p.x += amp * cos(freq * p.y + t + random(seed)) + uv.x / 15.0;
        p.y += amp * sin(freq * p.x + t + random(seed + 1.0)) + uv.y / 15.0;

        if (i < 5) {
            p.x += amp * 0.5 * sin(freq * 1.5 * p.y + t * 0.7 + random(seed + 3.0));
            p.y += amp * 0.5 * cos(freq * 1.5 * p.x + t * 0.7 + random(seed + 4.0));
        }
    }

    float phi = atan(p.y, p.x);
    float swirl = phi + uTime * 0.15;
    vec2 swirledUv = vec2(radius * cos(swirl), radius * sin(swirl));

    float extraNoise = improvedNoise(p * 2.0, seed + 10.0, uTime * 0.1);

    p = mix(p, swirledUv, 0.4);

    float darkCore = smoothstep(0.0, 0.4, radius);

    vec3 color1 = vec3(40.0 / 255.0, 210.0 / 255.0, 230.0 / 255.0);
    vec3 color2 = vec3(10.0 / 255.0, 160.0 / 255.0, 170.0 / 255.0);
    vec3 color3 = vec3(5.0 / 255.0, 20.0 / 255.0, 40.0 / 255.0);

    float mixFactor = sin(p.x * 4.0 + p.y * 4.0 + 1.0 + extraNoise) * 0.5 + 0.5;
    vec3 color = mix(color1, color2, mixFactor);
    color = mix(color, color3, (1.0 - darkCore) * 0.9);
    color = mix(color, color1 * 1.2, extraNoise * 0.25 * darkCore);

    float brightness = smoothstep(0.1, 0.4, radius) * (1.0 - smoothstep(0.7, 0.95, radius));
    brightness = mix(brightness, 0.7, z * 0.5);
    color *= brightness * uBrightness;

    float outerGlow = smoothstep(0.35, 0.6, radius) * (1.0 - smoothstep(0.7, 0.9, radius)) * 0.25;
    color += outerGlow * color1 * extraNoise;

    float pulse = sin(uTime * 0.25) * 0.15 + 0.85;
    color *= pulse;

    float centerFade = smoothstep(0.0, 0.3, radius);
    float alpha = smoothstep(0.95, 0.2, radius) * uOpacity * centerFade;

    fragColor = vec4(color, alpha);
}
`

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// u_rect is the destination rectangle in NDC: x0, y0, x1, y1.
const overlayVertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
uniform vec4 u_rect;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(mix(u_rect.xy, u_rect.zw, frag_uv), 0.0, 1.0);
}
`

const blitFragmentShaderSourceGL = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const overlayVertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
uniform vec4 u_rect;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(mix(u_rect.xy, u_rect.zw, frag_uv), 0.0, 1.0);
}
`

const blitFragmentShaderSourceGLES = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// ────────────────────────────────── Public API ─────────────────────────────────

// VortexVertexShader returns the WebGL2 source of the vortex vertex stage.
func VortexVertexShader() string {
	return vortexVertexShaderSource
}

// VortexFragmentShader returns the WebGL2 source of the vortex fragment stage.
func VortexFragmentShader() string {
	return vortexFragmentShaderSource
}

func GenerateVertexShader(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

func GetOverlayVertexShader(isGLES bool) string {
	if isGLES {
		return overlayVertexShaderSourceGLES
	}
	return overlayVertexShaderSourceGL
}

func GetBlitFragmentShader(isGLES bool) string {
	if isGLES {
		return blitFragmentShaderSourceGLES
	}
	return blitFragmentShaderSourceGL
}
