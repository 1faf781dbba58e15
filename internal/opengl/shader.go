package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 mvp;
uniform mat4 model;

out vec3 fragNormal;
out vec2 fragUV;

void main() {
    gl_Position = mvp * vec4(inPosition, 1.0);
    fragNormal  = mat3(model) * inNormal;
    fragUV      = inUV;
}
` + "\x00"

// The override colour, when its alpha is positive, replaces both texture and
// lighting.
const fragSrc = `
#version 410 core
in vec3 fragNormal;
in vec2 fragUV;

uniform vec3  lightDir;
uniform float ambient;
uniform vec4  albedo;
uniform vec4  overrideColor;
uniform bool  hasTexture;
uniform sampler2D albedoTex;

out vec4 outColor;

void main() {
    if (overrideColor.a > 0.0) {
        outColor = overrideColor;
        return;
    }
    vec4 base = albedo;
    if (hasTexture) {
        base *= texture(albedoTex, fragUV);
    }
    float diff = max(dot(normalize(fragNormal), normalize(lightDir)), 0.0);
    outColor = vec4(base.rgb * (ambient + (1.0 - ambient) * diff), base.a);
}
` + "\x00"

type uniforms struct {
	mvp, model    int32
	lightDir      int32
	ambient       int32
	albedo        int32
	overrideColor int32
	hasTexture    int32
	albedoTex     int32
}

func lookupUniforms(prog uint32) uniforms {
	loc := func(name string) int32 {
		return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
	}
	return uniforms{
		mvp:           loc("mvp"),
		model:         loc("model"),
		lightDir:      loc("lightDir"),
		ambient:       loc("ambient"),
		albedo:        loc("albedo"),
		overrideColor: loc("overrideColor"),
		hasTexture:    loc("hasTexture"),
		albedoTex:     loc("albedoTex"),
	}
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
