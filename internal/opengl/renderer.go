// Package opengl draws render.DrawCalls with an OpenGL 4.1 core context.
package opengl

import (
	"fmt"
	"log/slog"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"skyrunner/core"
	"skyrunner/math"
	"skyrunner/render"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Renderer implements render.Renderer. All methods must run on the thread
// that owns the GL context.
type Renderer struct {
	program   uint32
	u         uniforms
	gpuMeshes map[*core.Mesh]*GPUMesh
	textures  map[string]uint32

	viewProj math.Mat4
	frame    render.Frame
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer initialises OpenGL. The window's context must be current.
func NewRenderer(log *slog.Logger) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if log != nil {
		log.Info("opengl ready",
			"version", gl.GoStr(gl.GetString(gl.VERSION)),
			"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	}

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.FrontFace(gl.CCW)

	r := &Renderer{
		program:   prog,
		u:         lookupUniforms(prog),
		gpuMeshes: make(map[*core.Mesh]*GPUMesh),
		textures: map[string]uint32{
			"default": uploadTexture(64, 64, checkerPixels(64, 8)),
		},
	}
	return r, nil
}

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// BeginFrame clears the framebuffer and uploads the frame globals.
func (r *Renderer) BeginFrame(f render.Frame) error {
	r.frame = f
	r.viewProj = f.Projection.Mul(f.View)

	gl.ClearColor(f.Sky.R, f.Sky.G, f.Sky.B, f.Sky.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	l := f.LightDirection
	gl.Uniform3f(r.u.lightDir, l.X, l.Y, l.Z)
	gl.Uniform1f(r.u.ambient, f.Ambient)
	gl.Uniform1i(r.u.albedoTex, 0)
	return nil
}

// Draw uploads the mesh on first use and issues one indexed draw. Outline
// calls cull front faces so only the enlarged back shell shows around the
// parent.
func (r *Renderer) Draw(c render.DrawCall) {
	gpu := r.ensureUploaded(c.Mesh)
	if gpu == nil {
		return
	}

	mvp := r.viewProj.Mul(c.World)
	// Mat4 is column-major: pass directly (transpose=false).
	gl.UniformMatrix4fv(r.u.mvp, 1, false, &mvp[0])
	gl.UniformMatrix4fv(r.u.model, 1, false, &c.World[0])

	if c.HasOverride {
		gl.Uniform4f(r.u.overrideColor, c.Override.R, c.Override.G, c.Override.B, c.Override.A)
	} else {
		gl.Uniform4f(r.u.overrideColor, 0, 0, 0, 0)
	}
	r.applyMaterial(c.Material)

	if c.Outline {
		gl.CullFace(gl.FRONT)
	}
	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	if c.Outline {
		gl.CullFace(gl.BACK)
	}
}

func (r *Renderer) EndFrame() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

func (r *Renderer) applyMaterial(m *core.Material) {
	if m == nil {
		m = core.DefaultMaterial()
	}
	a := m.Albedo
	gl.Uniform4f(r.u.albedo, a.R, a.G, a.B, a.A)

	tex, ok := r.textures[m.Texture]
	if !ok || m.Texture == "" {
		gl.Uniform1i(r.u.hasTexture, 0)
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform1i(r.u.hasTexture, 1)
}

// ReleaseMesh frees GPU buffers for the given mesh.
func (r *Renderer) ReleaseMesh(mesh *core.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		gl.DeleteBuffers(1, &gpu.EBO)
		delete(r.gpuMeshes, mesh)
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	for name, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
		delete(r.textures, name)
	}
	gl.DeleteProgram(r.program)
}

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(mesh *core.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &GPUMesh{IndexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	attribs := []struct {
		size   int32
		offset uintptr
	}{
		{3, unsafe.Offsetof(v.Position)},
		{3, unsafe.Offsetof(v.Normal)},
		{2, unsafe.Offsetof(v.UV)},
	}
	for loc, a := range attribs {
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointer(uint32(loc), a.size, gl.FLOAT, false, stride, gl.PtrOffset(int(a.offset)))
	}

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	return gpu
}
