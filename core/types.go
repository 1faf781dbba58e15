package core

import (
	"github.com/chewxy/math32"

	"skyrunner/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
	ColorGray  = Color{0.8, 0.8, 0.8, 1}
)

// Flat reports whether the colour should be drawn unlit and untextured.
// Only override colours with a positive alpha qualify.
func (c Color) Flat() bool {
	return c.A > 0
}

type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// Mesh holds CPU-side vertex/index data. GPU upload is owned by the renderer
// backend, which keys its buffers by mesh pointer.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

func NewMesh(name string, vertices []Vertex, indices []uint32) *Mesh {
	return &Mesh{Name: name, Vertices: vertices, Indices: indices}
}

// Bounds returns the tight local-space box of the vertex positions.
func (m *Mesh) Bounds() (min, max math.Vec3) {
	if len(m.Vertices) == 0 {
		return math.Vec3Zero, math.Vec3Zero
	}
	min = m.Vertices[0].Position
	max = min
	for _, v := range m.Vertices[1:] {
		p := v.Position
		min = math.Vec3{X: math32.Min(min.X, p.X), Y: math32.Min(min.Y, p.Y), Z: math32.Min(min.Z, p.Z)}
		max = math.Vec3{X: math32.Max(max.X, p.X), Y: math32.Max(max.Y, p.Y), Z: math32.Max(max.Z, p.Z)}
	}
	return min, max
}

// Material is the surface a drawable is shaded with. Texture names the
// texture the renderer should bind; empty means the renderer's default.
type Material struct {
	Name    string
	Albedo  Color
	Texture string
}

func DefaultMaterial() *Material {
	return &Material{Name: "default", Albedo: ColorWhite}
}
