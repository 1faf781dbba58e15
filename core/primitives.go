package core

import (
	"github.com/chewxy/math32"

	"skyrunner/math"
)

// All builders emit counter-clockwise triangles when seen from outside.

var cubeFaces = []struct {
	normal, u, v math.Vec3
}{
	{math.Vec3Front, math.Vec3Right, math.Vec3Up},
	{math.Vec3Back, math.Vec3Left, math.Vec3Up},
	{math.Vec3Up, math.Vec3Right, math.Vec3Back},
	{math.Vec3Down, math.Vec3Right, math.Vec3Front},
	{math.Vec3Right, math.Vec3Back, math.Vec3Up},
	{math.Vec3Left, math.Vec3Front, math.Vec3Up},
}

// CreateCube builds an axis-aligned cube spanning [-half, half] on each axis
// with four vertices per face so every face keeps a flat normal.
func CreateCube(half float32) *Mesh {
	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range cubeFaces {
		base := uint32(len(vertices))
		for _, c := range corners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(half)
			vertices = append(vertices, Vertex{
				Position: p,
				Normal:   f.normal,
				UV:       math.Vec2{X: (c[0] + 1) / 2, Y: (c[1] + 1) / 2},
			})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return NewMesh("Cube", vertices, indices)
}

// CreateSphere generates a UV-sphere mesh.
func CreateSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	vertices := make([]Vertex, 0, (rings+1)*(segments+1))
	indices := make([]uint32, 0, rings*segments*6)

	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi, cosPhi := math32.Sincos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math32.Pi / float32(segments)
			sinTheta, cosTheta := math32.Sincos(theta)

			normal := math.Vec3{X: sinPhi * cosTheta, Y: cosPhi, Z: sinPhi * sinTheta}
			vertices = append(vertices, Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       math.Vec2{X: 1 - float32(seg)/float32(segments), Y: 1 - float32(ring)/float32(rings)},
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			indices = append(indices, current, current+1, next)
			indices = append(indices, current+1, next+1, next)
		}
	}

	return NewMesh("Sphere", vertices, indices)
}

// CreateCylinder generates a capped cylinder centred on the origin with its
// axis along Y.
func CreateCylinder(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	var vertices []Vertex
	var indices []uint32
	halfHeight := height / 2

	ring := func(i int) (float32, float32) {
		return math32.Sincos(float32(i) * 2 * math32.Pi / float32(segments))
	}

	for i := 0; i <= segments; i++ {
		sinT, cosT := ring(i)
		normal := math.Vec3{X: cosT, Z: sinT}
		u := float32(i) / float32(segments)
		vertices = append(vertices,
			Vertex{Position: math.Vec3{X: cosT * radius, Y: -halfHeight, Z: sinT * radius}, Normal: normal, UV: math.Vec2{X: u, Y: 0}},
			Vertex{Position: math.Vec3{X: cosT * radius, Y: halfHeight, Z: sinT * radius}, Normal: normal, UV: math.Vec2{X: u, Y: 1}},
		)
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices, base, base+1, base+2)
		indices = append(indices, base+2, base+1, base+3)
	}

	addCap := func(y float32, normal math.Vec3) {
		center := uint32(len(vertices))
		vertices = append(vertices, Vertex{Position: math.Vec3{Y: y}, Normal: normal, UV: math.Vec2{X: 0.5, Y: 0.5}})
		for i := 0; i <= segments; i++ {
			sinT, cosT := ring(i)
			vertices = append(vertices, Vertex{
				Position: math.Vec3{X: cosT * radius, Y: y, Z: sinT * radius},
				Normal:   normal,
				UV:       math.Vec2{X: cosT*0.5 + 0.5, Y: sinT*0.5 + 0.5},
			})
		}
		for i := uint32(1); i <= uint32(segments); i++ {
			if normal.Y > 0 {
				indices = append(indices, center, center+i+1, center+i)
			} else {
				indices = append(indices, center, center+i, center+i+1)
			}
		}
	}
	addCap(halfHeight, math.Vec3Up)
	addCap(-halfHeight, math.Vec3Down)

	return NewMesh("Cylinder", vertices, indices)
}

// RecomputeNormals replaces every vertex normal with the normalized sum of
// the area-weighted normals of the triangles that share it.
func RecomputeNormals(m *Mesh) {
	acc := make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa := m.Vertices[a].Position
		n := m.Vertices[b].Position.Sub(pa).Cross(m.Vertices[c].Position.Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = acc[i].Normalize()
	}
}
