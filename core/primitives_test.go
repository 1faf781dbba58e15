package core

import (
	"testing"

	"skyrunner/math"
)

// checkOutward verifies that every non-degenerate triangle of a convex,
// origin-centred mesh winds counter-clockwise from outside.
func checkOutward(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("%s: index count %d is not a multiple of 3", m.Name, len(m.Indices))
	}
	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Length() < 1e-6 {
			continue
		}
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		if n.Dot(centroid) <= 0 {
			t.Fatalf("%s: triangle %d faces inward", m.Name, i/3)
		}
	}
}

func TestPrimitivesWindOutward(t *testing.T) {
	for _, m := range []*Mesh{
		CreateCube(1),
		CreateSphere(1, 16, 12),
		CreateCylinder(1.5, 3, 24),
	} {
		t.Run(m.Name, func(t *testing.T) {
			checkOutward(t, m)
			for _, idx := range m.Indices {
				if int(idx) >= len(m.Vertices) {
					t.Fatalf("index %d out of range", idx)
				}
			}
		})
	}
}

func TestCubeBounds(t *testing.T) {
	m := CreateCube(1)
	if len(m.Vertices) != 24 || len(m.Indices) != 36 {
		t.Errorf("unexpected cube size: %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
	min, max := m.Bounds()
	if min != math.NewVec3(-1, -1, -1) || max != math.NewVec3(1, 1, 1) {
		t.Errorf("Bounds: got %v..%v", min, max)
	}
}

func TestRecomputeNormalsFlatFaces(t *testing.T) {
	m := CreateCube(2)
	want := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		want[i] = v.Normal
		m.Vertices[i].Normal = math.Vec3Zero
	}
	RecomputeNormals(m)
	for i, v := range m.Vertices {
		if v.Normal.Sub(want[i]).Length() > 1e-5 {
			t.Errorf("vertex %d: got normal %v, want %v", i, v.Normal, want[i])
		}
	}
}

func TestColorFlat(t *testing.T) {
	if (Color{R: 1}).Flat() {
		t.Errorf("zero alpha must not be flat")
	}
	if !(Color{R: 1, G: 0.4, A: 1}).Flat() {
		t.Errorf("positive alpha must be flat")
	}
}
