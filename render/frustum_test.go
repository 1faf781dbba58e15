package render

import (
	"testing"

	"skyrunner/core"
	"skyrunner/math"
	"skyrunner/scene"
)

func lookDownNegZ() math.Mat4 {
	view := math.Mat4LookAt(math.Vec3Zero, math.NewVec3(0, 0, -1), math.Vec3Up)
	return math.Mat4Perspective(60, 1, 0.1, 100).Mul(view)
}

func TestFrustumIntersects(t *testing.T) {
	f := FrustumFromViewProjection(lookDownNegZ())
	unit := math.NewVec3(1, 1, 1)
	tests := []struct {
		name   string
		center math.Vec3
		want   bool
	}{
		{"ahead", math.NewVec3(0, 0, -10), true},
		{"behind", math.NewVec3(0, 0, 10), false},
		{"far right", math.NewVec3(100, 0, -10), false},
		{"above", math.NewVec3(0, 50, -10), false},
		{"beyond far plane", math.NewVec3(0, 0, -500), false},
		{"straddling near plane", math.Vec3Zero, true},
		{"edge of view", math.NewVec3(6, 0, -10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := AABB{Min: tt.center.Sub(unit), Max: tt.center.Add(unit)}
			if got := box.Intersects(&f); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorldBounds(t *testing.T) {
	cube := core.CreateCube(1)
	world := math.Mat4Identity()
	world.Translate(5, 0, 0).RotateY(0.5).Scale(2, 1, 1)

	b := WorldBounds(cube, world)
	if b.Max.Y != 1 || b.Min.Y != -1 {
		t.Errorf("y range = [%v, %v]", b.Min.Y, b.Max.Y)
	}
	for _, v := range cube.Vertices {
		p, _ := world.TransformPoint(v.Position)
		if p.X < b.Min.X-1e-5 || p.X > b.Max.X+1e-5 || p.Z < b.Min.Z-1e-5 || p.Z > b.Max.Z+1e-5 {
			t.Fatalf("vertex %v outside %+v", p, b)
		}
	}
}

func TestSubmitCulls(t *testing.T) {
	g := scene.NewGraph()
	cube := core.CreateCube(1)
	for _, z := range []float32{-10, 10} {
		id, _ := g.Spawn(g.Root(), "box")
		g.SetLocal(id, math.Mat4Translation(math.NewVec3(0, 0, z)))
		g.SetDrawable(id, scene.Drawable{Mesh: cube})
	}
	g.Update()

	f := DefaultFrame()
	f.View = math.Mat4LookAt(math.Vec3Zero, math.NewVec3(0, 0, -1), math.Vec3Up)
	f.Projection = math.Mat4Perspective(60, 1, 0.1, 100)

	rec := &Recorder{}
	stats, _ := Submit(rec, g, f)
	if stats.Drawn != 2 {
		t.Errorf("culling is off by default, drew %d", stats.Drawn)
	}

	f.Cull = true
	stats, _ = Submit(rec, g, f)
	if stats.Drawn != 1 || stats.Culled != 1 || len(rec.Calls) != 1 {
		t.Fatalf("stats = %+v, calls = %d", stats, len(rec.Calls))
	}
	if z := rec.Calls[0].World.Translation().Z; z != -10 {
		t.Errorf("drew the box at z=%v", z)
	}
}
