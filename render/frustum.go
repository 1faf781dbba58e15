package render

import (
	"github.com/chewxy/math32"

	"skyrunner/core"
	"skyrunner/math"
)

// Plane is the half-space Normal·p + D >= 0.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// DistanceTo returns the signed distance from pt to the plane; positive is
// inside.
func (p Plane) DistanceTo(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromViewProjection extracts normalized clip planes from vp with the
// Gribb/Hartmann method.
func FrustumFromViewProjection(vp math.Mat4) Frustum {
	row := func(i int) math.Vec4 {
		return math.Vec4{X: vp[i], Y: vp[4+i], Z: vp[8+i], W: vp[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	f.Planes[0] = normalizePlane(r3.X+r0.X, r3.Y+r0.Y, r3.Z+r0.Z, r3.W+r0.W)
	f.Planes[1] = normalizePlane(r3.X-r0.X, r3.Y-r0.Y, r3.Z-r0.Z, r3.W-r0.W)
	f.Planes[2] = normalizePlane(r3.X+r1.X, r3.Y+r1.Y, r3.Z+r1.Z, r3.W+r1.W)
	f.Planes[3] = normalizePlane(r3.X-r1.X, r3.Y-r1.Y, r3.Z-r1.Z, r3.W-r1.W)
	f.Planes[4] = normalizePlane(r3.X+r2.X, r3.Y+r2.Y, r3.Z+r2.Z, r3.W+r2.W)
	f.Planes[5] = normalizePlane(r3.X-r2.X, r3.Y-r2.Y, r3.Z-r2.Z, r3.W-r2.W)
	return f
}

func normalizePlane(a, b, c, d float32) Plane {
	l := math.Vec3{X: a, Y: b, Z: c}.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: math.Vec3{X: a / l, Y: b / l, Z: c / l}, D: d / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// Intersects reports false only when box lies entirely outside one plane.
// For each plane it tests the corner furthest along the plane normal.
func (box AABB) Intersects(f *Frustum) bool {
	for _, p := range f.Planes {
		v := box.Max
		if p.Normal.X < 0 {
			v.X = box.Min.X
		}
		if p.Normal.Y < 0 {
			v.Y = box.Min.Y
		}
		if p.Normal.Z < 0 {
			v.Z = box.Min.Z
		}
		if p.DistanceTo(v) < 0 {
			return false
		}
	}
	return true
}

// WorldBounds transforms the mesh's local bounds by world and returns the
// box around the eight transformed corners.
func WorldBounds(mesh *core.Mesh, world math.Mat4) AABB {
	mn, mx := mesh.Bounds()
	out := AABB{}
	for i := 0; i < 8; i++ {
		c := mn
		if i&1 != 0 {
			c.X = mx.X
		}
		if i&2 != 0 {
			c.Y = mx.Y
		}
		if i&4 != 0 {
			c.Z = mx.Z
		}
		p, _ := world.TransformPoint(c)
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out.Min = math.Vec3{X: math32.Min(out.Min.X, p.X), Y: math32.Min(out.Min.Y, p.Y), Z: math32.Min(out.Min.Z, p.Z)}
		out.Max = math.Vec3{X: math32.Max(out.Max.X, p.X), Y: math32.Max(out.Max.Y, p.Y), Z: math32.Max(out.Max.Z, p.Z)}
	}
	return out
}
