// Package pick casts rays against sphere and box bounds and picks the
// nearest hit.
package pick

import (
	"github.com/chewxy/math32"

	"skyrunner/math"
	"skyrunner/scene"
)

// parallelEpsilon is the direction component below which a ray counts as
// parallel to a box slab.
const parallelEpsilon = 1e-8

// Ray represents a ray in 3D space. Direction is expected to be unit length
// so hit distances are in world units.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// RayFromYawPitch builds a ray heading (sin(yaw)cos(pitch), sin(pitch),
// cos(yaw)cos(pitch)).
func RayFromYawPitch(origin math.Vec3, yaw, pitch float32) Ray {
	return Ray{Origin: origin, Direction: math.Direction(yaw, pitch)}
}

func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RaySphere returns the nearest positive distance along r to the sphere.
// A ray starting inside the sphere hits the far side.
func RaySphere(r Ray, center math.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	h := b*b - c
	if h < 0 {
		return 0, false
	}
	h = math32.Sqrt(h)
	if t := -b - h; t > 0 {
		return t, true
	}
	if t := -b + h; t > 0 {
		return t, true
	}
	return 0, false
}

// RayAABB intersects r with the box centre±halfExtents using the slab
// method.
func RayAABB(r Ray, center, halfExtents math.Vec3) (float32, bool) {
	lower := center.Sub(halfExtents)
	upper := center.Add(halfExtents)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{lower.X, lower.Y, lower.Z}
	hi := [3]float32{upper.X, upper.Y, upper.Z}

	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	for i := 0; i < 3; i++ {
		if math32.Abs(dir[i]) < parallelEpsilon {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (lo[i] - origin[i]) * inv
		t2 := (hi[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmin > 0 {
		return tmin, true
	}
	if tmax > 0 {
		return tmax, true
	}
	return 0, false
}

type ShapeKind int

const (
	Sphere ShapeKind = iota
	Box
)

// Shape is a sphere (Center, Radius) or an axis-aligned box (Center,
// HalfExtents) depending on Kind.
type Shape struct {
	Kind        ShapeKind
	Center      math.Vec3
	Radius      float32
	HalfExtents math.Vec3
}

func (s Shape) Intersect(r Ray) (float32, bool) {
	switch s.Kind {
	case Sphere:
		return RaySphere(r, s.Center, s.Radius)
	case Box:
		return RayAABB(r, s.Center, s.HalfExtents)
	}
	return 0, false
}

// Pickable is a hit-test proxy for a scene node. It does not own the node.
type Pickable struct {
	Label string
	Node  scene.NodeID
	Shape Shape
	// Offset is added to the node's world translation by Sync.
	Offset math.Vec3
}

// Sync moves the shape centre to the node's current world translation plus
// Offset. Pickables whose node is gone keep their last centre.
func (p *Pickable) Sync(g *scene.Graph) {
	if !g.Valid(p.Node) {
		return
	}
	p.Shape.Center = g.World(p.Node).Translation().Add(p.Offset)
}

// Hit is the nearest intersection found by Pick.
type Hit struct {
	Index    int
	Distance float32
	Point    math.Vec3
}

// Pick returns the pickable with the smallest positive hit distance. On equal
// distances the earlier pickable wins.
func Pick(r Ray, pickables []Pickable) (Hit, bool) {
	best := Hit{Index: -1}
	for i := range pickables {
		t, ok := pickables[i].Shape.Intersect(r)
		if !ok {
			continue
		}
		if best.Index < 0 || t < best.Distance {
			best = Hit{Index: i, Distance: t}
		}
	}
	if best.Index < 0 {
		return Hit{}, false
	}
	best.Point = r.At(best.Distance)
	return best, true
}
