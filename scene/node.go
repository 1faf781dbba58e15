package scene

import (
	"skyrunner/core"
	"skyrunner/math"
	"skyrunner/physics"
)

// NodeID addresses a node in a Graph. The zero value never refers to a live
// node. IDs of destroyed nodes stay invalid even after their slot is reused.
type NodeID struct {
	index uint32
	gen   uint32
}

func (id NodeID) IsZero() bool {
	return id.gen == 0
}

// Drawable describes what the renderer should draw at a node.
type Drawable struct {
	Mesh     *core.Mesh
	Material *core.Material
	// Override, when set with a positive alpha, replaces lighting and
	// texturing with a flat colour.
	Override *core.Color
	// Outline draws the mesh with front faces culled so only the silhouette
	// around the parent shows.
	Outline bool
}

// node is one arena slot.
type node struct {
	gen   uint32
	alive bool

	name     string
	parent   int32
	children []uint32

	local   math.Mat4
	world   math.Mat4
	visible bool

	drawable *Drawable

	// Physics-driven nodes rebuild local from body every Update.
	body  *physics.Body
	scale math.Vec3
}

// bodyMatrix is T(position) * RotY(yaw) * RotX(-pitch) * S(scale). With
// this order local +Z follows the body's heading.
func bodyMatrix(b *physics.Body, scale math.Vec3) math.Mat4 {
	m := math.Mat4Identity()
	m.Translate(b.Position.X, b.Position.Y, b.Position.Z).
		RotateY(b.Yaw).
		RotateX(-b.Pitch).
		Scale(scale.X, scale.Y, scale.Z)
	return m
}
