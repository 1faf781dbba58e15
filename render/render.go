// Package render is the boundary between the scene and a drawing backend.
// Backends implement Renderer; Submit feeds them one frame of the graph.
package render

import (
	"fmt"

	"skyrunner/core"
	"skyrunner/math"
	"skyrunner/scene"
)

// Frame holds the per-frame globals shared by every draw call.
type Frame struct {
	View           math.Mat4
	Projection     math.Mat4
	CameraPosition math.Vec3
	// LightDirection points from the surface toward the light.
	LightDirection math.Vec3
	Ambient        float32
	Sky            core.Color
	// Cull skips drawables whose bounds fall outside the view frustum.
	Cull bool
}

// DefaultFrame returns a frame with identity matrices and the default
// lighting.
func DefaultFrame() Frame {
	return Frame{
		View:           math.Mat4Identity(),
		Projection:     math.Mat4Identity(),
		LightDirection: math.NewVec3(0.5, 1, 0.7).Normalize(),
		Ambient:        0.2,
		Sky:            core.Color{R: 0.2, G: 0.3, B: 0.5, A: 1},
	}
}

// DrawCall is one drawable node as seen by a backend.
type DrawCall struct {
	World    math.Mat4
	Mesh     *core.Mesh
	Material *core.Material
	// Override is the flat colour when HasOverride is true.
	Override    core.Color
	HasOverride bool
	Outline     bool
}

// Renderer is implemented by drawing backends.
type Renderer interface {
	BeginFrame(f Frame) error
	Draw(c DrawCall)
	EndFrame() error
}

// Stats counts what one Submit did.
type Stats struct {
	Drawn  int
	Culled int
}

// Submit draws every visible drawable of g. The graph must already be
// updated for this tick.
func Submit(r Renderer, g *scene.Graph, f Frame) (Stats, error) {
	var stats Stats
	if err := r.BeginFrame(f); err != nil {
		return stats, fmt.Errorf("begin frame: %w", err)
	}

	var frustum *Frustum
	if f.Cull {
		fr := FrustumFromViewProjection(f.Projection.Mul(f.View))
		frustum = &fr
	}

	g.Traverse(func(_ scene.NodeID, world math.Mat4, d scene.Drawable) {
		if d.Mesh == nil {
			return
		}
		if frustum != nil && !WorldBounds(d.Mesh, world).Intersects(frustum) {
			stats.Culled++
			return
		}
		c := DrawCall{World: world, Mesh: d.Mesh, Material: d.Material, Outline: d.Outline}
		if c.Material == nil {
			c.Material = core.DefaultMaterial()
		}
		if d.Override != nil && d.Override.Flat() {
			c.Override = *d.Override
			c.HasOverride = true
		}
		r.Draw(c)
		stats.Drawn++
	})
	if err := r.EndFrame(); err != nil {
		return stats, fmt.Errorf("end frame: %w", err)
	}
	return stats, nil
}

// Recorder is a headless Renderer that keeps the calls of the last frame.
type Recorder struct {
	Frame  Frame
	Calls  []DrawCall
	Frames int
}

func (r *Recorder) BeginFrame(f Frame) error {
	r.Frame = f
	r.Calls = r.Calls[:0]
	return nil
}

func (r *Recorder) Draw(c DrawCall) {
	r.Calls = append(r.Calls, c)
}

func (r *Recorder) EndFrame() error {
	r.Frames++
	return nil
}

// Count returns how many calls of the last frame drew m.
func (r *Recorder) Count(m *core.Mesh) int {
	n := 0
	for _, c := range r.Calls {
		if c.Mesh == m {
			n++
		}
	}
	return n
}
