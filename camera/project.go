package camera

import (
	"github.com/chewxy/math32"

	"skyrunner/math"
)

func (r *Rig) View() math.Mat4 {
	return math.Mat4LookAt(r.position, r.lookAt, math.Vec3Up)
}

func (r *Rig) Projection() math.Mat4 {
	return math.Mat4Perspective(r.cfg.FOV, r.aspect, r.cfg.Near, r.cfg.Far)
}

func (r *Rig) ViewProjection() math.Mat4 {
	return r.Projection().Mul(r.View())
}

// WorldToScreen projects p to normalized device coordinates. ok is false
// when p is behind the eye or outside the view volume.
func (r *Rig) WorldToScreen(p math.Vec3) (ndc math.Vec2, ok bool) {
	clip := r.ViewProjection().MulVec4(math.Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if clip.W <= 1e-7 {
		return math.Vec2{}, false
	}
	ndc = math.Vec2{X: clip.X / clip.W, Y: clip.Y / clip.W}
	z := clip.Z / clip.W
	return ndc, ndc.InUnitSquare() && z >= -1 && z <= 1
}

// ScreenRay returns the world-space ray from the eye through the point at
// normalized device coordinates (x, y).
func (r *Rig) ScreenRay(x, y float32) (origin, dir math.Vec3) {
	forward := r.Forward()
	right := forward.Cross(math.Vec3Up).Normalize()
	up := right.Cross(forward)

	tanHalf := math32.Tan(r.cfg.FOV * math32.Pi / 360)
	dir = forward.
		Add(right.Mul(x * tanHalf * r.aspect)).
		Add(up.Mul(y * tanHalf)).
		Normalize()
	return r.position, dir
}
