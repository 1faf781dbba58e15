// Package physics integrates point bodies with a semi-implicit Euler step and
// a flat ground plane at y = 0.
package physics

import (
	"github.com/chewxy/math32"

	"skyrunner/math"
)

// Body is the kinematic state of one entity. Orientation is tracked as yaw
// and pitch only; there is no rotational inertia.
type Body struct {
	Position     math.Vec3
	Velocity     math.Vec3
	Acceleration math.Vec3

	Mass        float32
	Restitution float32
	// Friction multiplies velocity per axis once per step; 1 means no drag.
	Friction math.Vec3
	// LandingDamping further scales the reflected vertical velocity on
	// ground contact. 1 gives a plain restitution bounce.
	LandingDamping float32

	Yaw, Pitch float32
	// MaxPitch clamps |Pitch| after every step. Zero disables the clamp.
	MaxPitch float32
}

// Grounded returns a body under constant gravity that slides on the ground
// with a little horizontal drag.
func Grounded() Body {
	return Body{
		Acceleration:   math.Vec3{Y: -9.8},
		Mass:           1,
		Restitution:    0.5,
		Friction:       math.Vec3{X: 0.98, Y: 1, Z: 0.98},
		LandingDamping: 1,
	}
}

// Flight returns a body with no persistent gravity, drag on every axis and a
// soft landing.
func Flight() Body {
	return Body{
		Mass:           1,
		Restitution:    0.5,
		Friction:       math.Vec3{X: 0.95, Y: 0.95, Z: 0.95},
		LandingDamping: 0.5,
		MaxPitch:       math32.Pi / 4,
	}
}

// Step advances the body by dt seconds. dt must already be clamped by the
// caller; see ClampDelta.
func (b *Body) Step(dt float32) {
	b.Velocity = b.Velocity.Add(b.Acceleration.Mul(dt))
	b.Velocity = b.Velocity.MulVec(b.Friction)
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	if b.Position.Y < 0 {
		b.Position.Y = 0
		if b.Velocity.Y < 0 {
			b.Velocity.Y = -b.Velocity.Y * b.Restitution * b.LandingDamping
		}
	}

	if b.MaxPitch > 0 {
		b.Pitch = math.Clamp(b.Pitch, -b.MaxPitch, b.MaxPitch)
	}
}

// ApplyImpulse changes velocity by impulse/mass. A non-positive mass is
// treated as 1.
func (b *Body) ApplyImpulse(impulse math.Vec3) {
	mass := b.Mass
	if mass <= 0 {
		mass = 1
	}
	b.Velocity = b.Velocity.Add(impulse.Mul(1 / mass))
}

// Forward is the unit heading of the body from its yaw and pitch.
func (b *Body) Forward() math.Vec3 {
	return math.Direction(b.Yaw, b.Pitch)
}

// Right is the horizontal unit vector to the right of the heading.
func (b *Body) Right() math.Vec3 {
	s, c := math32.Sincos(b.Yaw)
	return math.Vec3{X: -c, Z: s}
}

// OnGround reports whether the body rests on the ground plane.
func (b *Body) OnGround() bool {
	return b.Position.Y <= 0
}
