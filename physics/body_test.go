package physics

import (
	stdmath "math"
	"testing"

	"skyrunner/math"
)

func approx(a, b float32) bool {
	return stdmath.Abs(float64(a-b)) <= 1e-4
}

func TestConstantVelocityWithoutFriction(t *testing.T) {
	b := Body{
		Position:       math.NewVec3(0, 10, 0),
		Velocity:       math.NewVec3(1, 0.5, -2),
		Friction:       math.Vec3One,
		Restitution:    0.5,
		LandingDamping: 1,
	}
	want := b.Velocity
	for i := 0; i < 100; i++ {
		b.Step(1.0 / 60)
		if b.Velocity != want {
			t.Fatalf("step %d: velocity changed to %v", i, b.Velocity)
		}
	}
	if !approx(b.Position.X, 100.0/60) {
		t.Errorf("expected x = %v, got %v", 100.0/60, b.Position.X)
	}
}

func TestFrictionStrictlyDecreasesSpeed(t *testing.T) {
	b := Flight()
	b.Position = math.NewVec3(0, 50, 0)
	b.Velocity = math.NewVec3(3, 1, -4)

	prev := b.Velocity.Length()
	for i := 0; prev > 1e-3; i++ {
		if i > 1000 {
			t.Fatalf("speed never fell below epsilon, still %v", prev)
		}
		b.Step(1.0 / 60)
		speed := b.Velocity.Length()
		if speed >= prev {
			t.Fatalf("step %d: speed %v did not decrease from %v", i, speed, prev)
		}
		prev = speed
	}
}

func TestGroundCollision(t *testing.T) {
	tests := []struct {
		name    string
		body    Body
		wantVel float32
	}{
		{
			name: "plain bounce",
			body: Body{
				Position: math.NewVec3(0, -0.5, 0), Velocity: math.NewVec3(0, -2, 0),
				Friction: math.Vec3One, Restitution: 0.5, LandingDamping: 1,
			},
			wantVel: 1,
		},
		{
			name: "soft landing",
			body: Body{
				Position: math.NewVec3(0, -0.5, 0), Velocity: math.NewVec3(0, -2, 0),
				Friction: math.Vec3One, Restitution: 0.5, LandingDamping: 0.5,
			},
			wantVel: 0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.body
			b.Step(1.0 / 60)
			if b.Position.Y != 0 {
				t.Errorf("expected y == 0, got %v", b.Position.Y)
			}
			if !approx(b.Velocity.Y, tt.wantVel) {
				t.Errorf("expected vy = %v, got %v", tt.wantVel, b.Velocity.Y)
			}
		})
	}
}

func TestGroundedFallsAndSettles(t *testing.T) {
	b := Grounded()
	b.Position = math.NewVec3(0, 5, 0)
	for i := 0; i < 60*20; i++ {
		b.Step(1.0 / 60)
		if b.Position.Y < 0 {
			t.Fatalf("step %d: body below ground at %v", i, b.Position.Y)
		}
	}
	if b.Position.Y > 0.05 {
		t.Errorf("expected body to settle near the ground, y = %v", b.Position.Y)
	}
}

func TestPitchClamp(t *testing.T) {
	b := Flight()
	b.Position.Y = 10
	b.Pitch = 3
	b.Step(1.0 / 60)
	if !approx(b.Pitch, b.MaxPitch) {
		t.Errorf("expected pitch clamped to %v, got %v", b.MaxPitch, b.Pitch)
	}
	b.Pitch = -3
	b.Step(1.0 / 60)
	if !approx(b.Pitch, -b.MaxPitch) {
		t.Errorf("expected pitch clamped to %v, got %v", -b.MaxPitch, b.Pitch)
	}
}

func TestHeadingVectors(t *testing.T) {
	b := Flight()
	b.Yaw = stdmath.Pi / 2
	f := b.Forward()
	r := b.Right()
	if !approx(f.X, 1) || !approx(f.Z, 0) {
		t.Errorf("forward at yaw pi/2: got %v", f)
	}
	if !approx(f.Dot(r), 0) || !approx(r.Length(), 1) {
		t.Errorf("right %v is not a unit vector orthogonal to %v", r, f)
	}
	if up := r.Cross(f); !approx(up.Y, 1) {
		t.Errorf("right x forward should point up, got %v", up)
	}
}

func TestApplyImpulse(t *testing.T) {
	b := Flight()
	b.Mass = 2
	b.ApplyImpulse(math.NewVec3(4, 0, 0))
	if b.Velocity.X != 2 {
		t.Errorf("expected vx = 2, got %v", b.Velocity.X)
	}
}

func TestClampDelta(t *testing.T) {
	tests := []struct{ in, want float32 }{
		{0.016, 0.016},
		{0.5, DefaultMaxDelta},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := ClampDelta(tt.in, DefaultMaxDelta); got != tt.want {
			t.Errorf("ClampDelta(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStepper(t *testing.T) {
	s := NewStepper()
	if n := s.Advance(0.01); n != 0 {
		t.Errorf("expected no step for a partial frame, got %d", n)
	}
	if n := s.Advance(0.03); n != 2 {
		t.Errorf("expected 2 steps after 0.04s, got %d", n)
	}
	if a := s.Alpha(); a <= 0 || a >= 1 {
		t.Errorf("expected leftover fraction in (0,1), got %v", a)
	}
	if n := s.Advance(10); n != s.MaxSubsteps {
		t.Errorf("expected substeps capped at %d, got %d", s.MaxSubsteps, n)
	}
	if a := s.Alpha(); a != 0 {
		t.Errorf("expected accumulator dropped after cap, got %v", a)
	}
}

func BenchmarkStep(b *testing.B) {
	body := Flight()
	body.Position.Y = 10
	body.Velocity = math.NewVec3(1, 2, 3)
	for i := 0; i < b.N; i++ {
		body.Step(1.0 / 60)
	}
}
