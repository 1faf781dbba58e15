// Package camera implements a mode-switchable follow camera. Each mode owns
// its angles and distances; all modes share one smoothing step.
//
// Pointer convention for every mode: moving the pointer right turns the view
// right (yaw decreases) and moving it down aims lower.
package camera

import (
	"github.com/chewxy/math32"

	"skyrunner/math"
)

type Mode int

const (
	ModeOrbit Mode = iota
	ModeFirstPerson
	ModeThirdPerson
	ModeFlight
)

func (m Mode) String() string {
	switch m {
	case ModeOrbit:
		return "orbit"
	case ModeFirstPerson:
		return "first-person"
	case ModeThirdPerson:
		return "third-person"
	case ModeFlight:
		return "flight"
	}
	return "unknown"
}

// Target is the followed entity. In flight mode with aim held, Update writes
// the steered orientation back into Yaw and Pitch.
type Target struct {
	Position   math.Vec3
	Yaw, Pitch float32
}

// Controls is one frame of camera input. Pointer deltas are in pixels, the
// wheel in lines with positive values zooming out.
type Controls struct {
	PointerDX, PointerDY float32
	Wheel                float32
	// Captured is true while the pointer is locked to the window.
	Captured bool
	// Look enables third-person rotation.
	Look bool
	// Aim redirects pointer rotation to the target in flight mode.
	Aim bool
	// PanForward and PanRight move the orbit pivot, each in [-1, 1].
	PanForward, PanRight float32
}

type Rig struct {
	cfg    Config
	mode   Mode
	aspect float32

	entered bool
	primed  bool

	orbitPivot    math.Vec3
	orbitYaw      float32
	orbitPitch    float32
	orbitDistance float32

	fpYaw, fpPitch float32

	tpYaw, tpPitch float32

	// flightYaw is the camera's horizontal offset from the body's heading.
	flightYaw       float32
	flightElevation float32
	flightDistance  float32
	aiming          bool

	rawPosition, rawLookAt math.Vec3
	position, lookAt       math.Vec3
}

func NewRig(cfg Config, mode Mode) *Rig {
	return &Rig{
		cfg:             cfg,
		mode:            mode,
		aspect:          1,
		entered:         true,
		orbitPitch:      0.3,
		orbitDistance:   cfg.Orbit.Distance,
		flightElevation: cfg.Flight.Elevation,
		flightDistance:  cfg.Flight.Distance,
	}
}

func (r *Rig) Mode() Mode {
	return r.mode
}

// SetMode switches modes immediately. The new mode initialises its angles
// from the target on the next Update.
func (r *Rig) SetMode(m Mode) {
	if m == r.mode {
		return
	}
	r.mode = m
	r.entered = true
	r.aiming = false
}

// SetAspect updates the projection aspect ratio; a non-positive height is
// ignored.
func (r *Rig) SetAspect(width, height float32) {
	if height > 0 && width > 0 {
		r.aspect = width / height
	}
}

func (r *Rig) Aspect() float32 {
	return r.aspect
}

// Position is the smoothed eye position.
func (r *Rig) Position() math.Vec3 {
	return r.position
}

// LookAt is the smoothed point the eye looks at.
func (r *Rig) LookAt() math.Vec3 {
	return r.lookAt
}

// Forward is the unit view direction.
func (r *Rig) Forward() math.Vec3 {
	return r.lookAt.Sub(r.position).Normalize()
}

func (r *Rig) OrbitDistance() float32  { return r.orbitDistance }
func (r *Rig) FlightDistance() float32 { return r.flightDistance }

// Angles reports the active mode's yaw-like and pitch-like angles.
func (r *Rig) Angles() (yaw, pitch float32) {
	switch r.mode {
	case ModeOrbit:
		return r.orbitYaw, r.orbitPitch
	case ModeFirstPerson:
		return r.fpYaw, r.fpPitch
	case ModeThirdPerson:
		return r.tpYaw, r.tpPitch
	default:
		return r.flightYaw, r.flightElevation
	}
}

// Snap moves the smoothed eye straight to its raw target.
func (r *Rig) Snap() {
	r.position = r.rawPosition
	r.lookAt = r.rawLookAt
}

// Update computes the raw eye and look-at point for the active mode and then
// moves the smoothed values toward them.
func (r *Rig) Update(dt float32, c Controls, t *Target) {
	if r.entered {
		r.enter(t)
		r.entered = false
	}

	switch r.mode {
	case ModeOrbit:
		r.updateOrbit(dt, c)
	case ModeFirstPerson:
		r.updateFirstPerson(c, t)
	case ModeThirdPerson:
		r.updateThirdPerson(c, t)
	case ModeFlight:
		r.updateFlight(c, t)
	}

	if !r.primed {
		r.Snap()
		r.primed = true
		return
	}
	rate := math32.Min(r.cfg.SmoothSpeed*dt, 1)
	r.position = r.position.Lerp(r.rawPosition, rate)
	r.lookAt = r.lookAt.Lerp(r.rawLookAt, rate)
}

func (r *Rig) enter(t *Target) {
	switch r.mode {
	case ModeOrbit:
		r.orbitPivot = t.Position
		r.orbitYaw = t.Yaw + math32.Pi
	case ModeFirstPerson:
		r.fpYaw = t.Yaw
		r.fpPitch = math.Clamp(t.Pitch, -r.cfg.FirstPerson.MaxPitch, r.cfg.FirstPerson.MaxPitch)
	case ModeThirdPerson:
		r.tpYaw = t.Yaw
	}
}

func (r *Rig) updateOrbit(dt float32, c Controls) {
	o := r.cfg.Orbit
	if c.Captured {
		r.orbitYaw -= c.PointerDX * r.cfg.Sensitivity
		r.orbitPitch += c.PointerDY * r.cfg.Sensitivity
	}
	r.orbitPitch = math.Clamp(r.orbitPitch, -o.MaxPitch, o.MaxPitch)
	r.orbitDistance = math.Clamp(r.orbitDistance+c.Wheel*o.ZoomSpeed, o.MinDistance, o.MaxDistance)

	// Pan along the view direction flattened onto the ground.
	sy, cy := math32.Sincos(r.orbitYaw)
	forward := math.Vec3{X: -sy, Z: -cy}
	right := math.Vec3{X: cy, Z: -sy}
	pan := forward.Mul(c.PanForward).Add(right.Mul(c.PanRight))
	r.orbitPivot = r.orbitPivot.Add(pan.Mul(o.PanSpeed * dt))

	r.rawLookAt = r.orbitPivot
	r.rawPosition = r.orbitPivot.Add(math.Direction(r.orbitYaw, r.orbitPitch).Mul(r.orbitDistance))
}

func (r *Rig) updateFirstPerson(c Controls, t *Target) {
	fp := r.cfg.FirstPerson
	if c.Captured {
		r.fpYaw -= c.PointerDX * r.cfg.Sensitivity
		r.fpPitch -= c.PointerDY * r.cfg.Sensitivity
	}
	r.fpPitch = math.Clamp(r.fpPitch, -fp.MaxPitch, fp.MaxPitch)

	r.rawPosition = t.Position.Add(math.Vec3{Y: fp.EyeHeight})
	r.rawLookAt = r.rawPosition.Add(math.Direction(r.fpYaw, r.fpPitch).Mul(fp.LookDistance))
}

func (r *Rig) updateThirdPerson(c Controls, t *Target) {
	tp := r.cfg.ThirdPerson
	if c.Look {
		r.tpYaw -= c.PointerDX * r.cfg.Sensitivity
		r.tpPitch += c.PointerDY * r.cfg.Sensitivity
	} else {
		r.tpYaw = t.Yaw
	}
	r.tpPitch = math.Clamp(r.tpPitch, -tp.MaxPitch, tp.MaxPitch)

	se, ce := math32.Sincos(r.tpPitch)
	behind := math.Direction(r.tpYaw, 0).Mul(-tp.Distance * ce)
	r.rawPosition = t.Position.Add(behind).Add(math.Vec3{Y: tp.Height + tp.Distance*se})
	r.rawLookAt = t.Position.Add(math.Vec3{Y: tp.LookHeight})
}

func (r *Rig) updateFlight(c Controls, t *Target) {
	f := r.cfg.Flight
	sens := r.cfg.Sensitivity
	aim := c.Aim && c.Captured

	if aim {
		if !r.aiming {
			// Hand the camera's offset to the body so the view does not jump.
			t.Yaw += r.flightYaw
			t.Pitch = -r.flightElevation
		}
		t.Yaw -= c.PointerDX * sens
		t.Pitch -= c.PointerDY * sens
		r.flightYaw = 0
		r.flightElevation = -t.Pitch
	} else if c.Captured {
		r.flightYaw -= c.PointerDX * sens
		r.flightElevation += c.PointerDY * sens
	}
	r.aiming = aim
	r.flightElevation = math.Clamp(r.flightElevation, f.MinElevation, f.MaxElevation)
	r.flightDistance = math.Clamp(r.flightDistance+c.Wheel*f.ZoomSpeed, f.MinDistance, f.MaxDistance)

	yaw := t.Yaw + math32.Pi + r.flightYaw
	sy, cy := math32.Sincos(yaw)
	se, ce := math32.Sincos(r.flightElevation)
	horizontal := ce * r.flightDistance

	r.rawPosition = t.Position.Add(math.Vec3{
		X: sy * horizontal,
		Y: f.Height + se*r.flightDistance,
		Z: cy * horizontal,
	})
	r.rawLookAt = t.Position.Add(math.Vec3{Y: f.LookHeight})
}

// Aiming reports whether the last flight update redirected rotation to the
// target.
func (r *Rig) Aiming() bool {
	return r.aiming
}
