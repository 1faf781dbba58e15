package game

import (
	"skyrunner/camera"
	"skyrunner/input"
	"skyrunner/math"
	"skyrunner/physics"
	"skyrunner/pick"
)

var modeKeys = []struct {
	key  input.Key
	mode camera.Mode
}{
	{input.Key1, camera.ModeOrbit},
	{input.Key2, camera.ModeFirstPerson},
	{input.Key3, camera.ModeThirdPerson},
	{input.Key4, camera.ModeFlight},
}

// Tick advances the world by dt seconds of wall time. dt is clamped to
// loop.max_delta first. The caller ends the input frame afterwards.
//
// While the interaction menu is open gameplay input, physics and spells are
// paused; the camera and transforms keep updating.
func (w *World) Tick(dt float32, in input.Source) {
	dt = physics.ClampDelta(dt, w.cfg.Loop.MaxDelta)
	w.time += dt

	if w.menuOpen {
		if in.Pressed(input.KeyQ) || in.Pressed(input.KeyEscape) {
			w.closeInteraction()
		}
		w.updateCamera(dt, camera.Controls{Wheel: in.ConsumeWheel()})
		w.graph.Update()
		w.syncPickables()
		w.hovered = -1
		w.updateCrosshair(false)
		return
	}

	for _, mk := range modeKeys {
		if in.Pressed(mk.key) && w.rig.Mode() != mk.mode {
			w.rig.SetMode(mk.mode)
			w.log.Debug("camera mode", "mode", mk.mode.String())
		}
	}

	w.fly(in)
	w.castSpells(in)
	w.updateSpells(dt)

	for n := w.stepper.Advance(dt); n > 0; n-- {
		w.graph.StepPhysics(w.stepper.Step)
	}

	w.updateCamera(dt, w.cameraControls(in))
	w.graph.Update()
	w.syncPickables()

	aiming := in.Captured() && in.ButtonDown(input.MouseRight)
	w.updateTargeting(aiming, in.ButtonPressed(input.MouseLeft))

	if in.Pressed(input.KeyQ) {
		w.tryOpenInteraction()
	}
	w.updateCrosshair(aiming)
}

// axis returns +1, -1 or 0 from a pair of keys.
func axis(in input.Source, pos, neg input.Key) float32 {
	var v float32
	if in.Down(pos) {
		v++
	}
	if in.Down(neg) {
		v--
	}
	return v
}

// fly sets the player's velocity from the movement keys. Orbit mode uses
// the same keys to pan the camera, so the player holds position there.
func (w *World) fly(in input.Source) {
	b := w.playerBody
	if w.rig.Mode() == camera.ModeOrbit {
		b.Velocity = math.Vec3Zero
		return
	}
	p := w.cfg.Player

	thrust := axis(in, input.KeyW, input.KeyS) * p.Speed
	strafe := axis(in, input.KeyD, input.KeyA) * p.Speed * p.StrafeFactor
	lift := axis(in, input.KeySpace, input.KeyShift) * p.VerticalSpeed

	v := b.Forward().Mul(thrust).Add(b.Right().Mul(strafe))
	v.Y += lift
	b.Velocity = v
}

func (w *World) cameraControls(in input.Source) camera.Controls {
	dx, dy := in.PointerDelta()
	c := camera.Controls{
		PointerDX: dx,
		PointerDY: dy,
		Wheel:     in.ConsumeWheel(),
		Captured:  in.Captured(),
		Look:      in.ButtonDown(input.MouseRight),
		Aim:       in.ButtonDown(input.MouseRight),
	}
	if w.rig.Mode() == camera.ModeOrbit {
		c.PanForward = axis(in, input.KeyW, input.KeyS)
		c.PanRight = axis(in, input.KeyD, input.KeyA)
	}
	return c
}

// updateCamera runs the rig against the player and copies back any
// orientation the rig steered while aiming.
func (w *World) updateCamera(dt float32, c camera.Controls) {
	b := w.playerBody
	t := camera.Target{Position: b.Position, Yaw: b.Yaw, Pitch: b.Pitch}
	w.rig.Update(dt, c, &t)
	b.Yaw = math.WrapAngle(t.Yaw)
	b.Pitch = t.Pitch
	if b.MaxPitch > 0 {
		b.Pitch = math.Clamp(b.Pitch, -b.MaxPitch, b.MaxPitch)
	}
}

func (w *World) syncPickables() {
	for i := range w.pickables {
		w.pickables[i].Sync(w.graph)
	}
}

// aimRay starts at the player and follows its heading.
func (w *World) aimRay() pick.Ray {
	b := w.playerBody
	return pick.RayFromYawPitch(b.Position, b.Yaw, b.Pitch)
}

func (w *World) updateCrosshair(aiming bool) {
	w.crosshairVisible = false
	if !aiming {
		return
	}
	p := w.aimRay().At(w.cfg.Scene.AimDistance)
	w.crosshair, w.crosshairVisible = w.rig.WorldToScreen(p)
}
