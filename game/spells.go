package game

import (
	"skyrunner/input"
	"skyrunner/math"
	"skyrunner/scene"
)

type SpellKind int

const (
	Fireball SpellKind = iota
	Shield
)

func (k SpellKind) String() string {
	if k == Shield {
		return "shield"
	}
	return "fireball"
}

const (
	fireballSpeed    = 50
	fireballLifetime = 3
	fireballOffset   = 2
	shieldLifetime   = 5
)

// spell is a transient node removed from the graph once its lifetime runs
// out.
type spell struct {
	kind     SpellKind
	node     scene.NodeID
	velocity math.Vec3
	lifetime float32
	age      float32
}

// Spells returns how many spells of kind are alive.
func (w *World) Spells(kind SpellKind) int {
	n := 0
	for _, s := range w.spells {
		if s.kind == kind {
			n++
		}
	}
	return n
}

func (w *World) castSpells(in input.Source) {
	if in.Pressed(input.KeyF) {
		w.cast(Fireball)
	}
	if in.Pressed(input.KeyE) {
		w.cast(Shield)
	}
}

func (w *World) spellOrigin() math.Vec3 {
	return w.playerBody.Position.Add(math.Vec3{Y: spellHeight})
}

func (w *World) cast(kind SpellKind) {
	s := spell{kind: kind}
	d := scene.Drawable{}
	pos := w.spellOrigin()

	switch kind {
	case Fireball:
		forward := w.playerBody.Forward()
		pos = pos.Add(forward.Mul(fireballOffset))
		s.velocity = forward.Mul(fireballSpeed)
		s.lifetime = fireballLifetime
		c := fireballColor
		d = scene.Drawable{Mesh: w.meshes.fireball, Override: &c}
	case Shield:
		s.lifetime = shieldLifetime
		c := shieldColor
		d = scene.Drawable{Mesh: w.meshes.shield, Override: &c}
	}

	id, err := w.graph.Spawn(w.graph.Root(), kind.String())
	if err != nil {
		w.log.Error("spawn spell", "kind", kind.String(), "err", err)
		return
	}
	w.graph.SetLocal(id, math.Mat4Translation(pos))
	w.graph.SetDrawable(id, d)
	s.node = id
	w.spells = append(w.spells, s)
	w.log.Debug("spell cast", "kind", kind.String(), "at", pos)
}

// updateSpells ages every spell, destroys the expired ones and moves the
// rest. Shields stay centred on the player.
func (w *World) updateSpells(dt float32) {
	live := w.spells[:0]
	for _, s := range w.spells {
		s.age += dt
		if s.age > s.lifetime {
			if err := w.graph.Destroy(s.node); err != nil {
				w.log.Warn("destroy spell", "kind", s.kind.String(), "err", err)
			}
			w.log.Debug("spell expired", "kind", s.kind.String())
			continue
		}

		switch s.kind {
		case Fireball:
			local := w.graph.Local(s.node)
			local.Translate(s.velocity.X*dt, s.velocity.Y*dt, s.velocity.Z*dt)
			w.graph.SetLocal(s.node, local)
		case Shield:
			w.graph.SetLocal(s.node, math.Mat4Translation(w.spellOrigin()))
		}
		live = append(live, s)
	}
	w.spells = live
}
