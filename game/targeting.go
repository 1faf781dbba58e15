package game

import (
	"skyrunner/math"
	"skyrunner/pick"
	"skyrunner/scene"
)

// updateTargeting casts the aim ray while aiming and, on a click, selects
// the hovered pickable.
func (w *World) updateTargeting(aiming, click bool) {
	if !aiming {
		w.hovered = -1
		return
	}
	w.hovered = -1
	if hit, ok := pick.Pick(w.aimRay(), w.pickables); ok {
		w.hovered = hit.Index
	}
	if click && w.hovered >= 0 {
		w.Select(w.hovered)
	}
}

// Select marks pickable i as the target and moves the outline onto it. An
// out of range index clears the selection.
func (w *World) Select(i int) {
	w.clearOutline()
	w.selected = -1
	if i < 0 || i >= len(w.pickables) {
		return
	}

	p := w.pickables[i]
	d := w.graph.Drawable(p.Node)
	if d == nil || d.Mesh == nil {
		w.log.Warn("pickable has nothing to outline", "label", p.Label)
		return
	}

	id, err := w.graph.Spawn(p.Node, "outline")
	if err != nil {
		w.log.Warn("select", "label", p.Label, "err", err)
		return
	}
	w.graph.SetLocal(id, math.Mat4Scale(math.NewVec3(outlineScale, outlineScale, outlineScale)))
	c := outlineColor
	w.graph.SetDrawable(id, scene.Drawable{Mesh: d.Mesh, Override: &c, Outline: true})
	w.graph.Update()

	w.outline = id
	w.selected = i
	w.log.Info("selected", "label", p.Label)
}

func (w *World) clearOutline() {
	if w.graph.Valid(w.outline) {
		w.graph.Destroy(w.outline)
	}
	w.outline = scene.NodeID{}
}

// tryOpenInteraction opens the menu for the selected pickable when the
// player is within interaction range of it.
func (w *World) tryOpenInteraction() {
	if w.selected < 0 {
		return
	}
	p := w.pickables[w.selected]
	dist := w.playerBody.Position.Distance(p.Shape.Center)
	if dist > w.cfg.Scene.InteractionRange {
		w.log.Debug("target out of range", "label", p.Label, "distance", dist)
		return
	}
	w.menuOpen = true
	w.menuItem = w.selected
	w.log.Info("interaction opened", "label", p.Label)
}

func (w *World) closeInteraction() {
	if !w.menuOpen {
		return
	}
	w.menuOpen = false
	w.menuItem = -1
	w.log.Info("interaction closed")
}

// CloseInteraction closes the menu if it is open.
func (w *World) CloseInteraction() {
	w.closeInteraction()
}
