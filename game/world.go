// Package game wires the runtime packages into the flying-witch scene and
// runs one tick of it at a time.
package game

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"skyrunner/camera"
	"skyrunner/config"
	"skyrunner/core"
	"skyrunner/math"
	"skyrunner/physics"
	"skyrunner/pick"
	"skyrunner/render"
	"skyrunner/scene"
	"skyrunner/terrain"
)

const (
	outlineScale = 1.08
	// spellHeight lifts spells from the body origin to the witch's centre.
	spellHeight = 0.5
)

var (
	fireballColor = core.Color{R: 1, G: 0.4, A: 1}
	shieldColor   = core.Color{R: 0.2, G: 0.5, B: 1, A: 1}
	outlineColor  = core.ColorWhite
)

type meshes struct {
	terrain  *core.Mesh
	part     *core.Mesh
	box      *core.Mesh
	orb      *core.Mesh
	fireball *core.Mesh
	shield   *core.Mesh
}

// World owns the scene and everything that moves in it. It is not safe for
// concurrent use; one goroutine calls Tick and then Frame.
type World struct {
	cfg     config.Config
	log     *slog.Logger
	graph   *scene.Graph
	rig     *camera.Rig
	stepper *physics.Stepper
	terrain *terrain.Terrain
	meshes  meshes

	player     scene.NodeID
	playerBody *physics.Body
	orb        scene.NodeID
	obstacles  []scene.NodeID

	pickables []pick.Pickable
	hovered   int
	selected  int
	outline   scene.NodeID

	spells []spell

	menuOpen bool
	menuItem int

	crosshair        math.Vec2
	crosshairVisible bool

	time float32
}

// New builds the scene described by cfg. A nil logger discards output.
func New(cfg config.Config, logger *slog.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	w := &World{
		cfg:      cfg,
		log:      logger,
		graph:    scene.NewGraph(),
		rig:      camera.NewRig(cfg.Camera, camera.ModeFlight),
		stepper:  &physics.Stepper{Step: cfg.Loop.FixedStep, MaxSubsteps: cfg.Loop.MaxSubsteps},
		terrain:  terrain.New(cfg.Terrain),
		hovered:  -1,
		selected: -1,
		menuItem: -1,
	}
	w.rig.SetAspect(float32(cfg.Window.Width), float32(cfg.Window.Height))

	if err := w.setup(); err != nil {
		return nil, fmt.Errorf("scene setup: %w", err)
	}
	w.graph.Update()
	w.syncPickables()

	w.log.Info("world ready",
		"nodes", w.graph.Len(),
		"pickables", len(w.pickables),
		"terrain_vertices", len(w.meshes.terrain.Vertices))
	return w, nil
}

func (w *World) setup() error {
	hs := w.cfg.Terrain.HeightScale
	w.meshes = meshes{
		terrain:  w.terrain.Mesh(),
		part:     core.CreateCube(0.5),
		box:      core.CreateCube(1),
		orb:      core.CreateSphere(1, 64, 32),
		fireball: core.CreateSphere(0.8, 16, 12),
		shield:   core.CreateCylinder(1.5, 3, 32),
	}
	textured := &core.Material{Name: "default", Albedo: core.ColorWhite, Texture: "default"}
	flat := &core.Material{Name: "basic", Albedo: core.ColorWhite}

	root := w.graph.Root()

	// Terrain heights span [0, hs]; centre them on y = 0.
	ground, err := w.graph.Spawn(root, "terrain")
	if err != nil {
		return err
	}
	w.graph.SetLocal(ground, math.Mat4Translation(math.Vec3{Y: -hs / 2}))
	w.graph.SetDrawable(ground, scene.Drawable{Mesh: w.meshes.terrain, Material: textured})

	if err := w.setupPlayer(textured); err != nil {
		return err
	}

	w.orb, err = w.graph.Spawn(root, "orb")
	if err != nil {
		return err
	}
	orbLocal := math.Mat4Identity()
	orbLocal.Translate(0, hs+5, -5).Scale(1.5, 1.5, 1.5)
	w.graph.SetLocal(w.orb, orbLocal)
	w.graph.SetDrawable(w.orb, scene.Drawable{Mesh: w.meshes.orb, Material: textured})
	w.pickables = append(w.pickables, pick.Pickable{
		Label: "orb",
		Node:  w.orb,
		Shape: pick.Shape{Kind: pick.Sphere, Radius: 1.5},
	})

	rng := rand.New(rand.NewPCG(w.cfg.Scene.ObstacleSeed, w.cfg.Scene.ObstacleSeed))
	for i := 0; i < w.cfg.Scene.Obstacles; i++ {
		if err := w.addObstacle(i, rng, flat); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) setupPlayer(mat *core.Material) error {
	body := physics.Flight()
	body.Position = math.Vec3{Y: w.cfg.Terrain.HeightScale/2 + w.cfg.Player.SpawnHeight}
	body.MaxPitch = w.cfg.Player.MaxPitch

	var err error
	w.player, err = w.graph.Spawn(w.graph.Root(), "player")
	if err != nil {
		return err
	}
	if w.playerBody, err = w.graph.AttachBody(w.player, body, math.Vec3One); err != nil {
		return err
	}

	parts := []struct {
		name     string
		offset   math.Vec3
		scale    math.Vec3
		material *core.Material
	}{
		{"witch", math.Vec3{Y: 0.8}, math.NewVec3(0.5, 0.8, 0.4), mat},
		{"broom", math.NewVec3(0, 0.3, -0.75), math.NewVec3(0.2, 0.1, 1.5), &core.Material{Name: "broom", Albedo: core.Color{R: 0.45, G: 0.3, B: 0.15, A: 1}}},
	}
	for _, p := range parts {
		id, err := w.graph.Spawn(w.player, p.name)
		if err != nil {
			return err
		}
		local := math.Mat4Identity()
		local.Translate(p.offset.X, p.offset.Y, p.offset.Z).Scale(p.scale.X, p.scale.Y, p.scale.Z)
		w.graph.SetLocal(id, local)
		w.graph.SetDrawable(id, scene.Drawable{Mesh: w.meshes.part, Material: p.material})
	}
	return nil
}

func (w *World) addObstacle(i int, rng *rand.Rand, mat *core.Material) error {
	body := physics.Grounded()
	body.Acceleration = math.Vec3{Y: w.cfg.Physics.Gravity}
	body.Restitution = w.cfg.Physics.ObstacleRestitution
	body.Position = math.Vec3{
		X: rng.Float32()*40 - 20,
		Y: rng.Float32()*10 + 1,
		Z: rng.Float32()*40 - 20,
	}
	scale := math.Vec3{
		X: 0.5 + rng.Float32()*1.5,
		Y: 0.5 + rng.Float32()*1.5,
		Z: 0.5 + rng.Float32()*1.5,
	}

	name := fmt.Sprintf("obstacle-%d", i)
	id, err := w.graph.Spawn(w.graph.Root(), name)
	if err != nil {
		return err
	}
	if _, err := w.graph.AttachBody(id, body, scale); err != nil {
		return err
	}
	w.graph.SetDrawable(id, scene.Drawable{Mesh: w.meshes.box, Material: mat})
	w.obstacles = append(w.obstacles, id)

	// The box mesh has half size 1, so the body scale is the half extent.
	w.pickables = append(w.pickables, pick.Pickable{
		Label: name,
		Node:  id,
		Shape: pick.Shape{Kind: pick.Box, HalfExtents: scale},
	})
	return nil
}

func (w *World) Graph() *scene.Graph       { return w.graph }
func (w *World) Rig() *camera.Rig          { return w.rig }
func (w *World) Player() *physics.Body     { return w.playerBody }
func (w *World) PlayerNode() scene.NodeID  { return w.player }
func (w *World) Terrain() *terrain.Terrain { return w.terrain }
func (w *World) Time() float32             { return w.time }

// Pickables returns the hit-test proxies in pick order.
func (w *World) Pickables() []pick.Pickable {
	return w.pickables
}

// Hovered returns the index of the pickable under the aim ray, or -1.
func (w *World) Hovered() int { return w.hovered }

// Selected returns the index of the selected pickable, or -1.
func (w *World) Selected() int { return w.selected }

// Outline is the node drawing the selection outline; zero when nothing is
// selected.
func (w *World) Outline() scene.NodeID { return w.outline }

// Crosshair returns the aim point in normalized device coordinates. ok is
// false when not aiming or when the point is off screen.
func (w *World) Crosshair() (ndc math.Vec2, ok bool) {
	return w.crosshair, w.crosshairVisible
}

// Interaction reports the pickable the interaction menu is open for.
func (w *World) Interaction() (index int, open bool) {
	return w.menuItem, w.menuOpen
}

// Resize updates the camera aspect ratio.
func (w *World) Resize(width, height int) {
	w.rig.SetAspect(float32(width), float32(height))
}

// Frame returns the render globals for the current camera.
func (w *World) Frame() render.Frame {
	f := render.DefaultFrame()
	f.View = w.rig.View()
	f.Projection = w.rig.Projection()
	f.CameraPosition = w.rig.Position()
	f.Cull = true
	return f
}
