// Package config loads the runtime settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"skyrunner/camera"
	"skyrunner/physics"
	"skyrunner/terrain"
)

// DefaultPath is where cmd/skyrunner looks for a config file when no -config
// flag is given.
const DefaultPath = "skyrunner.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window  WindowConfig   `yaml:"window"`
	Loop    LoopConfig     `yaml:"loop"`
	Terrain terrain.Params `yaml:"terrain"`
	Physics PhysicsConfig  `yaml:"physics"`
	Camera  camera.Config  `yaml:"camera"`
	Player  PlayerConfig   `yaml:"player"`
	Scene   SceneConfig    `yaml:"scene"`
	Log     LogConfig      `yaml:"log"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	VSync      bool   `yaml:"vsync"`
	Resizable  bool   `yaml:"resizable"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type LoopConfig struct {
	// MaxDelta caps the seconds one tick may simulate.
	MaxDelta    float32 `yaml:"max_delta"`
	FixedStep   float32 `yaml:"fixed_step"`
	MaxSubsteps int     `yaml:"max_substeps"`
}

type PhysicsConfig struct {
	Gravity float32 `yaml:"gravity"`
	// ObstacleRestitution is the bounce of the scattered boxes.
	ObstacleRestitution float32 `yaml:"obstacle_restitution"`
}

type PlayerConfig struct {
	// Speed is the forward flight speed in units per second; strafing runs
	// at StrafeFactor of it.
	Speed         float32 `yaml:"speed"`
	VerticalSpeed float32 `yaml:"vertical_speed"`
	StrafeFactor  float32 `yaml:"strafe_factor"`
	// SpawnHeight is added to half the terrain height scale.
	SpawnHeight float32 `yaml:"spawn_height"`
	MaxPitch    float32 `yaml:"max_pitch"`
}

type SceneConfig struct {
	Obstacles        int     `yaml:"obstacles"`
	ObstacleSeed     uint64  `yaml:"obstacle_seed"`
	InteractionRange float32 `yaml:"interaction_range"`
	AimDistance      float32 `yaml:"aim_distance"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "skyrunner",
			Width:     1280,
			Height:    720,
			VSync:     true,
			Resizable: true,
		},
		Loop: LoopConfig{
			MaxDelta:    physics.DefaultMaxDelta,
			FixedStep:   physics.FixedStep,
			MaxSubsteps: 8,
		},
		Terrain: terrain.DefaultParams(),
		Physics: PhysicsConfig{
			Gravity:             -9.8,
			ObstacleRestitution: 0.3,
		},
		Camera: camera.DefaultConfig(),
		Player: PlayerConfig{
			Speed:         16,
			VerticalSpeed: 16,
			StrafeFactor:  0.5,
			SpawnHeight:   5,
			MaxPitch:      physics.Flight().MaxPitch,
		},
		Scene: SceneConfig{
			Obstacles:        10,
			ObstacleSeed:     1,
			InteractionRange: 6,
			AimDistance:      50,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive")
	check(c.Loop.MaxDelta > 0, "loop.max_delta must be positive")
	check(c.Loop.FixedStep > 0, "loop.fixed_step must be positive")
	check(c.Loop.MaxSubsteps > 0, "loop.max_substeps must be positive")
	check(c.Terrain.Segments > 0, "terrain.segments must be positive")
	check(c.Terrain.Width > 0 && c.Terrain.Depth > 0, "terrain size must be positive")
	check(c.Terrain.Octaves >= 0, "terrain.octaves must not be negative")
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera near/far out of order")
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov must be in (0, 180)")
	check(c.Camera.Orbit.MinDistance <= c.Camera.Orbit.MaxDistance, "camera.orbit distance range inverted")
	check(c.Camera.Flight.MinDistance <= c.Camera.Flight.MaxDistance, "camera.flight distance range inverted")
	check(c.Camera.Flight.MinElevation <= c.Camera.Flight.MaxElevation, "camera.flight elevation range inverted")
	check(c.Scene.Obstacles >= 0, "scene.obstacles must not be negative")
	check(c.Scene.InteractionRange >= 0, "scene.interaction_range must not be negative")
	if _, err := ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}
