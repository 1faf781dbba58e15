package camera

import "github.com/chewxy/math32"

// Config holds projection, smoothing and per-mode parameters. Angles are in
// radians, except FOV which is the full vertical field of view in degrees.
type Config struct {
	FOV         float32 `yaml:"fov"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	SmoothSpeed float32 `yaml:"smooth_speed"`
	// Sensitivity converts pointer pixels to radians.
	Sensitivity float32 `yaml:"sensitivity"`

	Orbit       OrbitConfig       `yaml:"orbit"`
	FirstPerson FirstPersonConfig `yaml:"first_person"`
	ThirdPerson ThirdPersonConfig `yaml:"third_person"`
	Flight      FlightConfig      `yaml:"flight"`
}

type OrbitConfig struct {
	Distance    float32 `yaml:"distance"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	MaxPitch    float32 `yaml:"max_pitch"`
	// ZoomSpeed is distance per wheel line.
	ZoomSpeed float32 `yaml:"zoom_speed"`
	// PanSpeed is pivot movement in units per second.
	PanSpeed float32 `yaml:"pan_speed"`
}

type FirstPersonConfig struct {
	EyeHeight    float32 `yaml:"eye_height"`
	MaxPitch     float32 `yaml:"max_pitch"`
	LookDistance float32 `yaml:"look_distance"`
}

type ThirdPersonConfig struct {
	Distance   float32 `yaml:"distance"`
	Height     float32 `yaml:"height"`
	MaxPitch   float32 `yaml:"max_pitch"`
	LookHeight float32 `yaml:"look_height"`
}

type FlightConfig struct {
	Distance    float32 `yaml:"distance"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	Height      float32 `yaml:"height"`
	// Elevation is the initial angle of the camera above the body.
	Elevation    float32 `yaml:"elevation"`
	MinElevation float32 `yaml:"min_elevation"`
	MaxElevation float32 `yaml:"max_elevation"`
	ZoomSpeed    float32 `yaml:"zoom_speed"`
	LookHeight   float32 `yaml:"look_height"`
}

func DefaultConfig() Config {
	return Config{
		FOV:         60,
		Near:        0.1,
		Far:         1000,
		SmoothSpeed: 5,
		Sensitivity: 0.002,
		Orbit: OrbitConfig{
			Distance:    15,
			MinDistance: 2,
			MaxDistance: 50,
			MaxPitch:    math32.Pi / 3,
			ZoomSpeed:   0.5,
			PanSpeed:    10,
		},
		FirstPerson: FirstPersonConfig{
			EyeHeight:    1.8,
			MaxPitch:     math32.Pi / 3,
			LookDistance: 10,
		},
		ThirdPerson: ThirdPersonConfig{
			Distance:   5,
			Height:     2,
			MaxPitch:   math32.Pi / 3,
			LookHeight: 0.5,
		},
		Flight: FlightConfig{
			Distance:     7,
			MinDistance:  2,
			MaxDistance:  20,
			Height:       2.5,
			Elevation:    0.3,
			MinElevation: -math32.Pi / 6,
			MaxElevation: math32.Pi / 3,
			ZoomSpeed:    1,
			LookHeight:   1,
		},
	}
}
