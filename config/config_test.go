package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window != Default().Window || cfg.Scene != Default().Scene {
		t.Errorf("missing file should give defaults, got %+v", cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	src := `
window:
  width: 800
terrain:
  seed: 0.25
  segments: 32
camera:
  flight:
    distance: 9
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	def := Default()
	if cfg.Window.Width != 800 || cfg.Window.Height != def.Window.Height {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Terrain.Seed != 0.25 || cfg.Terrain.Segments != 32 || cfg.Terrain.Octaves != def.Terrain.Octaves {
		t.Errorf("terrain = %+v", cfg.Terrain)
	}
	if cfg.Camera.Flight.Distance != 9 || cfg.Camera.Flight.MaxDistance != def.Camera.Flight.MaxDistance {
		t.Errorf("camera.flight = %+v", cfg.Camera.Flight)
	}
	if lvl, _ := ParseLevel(cfg.Log.Level); lvl != slog.LevelDebug {
		t.Errorf("log level = %v", lvl)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"negative width", "window:\n  width: -1\n"},
		{"inverted orbit range", "camera:\n  orbit:\n    min_distance: 60\n"},
		{"zero max delta", "loop:\n  max_delta: 0\n"},
		{"bad level", "log:\n  level: chatty\n"},
		{"far before near", "camera:\n  near: 10\n  far: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			os.WriteFile(path, []byte(tt.src), 0644)
			if _, err := Load(path); !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	os.WriteFile(path, []byte("window: [1, 2"), 0644)
	_, err := Load(path)
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("expected a parse error, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	want := Default()
	want.Player.Speed = 21
	want.Scene.Obstacles = 3
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Player != want.Player || got.Scene != want.Scene || got.Camera != want.Camera {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}
