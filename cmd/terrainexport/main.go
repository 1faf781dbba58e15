// Command terrainexport writes a generated terrain patch to a binary glTF
// or Wavefront OBJ file, chosen by the output extension.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"skyrunner/config"
	"skyrunner/terrain"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath, "path to the YAML config file")
		out        = flag.String("out", "terrain.glb", "output path (.glb or .obj)")
		seed       = flag.Float64("seed", -1, "noise seed in [0, 1); negative keeps the config value")
		segments   = flag.Int("segments", 0, "grid segments per side; 0 keeps the config value")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terrainexport: %v\n", err)
		os.Exit(1)
	}
	p := cfg.Terrain
	if *seed >= 0 {
		p.Seed = *seed
	}
	if *segments > 0 {
		p.Segments = *segments
	}

	mesh := terrain.New(p).Mesh()
	export := terrain.ExportGLB
	if strings.EqualFold(filepath.Ext(*out), ".obj") {
		export = terrain.ExportOBJ
	}
	if err := export(mesh, *out); err != nil {
		fmt.Fprintf(os.Stderr, "terrainexport: %v\n", err)
		os.Exit(1)
	}
	log.Info("terrain exported",
		"path", *out,
		"seed", p.Seed,
		"vertices", len(mesh.Vertices),
		"triangles", len(mesh.Indices)/3)
}
