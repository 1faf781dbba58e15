package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"skyrunner/config"
	"skyrunner/game"
	"skyrunner/input"
	"skyrunner/internal/opengl"
	"skyrunner/platform"
	"skyrunner/render"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "skyrunner: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level, _ := config.ParseLevel(cfg.Log.Level)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	window, err := platform.NewWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer(log)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	world, err := game.New(cfg, log.With("component", "game"))
	if err != nil {
		return err
	}

	width, height := window.GetFramebufferSize()
	renderer.SetViewport(width, height)
	world.Resize(width, height)
	window.OnResize(func(width, height int) {
		renderer.SetViewport(width, height)
		world.Resize(width, height)
	})

	log.Info("starting", "config", configPath, "width", width, "height", height)

	in := window.Input()
	last := window.Time()
	for !window.ShouldClose() {
		window.PollEvents()

		now := window.Time()
		dt := float32(now - last)
		last = now

		handleCapture(window, world, in)
		world.Tick(dt, in)
		in.EndFrame()

		if _, err := render.Submit(renderer, world.Graph(), world.Frame()); err != nil {
			log.Warn("render", "err", err)
		}
		window.SwapBuffers()
	}
	log.Info("shutting down", "time", world.Time())
	return nil
}

// handleCapture mirrors browser pointer lock: a click captures the pointer,
// Escape releases it, and an open interaction menu always releases it.
func handleCapture(w *platform.Window, world *game.World, in *input.State) {
	if _, open := world.Interaction(); open {
		w.SetCaptured(false)
		return
	}
	switch {
	case !in.Captured() && in.ButtonPressed(input.MouseLeft):
		w.SetCaptured(true)
	case in.Captured() && in.Pressed(input.KeyEscape):
		w.SetCaptured(false)
	}
}
