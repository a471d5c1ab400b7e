package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/richinsley/deskscene/glfwcontext"
	"github.com/richinsley/deskscene/graphics"
	"github.com/richinsley/deskscene/headless"
	options "github.com/richinsley/deskscene/options"
	renderer "github.com/richinsley/deskscene/renderer"
	"github.com/richinsley/deskscene/scene"
)

func init() {
	runtime.LockOSThread()
}

// assetsDir picks the texture base directory: the flag, then DESKSCENE_ASSETS,
// then the directory of the scene file, then the working directory.
func assetsDir(opts *options.SceneOptions) string {
	if *opts.AssetsDir != "" {
		return *opts.AssetsDir
	}
	if dir := os.Getenv("DESKSCENE_ASSETS"); dir != "" {
		return dir
	}
	if *opts.ScenePath != "" {
		return filepath.Dir(*opts.ScenePath)
	}
	return "."
}

func loadManifest(opts *options.SceneOptions) (*scene.Manifest, error) {
	if *opts.ScenePath == "" {
		log.Info().Msg("using the built-in desk scene")
		return scene.DefaultManifest(), nil
	}
	return scene.LoadManifest(*opts.ScenePath)
}

func newContext(opts *options.SceneOptions) (graphics.Context, func(), error) {
	if *opts.Headless {
		ctx, err := headless.NewHeadless(*opts.Width, *opts.Height)
		if err != nil {
			return nil, nil, err
		}
		return ctx, ctx.Shutdown, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	// a snapshot run never shows its window
	visible := *opts.Snapshot == ""
	ctx, err := glfwcontext.New(opts, visible)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, fmt.Errorf("failed to create window: %w", err)
	}
	return ctx, func() {
		ctx.Shutdown()
		glfwcontext.TerminateGraphics()
	}, nil
}

func run(opts *options.SceneOptions) error {
	if *opts.Headless && *opts.Snapshot == "" {
		return errors.New("-headless needs -snapshot")
	}

	m, err := loadManifest(opts)
	if err != nil {
		return err
	}

	ctx, closeContext, err := newContext(opts)
	if err != nil {
		return err
	}
	defer closeContext()

	r, err := renderer.NewRenderer(opts, ctx)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	if err := r.InitScene(m, assetsDir(opts)); err != nil {
		return err
	}

	if *opts.Snapshot != "" {
		return r.Snapshot(*opts.Snapshot)
	}
	log.Info().Msg("starting interactive render loop, press Esc to quit")
	r.Run()
	return nil
}

func main() {
	opts := &options.SceneOptions{
		ScenePath: flag.String("scene", "", "scene manifest (YAML); the built-in desk scene when empty"),
		AssetsDir: flag.String("assets", "", "texture base directory (DESKSCENE_ASSETS env var if not set)"),
		Help:      flag.Bool("help", false, "Show help message"),
		Width:     flag.Int("width", 1280, "Width of the window or snapshot"),
		Height:    flag.Int("height", 720, "Height of the window or snapshot"),
		Snapshot:  flag.String("snapshot", "", "render one frame to this .png, .jpg or .webp file and exit"),
		Headless:  flag.Bool("headless", false, "render with EGL and no window (linux, requires -snapshot)"),
		LogLevel:  flag.String("log-level", "info", "log level: debug, info, warn, error"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("Desk still-life scene viewer")
		flag.PrintDefaults()
		return
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	level, err := zerolog.ParseLevel(*opts.LogLevel)
	if err != nil {
		log.Warn().Str("level", *opts.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if err := run(opts); err != nil {
		log.Error().Err(err).Msg("deskscene failed")
		os.Exit(1)
	}
}
