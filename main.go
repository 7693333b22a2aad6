package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dieviewer/app"
	"dieviewer/config"
	"dieviewer/core"
	"dieviewer/rendering/raylib"
	"dieviewer/telemetry"
)

type options struct {
	configPath string
	width      int
	height     int
	fps        int
	telemetry  string
	logLevel   string
}

func main() {
	// raylib must stay on the main thread
	runtime.LockOSThread()

	var opts options
	cmd := &cobra.Command{
		Use:   "dieviewer",
		Short: "Interactive icosahedron die viewer",
		Long: `dieviewer - Interactive icosahedron die viewer

Controls:
  Drag on the die    - Spin it in place
  Drag elsewhere     - Orbit it around the camera
  R                  - Reset to the starting pose
  H                  - Toggle HUD overlay
  Esc                - Quit`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultPath, "Settings file (JSON), reloaded on change")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Window width (overrides settings)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Window height (overrides settings)")
	cmd.Flags().IntVar(&opts.fps, "fps", 0, "Target FPS (overrides settings)")
	cmd.Flags().StringVar(&opts.telemetry, "telemetry", "", "Serve state over WebSocket on this address")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	var scale float64
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show die geometry statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showInfo(scale)
		},
	}
	infoCmd.Flags().Float64Var(&scale, "scale", core.DefaultDieScale, "Die scale")
	cmd.AddCommand(infoCmd)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// flagOverrides reapplies the flags the user set on top of loaded settings
func flagOverrides(cmd *cobra.Command, opts options) config.Override {
	flags := cmd.Flags()
	width, height := flags.Changed("width"), flags.Changed("height")
	fps, tel := flags.Changed("fps"), flags.Changed("telemetry")

	return func(s *config.Settings) {
		if width {
			s.Window.Width = opts.width
		}
		if height {
			s.Window.Height = opts.height
		}
		if fps {
			s.Window.TargetFPS = opts.fps
		}
		if tel {
			s.Telemetry.Enabled = true
			s.Telemetry.Addr = opts.telemetry
		}
	}
}

func loadSettings(path string, override config.Override) (config.Settings, error) {
	settings, err := config.Load(path)
	if err != nil {
		return settings, err
	}
	override(&settings)
	return settings, settings.Validate()
}

func run(cmd *cobra.Command, opts options) error {
	if err := setupLogging(opts.logLevel); err != nil {
		return err
	}
	override := flagOverrides(cmd, opts)
	settings, err := loadSettings(opts.configPath, override)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("=== Icosahedron Die Viewer ===")
	fmt.Printf("Window: %dx%d @ %d fps\n", settings.Window.Width, settings.Window.Height, settings.Window.TargetFPS)

	solid := core.NewIcosahedron(settings.Viewer.DieScale)
	renderer, err := raylib.NewRenderer(settings.Window, solid, settings.Viewer.PickRadius)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer renderer.Close()

	viewer := app.New(renderer, settings)

	if settings.Telemetry.Enabled {
		hub := telemetry.NewHub(time.Duration(settings.Telemetry.UpdateIntervalMs) * time.Millisecond)
		go func() {
			if err := hub.Serve(ctx, settings.Telemetry.Addr); err != nil {
				slog.Error("telemetry stopped", "err", err)
			}
		}()
		viewer.AttachTelemetry(hub)
		fmt.Printf("Telemetry: ws://%s/ws\n", settings.Telemetry.Addr)
	}

	watcher, err := config.Watch(opts.configPath, override)
	if err != nil {
		slog.Warn("settings hot reload disabled", "err", err)
	} else {
		defer watcher.Close()
		go watcher.Run(ctx)
		viewer.WatchSettings(watcher.Updates())
	}

	fmt.Println("\nControls:")
	fmt.Println("  Drag on the die: spin")
	fmt.Println("  Drag elsewhere: orbit")
	fmt.Println("  R: reset")
	fmt.Println("  H: toggle HUD")
	fmt.Println("  ESC: exit")

	err = viewer.Run(ctx)
	fmt.Println("\nShutting down...")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func showInfo(scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("scale %v must be positive", scale)
	}
	solid := core.NewIcosahedron(scale)
	fmt.Println("Die: icosahedron")
	fmt.Printf("Vertices: %d\n", len(solid.Vertices))
	fmt.Printf("Faces: %d\n", len(solid.Faces))
	fmt.Printf("Edges: %d\n", len(solid.Edges))
	fmt.Printf("Bounding radius: %.4f\n", solid.BoundingRadius())
	return nil
}
