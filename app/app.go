// Package app runs the viewer's per-frame loop: it samples input, advances the
// die controller and hands the result to the display and telemetry.
package app

import (
	"context"
	"log/slog"

	"dieviewer/config"
	"dieviewer/simulation"
	"dieviewer/telemetry"
)

// Display is the window the viewer draws into
type Display interface {
	simulation.Picker
	PollInput() simulation.Input
	PollKeys() simulation.Keys
	FrameTime() float64
	ShouldClose() bool
	ToggleHUD()
	Draw(state simulation.State, telemetryClients int)
}

// Telemetry receives the state every frame and supplies remote commands
type Telemetry interface {
	Publish(state simulation.State)
	Commands() <-chan telemetry.Command
	ClientCount() int
}

// TuningFrom maps viewer settings to controller parameters
func TuningFrom(v config.ViewerSettings) simulation.Tuning {
	return simulation.Tuning{
		SpinSensitivity:    v.SpinSensitivity,
		OrbitSensitivity:   v.OrbitSensitivity,
		Friction:           v.Friction,
		SpinStopThreshold:  v.SpinStopThreshold,
		OrbitStopThreshold: v.OrbitStopThreshold,
		ResetFrequency:     v.ResetFrequency,
		ResetDamping:       v.ResetDamping,
	}
}

// HomePose is the pose the die starts in and resets to
func HomePose(v config.ViewerSettings) simulation.Pose {
	return simulation.Pose{
		Radius:    v.OrbitRadius,
		Azimuth:   v.InitialAzimuth,
		Elevation: v.InitialElevation,
	}
}

// App ties a display to the die controller
type App struct {
	display    Display
	controller *simulation.Controller
	settings   config.Settings

	telemetry Telemetry
	updates   <-chan config.Settings

	frames uint64
}

// New creates the viewer loop with the die at its home pose
func New(display Display, settings config.Settings) *App {
	return &App{
		display:    display,
		controller: simulation.NewController(display, HomePose(settings.Viewer), TuningFrom(settings.Viewer)),
		settings:   settings,
	}
}

// AttachTelemetry streams state to t and applies its commands
func (a *App) AttachTelemetry(t Telemetry) {
	a.telemetry = t
}

// WatchSettings applies settings received on updates between frames
func (a *App) WatchSettings(updates <-chan config.Settings) {
	a.updates = updates
}

// State is the controller's current state
func (a *App) State() simulation.State {
	return a.controller.Snapshot()
}

// Frames is the number of frames run so far
func (a *App) Frames() uint64 {
	return a.frames
}

// Run draws frames until the window closes or ctx is done
func (a *App) Run(ctx context.Context) error {
	for !a.display.ShouldClose() {
		select {
		case <-ctx.Done():
			slog.Info("viewer interrupted", "frames", a.frames)
			return ctx.Err()
		default:
		}
		a.Frame()
	}
	slog.Info("window closed", "frames", a.frames)
	return nil
}

// Frame runs one iteration of the loop
func (a *App) Frame() {
	a.applyCommands()
	a.applySettings()

	keys := a.display.PollKeys()
	if keys.Reset {
		a.controller.Reset()
	}
	if keys.ToggleHUD {
		a.display.ToggleHUD()
	}

	a.controller.Update(a.display.PollInput(), a.display.FrameTime())
	state := a.controller.Snapshot()

	clients := 0
	if a.telemetry != nil {
		a.telemetry.Publish(state)
		clients = a.telemetry.ClientCount()
	}
	a.display.Draw(state, clients)
	a.frames++
}

func (a *App) applyCommands() {
	if a.telemetry == nil {
		return
	}
	for {
		select {
		case cmd := <-a.telemetry.Commands():
			switch cmd.Command {
			case telemetry.CommandReset:
				a.controller.Reset()
			case telemetry.CommandSpin:
				a.controller.Nudge(cmd.Yaw, cmd.Pitch)
			}
			slog.Debug("telemetry command", "command", cmd.Command)
		default:
			return
		}
	}
}

func (a *App) applySettings() {
	if a.updates == nil {
		return
	}
	select {
	case next := <-a.updates:
		if a.settings.NeedsRestart(next) {
			slog.Warn("some settings changes take effect after a restart")
		}
		a.controller.Tune(TuningFrom(next.Viewer))
		a.settings = next
		slog.Info("viewer settings reloaded")
	default:
	}
}
