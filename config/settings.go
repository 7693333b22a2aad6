package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment override, e.g. DIEVIEWER_WINDOW_WIDTH
const EnvPrefix = "DIEVIEWER_"

// DefaultPath is where the viewer looks for settings when no path is given
const DefaultPath = "settings.json"

// ErrInvalidSettings is wrapped by every Validate failure
var ErrInvalidSettings = errors.New("invalid settings")

type Settings struct {
	Window    WindowSettings    `json:"window" envPrefix:"WINDOW_"`
	Viewer    ViewerSettings    `json:"viewer" envPrefix:"VIEWER_"`
	Telemetry TelemetrySettings `json:"telemetry" envPrefix:"TELEMETRY_"`
}

type WindowSettings struct {
	Width     int     `json:"width" env:"WIDTH"`
	Height    int     `json:"height" env:"HEIGHT"`
	Title     string  `json:"title" env:"TITLE"`
	TargetFPS int     `json:"targetFps" env:"TARGET_FPS"`
	Fovy      float64 `json:"fovy" env:"FOVY"`
}

type ViewerSettings struct {
	OrbitRadius        float64 `json:"orbitRadius" env:"ORBIT_RADIUS"`
	InitialAzimuth     float64 `json:"initialAzimuth" env:"INITIAL_AZIMUTH"`
	InitialElevation   float64 `json:"initialElevation" env:"INITIAL_ELEVATION"`
	DieScale           float64 `json:"dieScale" env:"DIE_SCALE"`
	PickRadius         float64 `json:"pickRadius" env:"PICK_RADIUS"`
	SpinSensitivity    float64 `json:"spinSensitivity" env:"SPIN_SENSITIVITY"`
	OrbitSensitivity   float64 `json:"orbitSensitivity" env:"ORBIT_SENSITIVITY"`
	Friction           float64 `json:"friction" env:"FRICTION"`
	SpinStopThreshold  float64 `json:"spinStopThreshold" env:"SPIN_STOP_THRESHOLD"`
	OrbitStopThreshold float64 `json:"orbitStopThreshold" env:"ORBIT_STOP_THRESHOLD"`
	ResetFrequency     float64 `json:"resetFrequency" env:"RESET_FREQUENCY"`
	ResetDamping       float64 `json:"resetDamping" env:"RESET_DAMPING"`
}

type TelemetrySettings struct {
	Enabled          bool   `json:"enabled" env:"ENABLED"`
	Addr             string `json:"addr" env:"ADDR"`
	UpdateIntervalMs int    `json:"updateIntervalMs" env:"UPDATE_INTERVAL_MS"`
}

// Defaults returns the settings used when nothing overrides them
func Defaults() Settings {
	return Settings{
		Window: WindowSettings{
			Width:     1024,
			Height:    768,
			Title:     "Icosahedron Die",
			TargetFPS: 60,
			Fovy:      45,
		},
		Viewer: ViewerSettings{
			OrbitRadius:        10,
			DieScale:           0.5,
			PickRadius:         1.0,
			SpinSensitivity:    100,
			OrbitSensitivity:   2,
			Friction:           0.95,
			SpinStopThreshold:  0.1,
			OrbitStopThreshold: 0.001,
			ResetFrequency:     6,
			ResetDamping:       1,
		},
		Telemetry: TelemetrySettings{
			Enabled:          false,
			Addr:             "127.0.0.1:8765",
			UpdateIntervalMs: 100,
		},
	}
}

// Load builds settings from defaults, the JSON file at path (a missing file
// is fine) and DIEVIEWER_* environment variables, in that order. The result
// is not validated; callers apply flag overrides first.
func Load(path string) (Settings, error) {
	s := Defaults()

	if path != "" {
		if err := s.mergeFile(path); err != nil {
			return s, err
		}
	}

	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return s, fmt.Errorf("parsing environment: %w", err)
	}
	return s, nil
}

func (s *Settings) mergeFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("no settings file, using defaults", "path", path)
			return nil
		}
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(s); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	slog.Info("loaded settings", "path", path)
	return nil
}

// Validate rejects values the viewer cannot run with
func (s Settings) Validate() error {
	var problems []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Errorf(format, args...))
		}
	}

	w := s.Window
	check(w.Width > 0 && w.Height > 0, "window size %dx%d must be positive", w.Width, w.Height)
	check(w.TargetFPS >= 0, "targetFps %d must not be negative", w.TargetFPS)
	check(w.Fovy > 0 && w.Fovy < 180, "fovy %v must be in (0, 180)", w.Fovy)

	v := s.Viewer
	check(v.OrbitRadius > v.PickRadius, "orbitRadius %v must exceed pickRadius %v", v.OrbitRadius, v.PickRadius)
	check(v.DieScale > 0, "dieScale %v must be positive", v.DieScale)
	check(v.PickRadius > 0, "pickRadius %v must be positive", v.PickRadius)
	check(v.Friction > 0 && v.Friction < 1, "friction %v must be in (0, 1)", v.Friction)
	check(v.SpinStopThreshold > 0, "spinStopThreshold %v must be positive", v.SpinStopThreshold)
	check(v.OrbitStopThreshold > 0, "orbitStopThreshold %v must be positive", v.OrbitStopThreshold)
	check(v.ResetFrequency > 0, "resetFrequency %v must be positive", v.ResetFrequency)
	check(v.ResetDamping > 0, "resetDamping %v must be positive", v.ResetDamping)

	t := s.Telemetry
	check(!t.Enabled || t.Addr != "", "telemetry addr is required when telemetry is enabled")
	check(t.UpdateIntervalMs > 0, "telemetry updateIntervalMs %d must be positive", t.UpdateIntervalMs)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(problems...))
	}
	return nil
}

// NeedsRestart reports whether moving from s to next changes anything that is
// only read at startup
func (s Settings) NeedsRestart(next Settings) bool {
	return s.Window != next.Window ||
		s.Telemetry != next.Telemetry ||
		s.Viewer.OrbitRadius != next.Viewer.OrbitRadius ||
		s.Viewer.DieScale != next.Viewer.DieScale ||
		s.Viewer.PickRadius != next.Viewer.PickRadius ||
		s.Viewer.InitialAzimuth != next.Viewer.InitialAzimuth ||
		s.Viewer.InitialElevation != next.Viewer.InitialElevation
}
