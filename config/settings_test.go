package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDefaultsAreValid(t *testing.T) {
	s := Defaults()
	require.NoError(t, s.Validate())

	assert.Equal(t, 10.0, s.Viewer.OrbitRadius)
	assert.Equal(t, 0.5, s.Viewer.DieScale)
	assert.Equal(t, 1.0, s.Viewer.PickRadius)
	assert.Equal(t, 0.95, s.Viewer.Friction)
	assert.Equal(t, 0.1, s.Viewer.SpinStopThreshold)
	assert.Equal(t, 0.001, s.Viewer.OrbitStopThreshold)
	assert.False(t, s.Telemetry.Enabled)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{
		"window": {"width": 640},
		"viewer": {"friction": 0.9, "spinSensitivity": 50}
	}`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, s.Window.Width)
	assert.Equal(t, 768, s.Window.Height, "fields absent from the file keep defaults")
	assert.Equal(t, 0.9, s.Viewer.Friction)
	assert.Equal(t, 50.0, s.Viewer.SpinSensitivity)
	assert.Equal(t, 2.0, s.Viewer.OrbitSensitivity)
}

func TestLoadRejectsBadFile(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{"window": {"width": "wide"}}`)
	_, err := Load(bad)
	assert.ErrorContains(t, err, "parsing")

	unknown := filepath.Join(dir, "unknown.json")
	writeFile(t, unknown, `{"viewer": {"gravity": 9.8}}`)
	_, err = Load(unknown)
	assert.ErrorContains(t, err, "gravity")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"window": {"width": 640}, "telemetry": {"addr": "0.0.0.0:1"}}`)

	t.Setenv("DIEVIEWER_WINDOW_WIDTH", "800")
	t.Setenv("DIEVIEWER_VIEWER_FRICTION", "0.8")
	t.Setenv("DIEVIEWER_TELEMETRY_ENABLED", "true")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, s.Window.Width)
	assert.Equal(t, 0.8, s.Viewer.Friction)
	assert.True(t, s.Telemetry.Enabled)
	assert.Equal(t, "0.0.0.0:1", s.Telemetry.Addr)
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("DIEVIEWER_WINDOW_HEIGHT", "tall")
	_, err := Load("")
	assert.ErrorContains(t, err, "parsing environment")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		want   string
	}{
		{"zero width", func(s *Settings) { s.Window.Width = 0 }, "window size"},
		{"flat fov", func(s *Settings) { s.Window.Fovy = 180 }, "fovy"},
		{"friction one", func(s *Settings) { s.Viewer.Friction = 1 }, "friction"},
		{"friction zero", func(s *Settings) { s.Viewer.Friction = 0 }, "friction"},
		{"no spin threshold", func(s *Settings) { s.Viewer.SpinStopThreshold = 0 }, "spinStopThreshold"},
		{"no orbit threshold", func(s *Settings) { s.Viewer.OrbitStopThreshold = -1 }, "orbitStopThreshold"},
		{"die inside camera", func(s *Settings) { s.Viewer.OrbitRadius = 0.5 }, "orbitRadius"},
		{"telemetry without addr", func(s *Settings) {
			s.Telemetry.Enabled = true
			s.Telemetry.Addr = ""
		}, "telemetry addr"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Defaults()
			tc.mutate(&s)
			err := s.Validate()
			require.ErrorIs(t, err, ErrInvalidSettings)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestNeedsRestart(t *testing.T) {
	base := Defaults()

	tuned := base
	tuned.Viewer.Friction = 0.9
	tuned.Viewer.SpinSensitivity = 10
	assert.False(t, base.NeedsRestart(tuned))

	resized := base
	resized.Window.Width = 100
	assert.True(t, base.NeedsRestart(resized))

	moved := base
	moved.Viewer.OrbitRadius = 20
	assert.True(t, base.NeedsRestart(moved))
}

func TestWatcherDeliversReloadedSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	writeFile(t, path, `{"viewer": {"friction": 0.9}}`)

	w, err := Watch(path, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// an invalid edit is dropped, the valid one that follows arrives
	writeFile(t, path, `{"viewer": {"friction": 2}}`)
	time.Sleep(3 * reloadDelay)
	writeFile(t, path, `{"viewer": {"friction": 0.7}}`)

	select {
	case s := <-w.Updates():
		assert.Equal(t, 0.7, s.Viewer.Friction)
	case <-time.After(5 * time.Second):
		t.Fatal("no settings update delivered")
	}
}

func TestWatcherReappliesOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	writeFile(t, path, `{}`)

	override := func(s *Settings) {
		s.Window.Width = 800
		s.Telemetry.Enabled = true
		s.Telemetry.Addr = ":9000"
	}
	w, err := Watch(path, override)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// width 0 alone would fail validation
	writeFile(t, path, `{"window": {"width": 0}, "viewer": {"friction": 0.8}}`)

	select {
	case s := <-w.Updates():
		assert.Equal(t, 0.8, s.Viewer.Friction)
		assert.Equal(t, 800, s.Window.Width)
		assert.True(t, s.Telemetry.Enabled)
		assert.Equal(t, ":9000", s.Telemetry.Addr)
	case <-time.After(5 * time.Second):
		t.Fatal("no settings update delivered")
	}
}

func TestWatcherKeepsSettingsWhenFileMovedAway(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	writeFile(t, path, `{"viewer": {"friction": 0.9}}`)

	w, err := Watch(path, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.Rename(path, filepath.Join(dir, "settings.bak")))

	select {
	case s := <-w.Updates():
		t.Fatalf("unexpected reload after move, friction %v", s.Viewer.Friction)
	case <-time.After(5 * reloadDelay):
	}
}
