package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events editors produce on save
const reloadDelay = 100 * time.Millisecond

// Override adjusts loaded settings before they are validated, e.g. to
// reapply command line flags
type Override func(*Settings)

// Watcher reloads a settings file whenever it changes on disk. Valid
// settings are delivered on Updates; invalid ones are logged and dropped.
type Watcher struct {
	path     string
	override Override
	fs       *fsnotify.Watcher
	updates  chan Settings
}

// Watch starts watching the directory holding path. The file itself does not
// need to exist yet. override, if not nil, runs on every reload before
// validation.
func Watch(path string, override Override) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	// editors often replace the file, so watch the directory
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		override: override,
		fs:       fs,
		updates:  make(chan Settings, 1),
	}, nil
}

// Updates delivers freshly loaded, validated settings
func (w *Watcher) Updates() <-chan Settings {
	return w.updates
}

// Run processes file events until ctx is done or the watcher is closed
func (w *Watcher) Run(ctx context.Context) {
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(reloadDelay)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("settings watcher error", "err", err)
		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	// moved or deleted: keep what is running rather than fall back to defaults
	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		slog.Info("settings file gone, keeping current settings", "path", w.path)
		return
	}

	s, err := Load(w.path)
	if err == nil {
		if w.override != nil {
			w.override(&s)
		}
		err = s.Validate()
	}
	if err != nil {
		slog.Warn("ignoring settings change", "path", w.path, "err", err)
		return
	}

	// keep only the newest settings if the loop has not caught up
	select {
	case <-w.updates:
	default:
	}
	w.updates <- s
	slog.Info("settings reloaded", "path", w.path)
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fs.Close()
}
