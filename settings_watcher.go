// settings_watcher.go: hot reload of discovery settings with Argus
//
// Hosting services react to settings edits without restarting: when the
// settings file changes, the watcher reloads it, validates it, and hands the
// new settings to a callback (typically LocatorSet.UpdateSettings followed
// by a fresh gather).
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/argus"
)

// SettingsChangedFunc receives the freshly loaded settings after every
// successful reload.
type SettingsChangedFunc func(settings DiscoverySettings)

// SettingsWatcherOptions customizes watcher behavior.
type SettingsWatcherOptions struct {
	// PollInterval between file stat checks. Settings change rarely, so
	// the default is generous.
	PollInterval time.Duration

	// CacheTTL for stat results inside Argus.
	CacheTTL time.Duration

	// ErrorHandler receives file watching errors. Defaults to logging.
	ErrorHandler func(err error, path string)
}

// DefaultSettingsWatcherOptions returns the production defaults.
func DefaultSettingsWatcherOptions() SettingsWatcherOptions {
	return SettingsWatcherOptions{
		PollInterval: 10 * time.Second,
		CacheTTL:     5 * time.Second,
	}
}

// SettingsWatcher watches one discovery settings file and republishes it on
// change.
//
// Start loads the file once and begins watching; Stop is permanent. Current
// settings are always available through Current, atomically swapped on each
// successful reload. Reload failures keep the previous settings in force.
type SettingsWatcher struct {
	watcher  *argus.Watcher
	path     string
	onChange SettingsChangedFunc
	logger   Logger

	current atomic.Pointer[DiscoverySettings]

	enabled  atomic.Bool
	stopped  atomic.Bool
	stopOnce sync.Once
	mutex    sync.Mutex
}

// NewSettingsWatcher creates a watcher for the settings file at path. The
// callback may be nil when only Current access is wanted.
func NewSettingsWatcher(path string, onChange SettingsChangedFunc, options SettingsWatcherOptions, logger any) *SettingsWatcher {
	internalLogger := NewLogger(logger)

	argusConfig := argus.Config{
		PollInterval:         options.PollInterval,
		CacheTTL:             options.CacheTTL,
		MaxWatchedFiles:      5,
		OptimizationStrategy: argus.OptimizationSingleEvent,
		ErrorHandler: func(err error, filepath string) {
			if options.ErrorHandler != nil {
				options.ErrorHandler(err, filepath)
			} else {
				internalLogger.Error("Settings file watching error", "error", err, "file", filepath)
			}
		},
	}

	return &SettingsWatcher{
		watcher:  argus.New(argusConfig),
		path:     path,
		onChange: onChange,
		logger:   internalLogger,
	}
}

// Start loads the settings file, publishes the initial settings, and begins
// watching for changes. Returns an error when the watcher is already
// running, permanently stopped, or the initial load fails.
func (w *SettingsWatcher) Start() error {
	if w.stopped.Load() {
		return NewSettingsWatcherError("watcher has been permanently stopped and cannot be restarted", nil)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.enabled.CompareAndSwap(false, true) {
		return NewSettingsWatcherError("watcher is already running", nil)
	}

	initial, err := LoadDiscoverySettings(w.path)
	if err != nil {
		w.enabled.Store(false)
		return err
	}
	w.publish(initial)

	if err := w.watcher.Watch(w.path, w.handleChange); err != nil {
		w.enabled.Store(false)
		return NewSettingsWatcherError("failed to watch settings file", err)
	}
	if err := w.watcher.Start(); err != nil {
		w.enabled.Store(false)
		return NewSettingsWatcherError("failed to start file watcher", err)
	}

	w.logger.Info("Discovery settings watcher started", "path", w.path)
	return nil
}

// Stop permanently stops the watcher. Safe to call concurrently; only the
// first call does the work.
func (w *SettingsWatcher) Stop() error {
	if w.stopped.Load() {
		return NewSettingsWatcherError("watcher is already stopped", nil)
	}

	var stopErr error
	w.stopOnce.Do(func() {
		w.mutex.Lock()
		defer w.mutex.Unlock()

		if !w.enabled.CompareAndSwap(true, false) {
			stopErr = NewSettingsWatcherError("watcher is not running", nil)
			return
		}
		w.stopped.Store(true)

		if err := w.watcher.Stop(); err != nil {
			stopErr = NewSettingsWatcherError("failed to stop file watcher", err)
			return
		}
		w.logger.Info("Discovery settings watcher stopped")
	})
	return stopErr
}

// IsRunning reports whether the watcher is active.
func (w *SettingsWatcher) IsRunning() bool {
	return w.enabled.Load() && !w.stopped.Load()
}

// Current returns the settings from the last successful load, or the
// defaults when nothing has loaded yet.
func (w *SettingsWatcher) Current() DiscoverySettings {
	if settings := w.current.Load(); settings != nil {
		return *settings
	}
	return DefaultDiscoverySettings()
}

func (w *SettingsWatcher) publish(settings DiscoverySettings) {
	w.current.Store(&settings)
	if w.onChange != nil {
		w.onChange(settings)
	}
}

// handleChange processes settings file changes from Argus. Delete events and
// failed reloads keep the previous settings in force.
func (w *SettingsWatcher) handleChange(event argus.ChangeEvent) {
	w.logger.Info("Discovery settings file change detected",
		"path", event.Path,
		"is_create", event.IsCreate,
		"is_delete", event.IsDelete,
		"is_modify", event.IsModify)

	if event.IsDelete {
		w.logger.Warn("Settings file was deleted, keeping previous settings", "path", event.Path)
		return
	}

	settings, err := LoadDiscoverySettings(event.Path)
	if err != nil {
		w.logger.Error("Failed to reload discovery settings", "error", err, "path", event.Path)
		return
	}
	w.publish(settings)
	w.logger.Info("Discovery settings reloaded", "path", event.Path)
}
