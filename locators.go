// locators.go: grouping locators behind one gather/report surface
//
// A hosting service usually runs several locators (pyenv, global installs,
// Conda, ...) against the same host and forwards everything they find to one
// transport. LocatorSet is that grouping: locators register by name, gather
// in registration order, and report through a single dispatcher.
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"sync"
	"time"

	"github.com/agilira/go-timecache"
)

// LocatorNamePyEnv is the conventional registration name for the pyenv
// locator in a LocatorSet.
const LocatorNamePyEnv = "pyenv"

// GatherStats summarizes one bulk discovery pass across a locator set.
type GatherStats struct {
	// StartedAt is when the pass began.
	StartedAt time.Time `json:"started_at"`

	// Duration of the whole pass.
	Duration time.Duration `json:"duration"`

	// LocatorsRun is how many registered locators ran (enabled ones).
	LocatorsRun int `json:"locators_run"`

	// LocatorsEmpty is how many of those found nothing (their Gather
	// returned an error).
	LocatorsEmpty int `json:"locators_empty"`
}

type namedLocator struct {
	name    string
	locator Locator
}

// LocatorSet runs a group of locators uniformly.
//
// Registration order is preserved for gathering and reporting. The set
// serializes its own operations, so one LocatorSet may be shared between a
// gather goroutine and report callers; individual locators still gather
// sequentially, matching their single-threaded contract.
type LocatorSet struct {
	mu       sync.Mutex
	locators []namedLocator
	settings DiscoverySettings
	logger   Logger
}

// NewLocatorSet creates an empty set using the given settings to decide
// which registered locators are enabled. A nil logger silences logging.
func NewLocatorSet(settings DiscoverySettings, logger any) *LocatorSet {
	return &LocatorSet{
		settings: settings,
		logger:   NewLogger(logger),
	}
}

// Register adds a locator under a unique name. Registering a duplicate name
// replaces the earlier entry in place, keeping its position.
func (s *LocatorSet) Register(name string, locator Locator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.locators {
		if existing.name == name {
			s.locators[i].locator = locator
			return
		}
	}
	s.locators = append(s.locators, namedLocator{name: name, locator: locator})
}

// UpdateSettings swaps the active discovery settings. Takes effect on the
// next GatherAll; a pass already running is unaffected.
func (s *LocatorSet) UpdateSettings(settings DiscoverySettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// GatherAll runs every enabled locator's Gather pass in registration order
// and returns timing and outcome counts. A locator returning an error is
// counted as empty and logged; it never aborts the pass.
func (s *LocatorSet) GatherAll() GatherStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := GatherStats{StartedAt: timecache.CachedTime()}
	start := time.Now()

	for _, entry := range s.locators {
		if !s.settings.LocatorEnabled(entry.name) {
			s.logger.Debug("Locator disabled by settings", "locator", entry.name)
			continue
		}
		stats.LocatorsRun++
		if err := entry.locator.Gather(); err != nil {
			stats.LocatorsEmpty++
			s.logger.Warn("Locator found nothing", "locator", entry.name, "error", err)
		}
	}

	stats.Duration = time.Since(start)
	s.logger.Info("Discovery pass completed",
		"locators_run", stats.LocatorsRun,
		"locators_empty", stats.LocatorsEmpty,
		"duration", stats.Duration)
	return stats
}

// managerSuppressingDispatcher drops manager records and forwards
// everything else. Applied when settings disable manager reporting.
type managerSuppressingDispatcher struct {
	next MessageDispatcher
}

func (d *managerSuppressingDispatcher) ReportEnvironmentManager(manager EnvManager) {}

func (d *managerSuppressingDispatcher) ReportEnvironment(env PythonEnvironment) {
	d.next.ReportEnvironment(env)
}

// ReportAll reports every enabled locator through the dispatcher, in
// registration order. Manager records are dropped when the active settings
// disable manager reporting.
func (s *LocatorSet) ReportAll(dispatcher MessageDispatcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settings.ShouldReportManagers() {
		dispatcher = &managerSuppressingDispatcher{next: dispatcher}
	}
	for _, entry := range s.locators {
		if !s.settings.LocatorEnabled(entry.name) {
			continue
		}
		entry.locator.Report(dispatcher)
	}
}

// IsKnown reports whether any registered locator already tracks the
// executable path.
func (s *LocatorSet) IsKnown(pythonExecutable string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.locators {
		if entry.locator.IsKnown(pythonExecutable) {
			return true
		}
	}
	return false
}

// TrackIfCompatible offers a candidate to every enabled locator in order
// until one claims it.
func (s *LocatorSet) TrackIfCompatible(env *PythonEnv) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.locators {
		if !s.settings.LocatorEnabled(entry.name) {
			continue
		}
		if entry.locator.TrackIfCompatible(env) {
			return true
		}
	}
	return false
}
