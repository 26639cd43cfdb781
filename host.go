// host.go: injected host environment access for locators
//
// Locators never read process globals directly. Everything they need from
// the host machine (environment variables, the user home directory, the
// platform's well-known binary directories) flows through the Environment
// interface, so discovery logic stays testable against fake hosts.
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"os"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"
)

// Environment supplies host facts to locators. Pure query interface;
// implementations must not mutate host state.
type Environment interface {
	// GetEnvVar returns the value of the named environment variable and
	// whether it is set to a non-empty value.
	GetEnvVar(name string) (string, bool)

	// UserHome returns the current user's home directory and whether it
	// could be determined.
	UserHome() (string, bool)

	// KnownGlobalSearchLocations returns the ordered list of directories
	// where globally installed tools are conventionally found on this
	// platform.
	KnownGlobalSearchLocations() []string
}

// OSEnvironment is the production Environment backed by the real process
// environment and filesystem conventions.
type OSEnvironment struct{}

// NewOSEnvironment creates an Environment reading from the real host.
func NewOSEnvironment() *OSEnvironment {
	return &OSEnvironment{}
}

// GetEnvVar implements Environment using the process environment.
func (e *OSEnvironment) GetEnvVar(name string) (string, bool) {
	value := os.Getenv(name)
	return value, value != ""
}

// UserHome implements Environment. Resolution handles HOME, USERPROFILE and
// passwd lookups uniformly across platforms.
func (e *OSEnvironment) UserHome() (string, bool) {
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return "", false
	}
	return home, true
}

// KnownGlobalSearchLocations implements Environment.
//
// On Unix-like platforms this is the conventional set of global binary
// directories. Windows has no comparable fixed set; installers put tools
// behind PATH instead, so the list is empty there.
func (e *OSEnvironment) KnownGlobalSearchLocations() []string {
	if runtime.GOOS == "windows" {
		return nil
	}
	return []string{
		"/usr/bin",
		"/usr/local/bin",
		"/bin",
		"/home/bin",
		"/sbin",
		"/usr/sbin",
		"/usr/local/sbin",
		"/home/sbin",
		"/opt",
		"/opt/bin",
		"/opt/sbin",
		"/opt/homebrew/bin",
	}
}

// extraLocationsEnvironment layers additional search directories over a
// base Environment.
type extraLocationsEnvironment struct {
	Environment
	extra []string
}

// WithExtraSearchLocations returns an Environment identical to base except
// that KnownGlobalSearchLocations also includes the given directories, after
// the platform defaults. Hosts use it to apply the ExtraSearchPaths setting
// without touching the base probe.
func WithExtraSearchLocations(base Environment, paths []string) Environment {
	if len(paths) == 0 {
		return base
	}
	return &extraLocationsEnvironment{Environment: base, extra: paths}
}

// KnownGlobalSearchLocations implements Environment, appending the extra
// directories to the base list.
func (e *extraLocationsEnvironment) KnownGlobalSearchLocations() []string {
	base := e.Environment.KnownGlobalSearchLocations()
	out := make([]string, 0, len(base)+len(e.extra))
	out = append(out, base...)
	out = append(out, e.extra...)
	return out
}

// MapEnvironment is a fake Environment for tests and embedding hosts that
// want full control over what locators see.
type MapEnvironment struct {
	// Vars maps variable names to values. Missing or empty entries read
	// as unset.
	Vars map[string]string

	// Home is the reported user home directory; empty means unavailable.
	Home string

	// SearchLocations is returned verbatim from
	// KnownGlobalSearchLocations.
	SearchLocations []string
}

// GetEnvVar implements Environment from the Vars map.
func (e *MapEnvironment) GetEnvVar(name string) (string, bool) {
	value, ok := e.Vars[name]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// UserHome implements Environment from the Home field.
func (e *MapEnvironment) UserHome() (string, bool) {
	if e.Home == "" {
		return "", false
	}
	return e.Home, true
}

// KnownGlobalSearchLocations implements Environment from the
// SearchLocations field.
func (e *MapEnvironment) KnownGlobalSearchLocations() []string {
	return e.SearchLocations
}
