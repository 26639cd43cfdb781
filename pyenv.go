// pyenv.go: locator for pyenv-managed interpreters and virtual environments
//
// pyenv installs every interpreter version in its own directory under
// <root>/versions. pyenv-virtualenv records virtual environments as sibling
// directories in the same place, distinguished by a pyvenv.cfg instead of a
// bare interpreter tree. This locator resolves the root, classifies every
// version directory, and tracks one record per interpreter executable.
//
// See https://github.com/pyenv/pyenv#locating-the-python-installation for
// the general layout and https://github.com/pyenv-win/pyenv-win for the
// Windows specifics.
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
)

// Ordered version-directory matchers. Tried first to last, first match
// wins; a directory matching none of them is not a bare interpreter
// install.
var pyenvVersionRegexps = []*regexp.Regexp{
	// Stable releases, like 3.10.10
	regexp.MustCompile(`^(\d+\.\d+\.\d+)$`),
	// Development builds, like 3.10-dev
	regexp.MustCompile(`^(\d+\.\d+-dev)$`),
	// Alpha/beta/rc builds, like 3.10.0a3; anchored at the start only
	regexp.MustCompile(`^(\d+\.\d+\.\d+\w\d+)`),
}

// pyenvVersionFromDir extracts the canonical version string from a version
// directory name, or reports no match.
func pyenvVersionFromDir(dirName string) (string, bool) {
	for _, re := range pyenvVersionRegexps {
		if m := re.FindStringSubmatch(dirName); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// homePyEnvDir returns the platform default pyenv root under the user home:
// ~/.pyenv/pyenv-win on Windows, ~/.pyenv elsewhere.
func homePyEnvDir(environment Environment) (string, bool) {
	home, ok := environment.UserHome()
	if !ok {
		return "", false
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, ".pyenv", "pyenv-win"), true
	}
	return filepath.Join(home, ".pyenv"), true
}

// pyenvDir resolves the candidate pyenv installation root.
//
// Precedence: the PYENV_ROOT environment variable, then PYENV (the legacy
// Windows convention), then the home-based platform default. No existence
// check is performed; the result is a candidate, not a verified install.
func pyenvDir(environment Environment) (string, bool) {
	if dir, ok := environment.GetEnvVar("PYENV_ROOT"); ok {
		return dir, true
	}
	if dir, ok := environment.GetEnvVar("PYENV"); ok {
		return dir, true
	}
	return homePyEnvDir(environment)
}

// pyenvBinaryFromKnownPaths scans the host's global search directories for a
// file literally named pyenv.
func pyenvBinaryFromKnownPaths(environment Environment) (string, bool) {
	for _, location := range environment.KnownGlobalSearchLocations() {
		bin := filepath.Join(location, "pyenv")
		if _, err := os.Stat(bin); err == nil {
			return bin, true
		}
	}
	return "", false
}

// pyenvBinary locates the pyenv executable itself: <root>/bin/pyenv when it
// exists on disk, otherwise the first hit in the known global search
// directories. Best effort; absence only means no manager metadata gets
// attached to discovered records.
func pyenvBinary(environment Environment) (string, bool) {
	dir, ok := pyenvDir(environment)
	if !ok {
		return "", false
	}
	exe := filepath.Join(dir, "bin", "pyenv")
	if _, err := os.Stat(exe); err == nil {
		return exe, true
	}
	return pyenvBinaryFromKnownPaths(environment)
}

// purePythonEnvironment builds the record for a bare interpreter install.
// The directory name must classify as a version; otherwise this is not a
// pure install and the virtualenv strategy gets its turn.
func purePythonEnvironment(executable, dir string, manager *EnvManager) (PythonEnvironment, bool) {
	version, ok := pyenvVersionFromDir(filepath.Base(dir))
	if !ok {
		return PythonEnvironment{}, false
	}
	return PythonEnvironment{
		PythonExecutablePath: executable,
		Category:             CategoryPyEnv,
		Version:              version,
		EnvPath:              dir,
		SysPrefixPath:        dir,
		EnvManager:           manager,
		PythonRunCommand:     []string{executable},
	}, true
}

// virtualEnvEnvironment builds the record for a pyenv-virtualenv
// environment. Requires a parseable pyvenv.cfg near the executable; the
// environment is named after its directory.
func virtualEnvEnvironment(executable, dir string, manager *EnvManager) (PythonEnvironment, bool) {
	cfg, ok := FindAndParsePyVenvCfg(executable)
	if !ok {
		return PythonEnvironment{}, false
	}
	return PythonEnvironment{
		DisplayName:          filepath.Base(dir),
		PythonExecutablePath: executable,
		Category:             CategoryPyEnvVirtualEnv,
		Version:              cfg.Version,
		EnvPath:              dir,
		SysPrefixPath:        dir,
		EnvManager:           manager,
		PythonRunCommand:     []string{executable},
	}, true
}

// PyEnv is the pyenv Locator.
//
// State is created empty, populated by a single Gather pass, and traversed
// read-only by Report. A PyEnv instance is not safe for concurrent Gather
// calls; hosts wanting parallel discovery use one instance per worker.
type PyEnv struct {
	environments map[string]PythonEnvironment
	environment  Environment
	manager      *EnvManager
	logger       Logger
}

// NewPyEnvLocator creates a pyenv locator reading host facts from the given
// Environment. A nil logger silences discovery logging.
func NewPyEnvLocator(environment Environment, logger any) *PyEnv {
	return &PyEnv{
		environments: make(map[string]PythonEnvironment),
		environment:  environment,
		logger:       NewLogger(logger),
	}
}

// IsKnown implements Locator. True iff the executable path was tracked by
// the last Gather pass.
func (p *PyEnv) IsKnown(pythonExecutable string) bool {
	_, ok := p.environments[pythonExecutable]
	return ok
}

// TrackIfCompatible implements Locator. The pyenv layout makes per-candidate
// checks pointless next to one bulk directory scan, so this locator never
// tracks incrementally and always returns false.
func (p *PyEnv) TrackIfCompatible(env *PythonEnv) bool {
	return false
}

// Gather implements Locator. It resolves the manager binary (best effort),
// then scans every directory under <root>/versions, classifying each as a
// bare interpreter install or a virtual environment and tracking one record
// per interpreter executable.
//
// A non-nil error means the root could not be resolved or the versions
// directory is unreadable; previously gathered state is left untouched and
// the locator is considered to have found nothing this run. Per-entry
// failures (stray files, unreadable directories, unclassifiable names) are
// skipped silently.
func (p *PyEnv) Gather() error {
	var manager *EnvManager
	if bin, ok := pyenvBinary(p.environment); ok {
		manager = NewEnvManager(bin, "", ManagerPyEnv)
	} else {
		p.logger.Debug("pyenv binary not found, reporting environments without manager")
	}
	p.manager = manager

	root, ok := pyenvDir(p.environment)
	if !ok {
		return NewRootUnresolvedError(string(ManagerPyEnv))
	}

	versionsDir := filepath.Join(root, "versions")
	entries, err := os.ReadDir(versionsDir)
	if err != nil {
		return NewVersionsUnreadableError(versionsDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(versionsDir, entry.Name())
		executable, ok := FindPythonBinaryPath(dir)
		if !ok {
			continue
		}
		env, ok := purePythonEnvironment(executable, dir, manager)
		if !ok {
			env, ok = virtualEnvEnvironment(executable, dir, manager)
		}
		if !ok {
			continue
		}
		p.track(env)
	}

	p.logger.Info("pyenv discovery completed",
		"root", root,
		"environments", len(p.environments))

	return nil
}

// track inserts a record keyed by its executable path. Last write wins when
// two directories resolve to the same executable; in practice keys are
// unique per directory and the overwrite is a safety net.
func (p *PyEnv) track(env PythonEnvironment) {
	p.environments[env.PythonExecutablePath] = env
}

// Report implements Locator. Emits the manager once when one was resolved,
// then every tracked environment in unspecified order. Repeatable until the
// next Gather; locator state is never mutated.
func (p *PyEnv) Report(dispatcher MessageDispatcher) {
	if p.manager != nil {
		dispatcher.ReportEnvironmentManager(*p.manager)
	}
	for _, env := range p.environments {
		dispatcher.ReportEnvironment(env)
	}
}
