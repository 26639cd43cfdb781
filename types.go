// types.go: common data types for Python runtime discovery
//
// This file defines the wire-level records produced by locators (environment
// managers and discovered Python environments), the candidate type used for
// incremental probing, and the Locator and MessageDispatcher contracts that
// tie locators to a hosting discovery service.
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

// EnvManagerType identifies the tool that manages a set of discovered
// Python interpreters.
type EnvManagerType string

const (
	// ManagerPyEnv identifies the pyenv version manager.
	ManagerPyEnv EnvManagerType = "pyenv"
)

// EnvManager describes the managing tool behind a group of discovered
// environments, such as the pyenv executable itself.
//
// An EnvManager is immutable once constructed. Every record produced by one
// locator run shares the same manager value by pointer; locators must never
// mutate a manager after handing it to a record.
type EnvManager struct {
	// Absolute path to the manager executable.
	ExecutablePath string `json:"executablePath" yaml:"executablePath"`

	// Declared manager version, when known. The pyenv locator never fills
	// this in; it reports the manager by path alone.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Which tool this is.
	Tool EnvManagerType `json:"tool" yaml:"tool"`
}

// NewEnvManager creates an immutable manager descriptor.
func NewEnvManager(executablePath, version string, tool EnvManagerType) *EnvManager {
	return &EnvManager{
		ExecutablePath: executablePath,
		Version:        version,
		Tool:           tool,
	}
}

// PythonEnvironmentCategory tags the installation source of a discovered
// interpreter.
type PythonEnvironmentCategory string

const (
	// CategoryPyEnv marks a bare interpreter install managed by pyenv
	// (a version directory like 3.10.10 or 3.11-dev).
	CategoryPyEnv PythonEnvironmentCategory = "pyenv"

	// CategoryPyEnvVirtualEnv marks a pyenv-virtualenv environment: a
	// sibling version directory carrying a pyvenv.cfg instead of a bare
	// interpreter tree.
	CategoryPyEnvVirtualEnv PythonEnvironmentCategory = "pyenv-virtualenv"
)

// PythonEnvironment is one discovered interpreter, normalized for reporting.
//
// Two records describe the same environment exactly when their
// PythonExecutablePath values are equal as strings; locators deduplicate on
// that key.
type PythonEnvironment struct {
	// Display name. Virtual environments carry their folder name; bare
	// interpreter installs carry none.
	DisplayName string `json:"name,omitempty" yaml:"name,omitempty"`

	// Absolute path to the interpreter executable. This is the dedup key.
	PythonExecutablePath string `json:"pythonExecutablePath" yaml:"pythonExecutablePath"`

	// Installation source category.
	Category PythonEnvironmentCategory `json:"category" yaml:"category"`

	// Interpreter version string, when one could be determined.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Path to the environment directory. For pyenv both EnvPath and
	// SysPrefixPath point at the version directory.
	EnvPath string `json:"envPath,omitempty" yaml:"envPath,omitempty"`

	// Interpreter sys.prefix. See EnvPath.
	SysPrefixPath string `json:"sysPrefixPath,omitempty" yaml:"sysPrefixPath,omitempty"`

	// Managing tool, shared across all records of one locator run.
	// Nil when the manager binary could not be resolved.
	EnvManager *EnvManager `json:"envManager,omitempty" yaml:"envManager,omitempty"`

	// Argv prefix to run this interpreter: exactly one element, the
	// executable path.
	PythonRunCommand []string `json:"pythonRunCommand,omitempty" yaml:"pythonRunCommand,omitempty"`
}

// PythonEnv is a minimal candidate interpreter handed to locators for
// incremental probing via TrackIfCompatible, typically found by a PATH scan
// outside any locator.
type PythonEnv struct {
	// Path to the candidate interpreter executable.
	Executable string

	// Directory the candidate lives in, when known.
	Path string

	// Version string, when already known.
	Version string
}

// MessageDispatcher receives finished discovery records.
//
// Dispatchers are push-style sinks: locators call them during Report and
// never read anything back. Implementations decide transport and framing
// (JSON-RPC lines, in-memory collection, ...).
type MessageDispatcher interface {
	// ReportEnvironmentManager emits a discovered manager descriptor.
	ReportEnvironmentManager(manager EnvManager)

	// ReportEnvironment emits one discovered environment record.
	ReportEnvironment(env PythonEnvironment)
}

// Locator is one pluggable discovery strategy, producing environment records
// for a single category of Python installation source.
//
// A hosting service treats all locators uniformly: gather once, report as
// often as needed. Locator implementations are not safe for concurrent
// Gather calls; hosts wanting parallel discovery run one locator instance
// per worker.
type Locator interface {
	// IsKnown reports whether the executable path is already tracked by
	// this locator. Pure query; false before Gather has run.
	IsKnown(pythonExecutable string) bool

	// TrackIfCompatible offers a single candidate environment to the
	// locator. Locators that discover everything in bulk return false
	// unconditionally.
	TrackIfCompatible(env *PythonEnv) bool

	// Gather performs the locator's bulk discovery pass. A non-nil error
	// means the locator found nothing this run; hosts treat that as an
	// empty result, not a fatal condition.
	Gather() error

	// Report pushes the gathered manager (at most once) and every tracked
	// environment to the dispatcher. Repeatable; does not mutate state.
	Report(dispatcher MessageDispatcher)
}
