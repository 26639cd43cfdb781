// Package pyfinder discovers Python runtimes installed on the local machine
// and emits normalized records describing each one. Discovery is organized
// around locators: pluggable strategies that each understand one category of
// Python installation source (pyenv, global installs, ...) and share a single
// uniform contract, so a hosting service can treat all of them the same way.
//
// The package currently ships the pyenv locator, which understands both bare
// interpreter installs and pyenv-virtualenv environments living under the
// pyenv root. Host access (environment variables, home directory, global
// search paths) is injected through the Environment interface, which keeps
// the discovery logic fully testable against fake hosts.
//
// Basic Usage:
//
//	host := pyfinder.NewOSEnvironment()
//	locator := pyfinder.NewPyEnvLocator(host, logger)
//
//	if err := locator.Gather(); err != nil {
//	    // The locator found nothing; the error says why.
//	}
//
//	dispatcher := pyfinder.NewJSONRPCDispatcher(os.Stdout)
//	locator.Report(dispatcher)
//
// Multiple locators can be grouped in a LocatorSet and gathered and reported
// together. Discovery behavior is tunable through a settings file (JSON or
// YAML) that can be hot reloaded with SettingsWatcher.
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0
package pyfinder
