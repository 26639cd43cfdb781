// errors.go: structured error definitions for Python runtime discovery
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"github.com/agilira/go-errors"
)

// Error codes for the pyfinder library
const (
	// Discovery errors (1000-1099)
	ErrCodeRootUnresolved     = "DISCOVERY_1001"
	ErrCodeVersionsUnreadable = "DISCOVERY_1002"
	ErrCodeDiscoveryError     = "DISCOVERY_1003"
	ErrCodeUnknownLocator     = "DISCOVERY_1004"

	// Settings errors (1100-1199)
	ErrCodeSettingsNotFound   = "SETTINGS_1101"
	ErrCodeSettingsParseError = "SETTINGS_1102"
	ErrCodeSettingsInvalid    = "SETTINGS_1103"
	ErrCodeSettingsWatcher    = "SETTINGS_1104"

	// Reporting errors (1200-1299)
	ErrCodeDispatchError = "REPORT_1201"
)

// Discovery error constructors

func NewRootUnresolvedError(locator string) *errors.Error {
	return errors.New(ErrCodeRootUnresolved, "Installation root unresolved").
		WithUserMessage("No installation root could be resolved from the environment or platform defaults").
		WithContext("locator", locator).
		WithSeverity("warning")
}

func NewVersionsUnreadableError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeVersionsUnreadable, "Versions directory unreadable").
		WithUserMessage("The resolved installation root does not contain a readable versions directory").
		WithContext("versions_path", path).
		WithSeverity("warning")
}

func NewDiscoveryError(message string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeDiscoveryError, "Discovery error: "+message).
		WithUserMessage("Python environment discovery failed").
		WithSeverity("error")
}

func NewUnknownLocatorError(name string) *errors.Error {
	return errors.New(ErrCodeUnknownLocator, "Unknown locator").
		WithUserMessage("The named locator is not registered").
		WithContext("locator", name).
		WithSeverity("error")
}

// Settings error constructors

func NewSettingsNotFoundError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeSettingsNotFound, "Settings file not found").
		WithUserMessage("The discovery settings file could not be read").
		WithContext("settings_path", path).
		WithSeverity("error")
}

func NewSettingsParseError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeSettingsParseError, "Settings parse error").
		WithUserMessage("Failed to parse the discovery settings file").
		WithContext("settings_path", path).
		WithSeverity("error")
}

func NewSettingsInvalidError(message string) *errors.Error {
	return errors.New(ErrCodeSettingsInvalid, "Settings validation error: "+message).
		WithUserMessage("Discovery settings validation failed").
		WithSeverity("error")
}

func NewSettingsWatcherError(message string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeSettingsWatcher, "Settings watcher error: "+message).
		WithUserMessage("Discovery settings monitoring failed").
		WithSeverity("error")
}

// Reporting error constructors

func NewDispatchError(method string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeDispatchError, "Dispatch error").
		WithUserMessage("Failed to write a discovery report message").
		WithContext("method", method).
		WithSeverity("error")
}
