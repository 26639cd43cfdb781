// settings.go: discovery settings loading with format detection
//
// Hosting services let users tune discovery: switch individual locators off,
// point discovery at extra directories, suppress manager records. Settings
// live in a small JSON or YAML file; format is detected from the path so the
// same loader serves both.
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"encoding/json"
	"os"

	"github.com/agilira/argus"
	"gopkg.in/yaml.v3"
)

// DiscoverySettings tunes a discovery pass.
type DiscoverySettings struct {
	// EnabledLocators names the locators allowed to run. Empty means all
	// registered locators are enabled.
	EnabledLocators []string `json:"enabled_locators,omitempty" yaml:"enabled_locators,omitempty"`

	// ExtraSearchPaths are additional directories hosts may hand to
	// locators that scan global locations. Paths must be non-empty.
	ExtraSearchPaths []string `json:"extra_search_paths,omitempty" yaml:"extra_search_paths,omitempty"`

	// ReportManagers controls whether manager descriptors are forwarded
	// alongside environment records.
	ReportManagers *bool `json:"report_managers,omitempty" yaml:"report_managers,omitempty"`
}

// DefaultDiscoverySettings returns the settings used when no file is
// provided: every locator enabled, managers reported.
func DefaultDiscoverySettings() DiscoverySettings {
	return DiscoverySettings{}
}

// LocatorEnabled reports whether the named locator may run under these
// settings. An empty EnabledLocators list enables everything.
func (s DiscoverySettings) LocatorEnabled(name string) bool {
	if len(s.EnabledLocators) == 0 {
		return true
	}
	for _, enabled := range s.EnabledLocators {
		if enabled == name {
			return true
		}
	}
	return false
}

// ShouldReportManagers reports whether manager descriptors are forwarded.
// Defaults to true when unset.
func (s DiscoverySettings) ShouldReportManagers() bool {
	return s.ReportManagers == nil || *s.ReportManagers
}

// Validate checks structural settings constraints.
func (s DiscoverySettings) Validate() error {
	for _, name := range s.EnabledLocators {
		if name == "" {
			return NewSettingsInvalidError("enabled_locators contains an empty name")
		}
	}
	for _, path := range s.ExtraSearchPaths {
		if path == "" {
			return NewSettingsInvalidError("extra_search_paths contains an empty path")
		}
	}
	return nil
}

// LoadDiscoverySettings loads settings from a JSON or YAML file, detecting
// the format from the path.
func LoadDiscoverySettings(path string) (DiscoverySettings, error) {
	var settings DiscoverySettings

	content, err := os.ReadFile(path) // #nosec G304 - host-provided settings path
	if err != nil {
		return settings, NewSettingsNotFoundError(path, err)
	}

	format := argus.DetectFormat(path)
	switch format {
	case argus.FormatJSON:
		err = json.Unmarshal(content, &settings)
	case argus.FormatYAML:
		err = yaml.Unmarshal(content, &settings)
	default:
		return settings, NewSettingsParseError(path, NewSettingsInvalidError("unsupported settings format"))
	}
	if err != nil {
		return settings, NewSettingsParseError(path, err)
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}
