// settings_test.go: tests for discovery settings loading
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettingsFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDiscoverySettings(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		path := writeSettingsFile(t, "settings.json", `{
			"enabled_locators": ["pyenv"],
			"extra_search_paths": ["/opt/tools"],
			"report_managers": false
		}`)

		settings, err := LoadDiscoverySettings(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"pyenv"}, settings.EnabledLocators)
		assert.Equal(t, []string{"/opt/tools"}, settings.ExtraSearchPaths)
		assert.False(t, settings.ShouldReportManagers())
	})

	t.Run("YAML", func(t *testing.T) {
		path := writeSettingsFile(t, "settings.yaml", `
enabled_locators:
  - pyenv
extra_search_paths:
  - /opt/tools
`)

		settings, err := LoadDiscoverySettings(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"pyenv"}, settings.EnabledLocators)
		assert.True(t, settings.ShouldReportManagers(), "report_managers defaults to true")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadDiscoverySettings(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		path := writeSettingsFile(t, "settings.json", `{"enabled_locators": [`)
		_, err := LoadDiscoverySettings(path)
		require.Error(t, err)
	})

	t.Run("EmptyLocatorNameRejected", func(t *testing.T) {
		path := writeSettingsFile(t, "settings.json", `{"enabled_locators": [""]}`)
		_, err := LoadDiscoverySettings(path)
		require.Error(t, err)
	})

	t.Run("EmptySearchPathRejected", func(t *testing.T) {
		path := writeSettingsFile(t, "settings.json", `{"extra_search_paths": [""]}`)
		_, err := LoadDiscoverySettings(path)
		require.Error(t, err)
	})
}

func TestDiscoverySettings_LocatorEnabled(t *testing.T) {
	t.Run("EmptyListEnablesAll", func(t *testing.T) {
		settings := DefaultDiscoverySettings()
		assert.True(t, settings.LocatorEnabled(LocatorNamePyEnv))
		assert.True(t, settings.LocatorEnabled("conda"))
	})

	t.Run("ExplicitList", func(t *testing.T) {
		settings := DiscoverySettings{EnabledLocators: []string{"pyenv"}}
		assert.True(t, settings.LocatorEnabled("pyenv"))
		assert.False(t, settings.LocatorEnabled("conda"))
	})
}
