// host_test.go: tests for host environment access
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSEnvironment(t *testing.T) {
	env := NewOSEnvironment()

	t.Run("GetEnvVar", func(t *testing.T) {
		t.Setenv("PYFINDER_TEST_VAR", "hello")
		value, ok := env.GetEnvVar("PYFINDER_TEST_VAR")
		require.True(t, ok)
		assert.Equal(t, "hello", value)

		_, ok = env.GetEnvVar("PYFINDER_TEST_VAR_DOES_NOT_EXIST")
		assert.False(t, ok)
	})

	t.Run("EmptyVariableReadsAsUnset", func(t *testing.T) {
		t.Setenv("PYFINDER_TEST_EMPTY", "")
		_, ok := env.GetEnvVar("PYFINDER_TEST_EMPTY")
		assert.False(t, ok)
	})

	t.Run("UserHome", func(t *testing.T) {
		home, ok := env.UserHome()
		require.True(t, ok)
		assert.NotEmpty(t, home)
	})

	t.Run("KnownGlobalSearchLocations", func(t *testing.T) {
		locations := env.KnownGlobalSearchLocations()
		if runtime.GOOS == "windows" {
			assert.Empty(t, locations)
			return
		}
		assert.Contains(t, locations, "/usr/bin")
		assert.Contains(t, locations, "/usr/local/bin")
	})
}

func TestWithExtraSearchLocations(t *testing.T) {
	base := &MapEnvironment{
		Vars:            map[string]string{"A": "1"},
		Home:            "/home/u",
		SearchLocations: []string{"/one"},
	}

	t.Run("AppendsAfterBaseLocations", func(t *testing.T) {
		env := WithExtraSearchLocations(base, []string{"/extra", "/more"})
		assert.Equal(t, []string{"/one", "/extra", "/more"}, env.KnownGlobalSearchLocations())

		value, ok := env.GetEnvVar("A")
		require.True(t, ok)
		assert.Equal(t, "1", value)

		home, ok := env.UserHome()
		require.True(t, ok)
		assert.Equal(t, "/home/u", home)
	})

	t.Run("NoPathsReturnsBase", func(t *testing.T) {
		env := WithExtraSearchLocations(base, nil)
		assert.Same(t, base, env)
	})
}

func TestMapEnvironment(t *testing.T) {
	env := &MapEnvironment{
		Vars:            map[string]string{"A": "1", "EMPTY": ""},
		Home:            "/home/u",
		SearchLocations: []string{"/one", "/two"},
	}

	value, ok := env.GetEnvVar("A")
	require.True(t, ok)
	assert.Equal(t, "1", value)

	_, ok = env.GetEnvVar("EMPTY")
	assert.False(t, ok, "empty values read as unset")

	_, ok = env.GetEnvVar("MISSING")
	assert.False(t, ok)

	home, ok := env.UserHome()
	require.True(t, ok)
	assert.Equal(t, "/home/u", home)

	assert.Equal(t, []string{"/one", "/two"}, env.KnownGlobalSearchLocations())

	empty := &MapEnvironment{}
	_, ok = empty.UserHome()
	assert.False(t, ok)
	assert.Empty(t, empty.KnownGlobalSearchLocations())
}
