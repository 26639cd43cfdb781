// messaging_test.go: tests for discovery report dispatchers
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRPCDispatcher(t *testing.T) {
	t.Run("EnvManagerNotification", func(t *testing.T) {
		var buf bytes.Buffer
		dispatcher := NewJSONRPCDispatcher(&buf)

		dispatcher.ReportEnvironmentManager(EnvManager{
			ExecutablePath: "/opt/pyenv/bin/pyenv",
			Tool:           ManagerPyEnv,
		})

		line := strings.TrimSpace(buf.String())
		require.NotEmpty(t, line)

		var msg struct {
			JSONRPC string `json:"jsonrpc"`
			Method  string `json:"method"`
			Params  struct {
				ExecutablePath string `json:"executablePath"`
				Version        string `json:"version"`
				Tool           string `json:"tool"`
			} `json:"params"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &msg))
		assert.Equal(t, "2.0", msg.JSONRPC)
		assert.Equal(t, "envManager", msg.Method)
		assert.Equal(t, "/opt/pyenv/bin/pyenv", msg.Params.ExecutablePath)
		assert.Equal(t, "pyenv", msg.Params.Tool)
		assert.Empty(t, msg.Params.Version)
	})

	t.Run("PythonEnvironmentNotification", func(t *testing.T) {
		var buf bytes.Buffer
		dispatcher := NewJSONRPCDispatcher(&buf)

		manager := NewEnvManager("/opt/pyenv/bin/pyenv", "", ManagerPyEnv)
		dispatcher.ReportEnvironment(PythonEnvironment{
			DisplayName:          "myenv",
			PythonExecutablePath: "/opt/pyenv/versions/myenv/bin/python",
			Category:             CategoryPyEnvVirtualEnv,
			Version:              "3.11.4",
			EnvPath:              "/opt/pyenv/versions/myenv",
			SysPrefixPath:        "/opt/pyenv/versions/myenv",
			EnvManager:           manager,
			PythonRunCommand:     []string{"/opt/pyenv/versions/myenv/bin/python"},
		})

		line := strings.TrimSpace(buf.String())
		var msg map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &msg))
		assert.Equal(t, "pythonEnvironment", msg["method"])

		params, ok := msg["params"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "myenv", params["name"])
		assert.Equal(t, "pyenv-virtualenv", params["category"])
		assert.Equal(t, "3.11.4", params["version"])
		assert.Equal(t, "/opt/pyenv/versions/myenv/bin/python", params["pythonExecutablePath"])
	})

	t.Run("OneLinePerMessage", func(t *testing.T) {
		var buf bytes.Buffer
		dispatcher := NewJSONRPCDispatcher(&buf)

		dispatcher.ReportEnvironmentManager(EnvManager{ExecutablePath: "/a", Tool: ManagerPyEnv})
		dispatcher.ReportEnvironment(PythonEnvironment{PythonExecutablePath: "/b", Category: CategoryPyEnv})

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			var msg map[string]any
			assert.NoError(t, json.Unmarshal([]byte(line), &msg))
		}
	})

	t.Run("WriteFailureIsLoggedNotFatal", func(t *testing.T) {
		logger := NewTestLogger()
		dispatcher := NewJSONRPCDispatcher(&failingWriter{}, logger)

		dispatcher.ReportEnvironmentManager(EnvManager{ExecutablePath: "/a", Tool: ManagerPyEnv})

		assert.True(t, logger.HasMessage("ERROR", "Failed to write discovery message"))
	})
}

type failingWriter struct{}

func (f *failingWriter) Write(p []byte) (int, error) {
	return 0, assert.AnError
}

func TestCollectingDispatcher(t *testing.T) {
	dispatcher := NewCollectingDispatcher()

	dispatcher.ReportEnvironmentManager(EnvManager{ExecutablePath: "/m", Tool: ManagerPyEnv})
	dispatcher.ReportEnvironment(PythonEnvironment{PythonExecutablePath: "/p1", Category: CategoryPyEnv})
	dispatcher.ReportEnvironment(PythonEnvironment{PythonExecutablePath: "/p2", Category: CategoryPyEnvVirtualEnv})

	require.Len(t, dispatcher.Managers(), 1)
	require.Len(t, dispatcher.Environments(), 2)
	assert.Equal(t, "/p1", dispatcher.Environments()[0].PythonExecutablePath)

	// Returned slices are copies; mutating them does not corrupt the sink.
	envs := dispatcher.Environments()
	envs[0].PythonExecutablePath = "/mutated"
	assert.Equal(t, "/p1", dispatcher.Environments()[0].PythonExecutablePath)

	dispatcher.Reset()
	assert.Empty(t, dispatcher.Managers())
	assert.Empty(t, dispatcher.Environments())
}
