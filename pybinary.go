// pybinary.go: locating the interpreter executable inside an environment
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"os"
	"path/filepath"
	"runtime"
)

// pythonBinaryName returns the platform's interpreter file name.
func pythonBinaryName() string {
	if runtime.GOOS == "windows" {
		return "python.exe"
	}
	return "python"
}

// FindPythonBinaryPath locates the runnable interpreter file inside an
// environment directory.
//
// Candidate locations, first existing wins:
//
//	<dir>/bin/python      (Unix installs and virtual environments)
//	<dir>/Scripts/python  (Windows virtual environments)
//	<dir>/python          (Windows installs, flat layouts)
//
// The second return value is false when no candidate exists. Nothing is
// executed; existence on disk is the only check performed.
func FindPythonBinaryPath(dir string) (string, bool) {
	name := pythonBinaryName()
	candidates := []string{
		filepath.Join(dir, "bin", name),
		filepath.Join(dir, "Scripts", name),
		filepath.Join(dir, name),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
