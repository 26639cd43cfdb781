// pyvenvcfg.go: parsing pyvenv.cfg virtual environment descriptors
//
// A virtual environment is recognizable by the small key-value pyvenv.cfg
// file the venv machinery writes next to (or one level above) the
// interpreter. The file declares, among other things, the Python version the
// environment was created from; that version is all discovery needs.
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
)

// PyVenvCfg is the parsed subset of a pyvenv.cfg file.
type PyVenvCfg struct {
	// Version is the declared Python version the environment was created
	// from.
	Version string
}

var (
	// version = 3.11.4
	cfgVersionRegexp = regexp.MustCompile(`^version\s*=\s*(\d+\.\d+\.\d+)$`)
	// version_info = 3.11.4.final.0 (newer venv/virtualenv releases)
	cfgVersionInfoRegexp = regexp.MustCompile(`^version_info\s*=\s*(\d+\.\d+\.\d+.*)$`)
)

// FindPyVenvConfigPath locates the pyvenv.cfg associated with an interpreter
// executable.
//
// The file may sit next to the executable or, for the conventional
// <env>/bin/python layout, in the environment directory one level up. The
// first existing candidate wins; false means the executable does not belong
// to a virtual environment.
func FindPyVenvConfigPath(executable string) (string, bool) {
	binDir := filepath.Dir(executable)
	candidates := []string{
		filepath.Join(binDir, "pyvenv.cfg"),
		filepath.Join(filepath.Dir(binDir), "pyvenv.cfg"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// FindAndParsePyVenvCfg locates and parses the pyvenv.cfg for an interpreter
// executable.
//
// Returns false when there is no config file, the file is unreadable, or no
// version declaration could be extracted; all three collapse to "not a
// virtual environment" for discovery purposes.
func FindAndParsePyVenvCfg(executable string) (PyVenvCfg, bool) {
	path, ok := FindPyVenvConfigPath(executable)
	if !ok {
		return PyVenvCfg{}, false
	}
	return ParsePyVenvCfg(path)
}

// ParsePyVenvCfg reads a pyvenv.cfg file and extracts the declared version.
//
// Lines are scanned in order; the first version or version_info declaration
// wins. Files without one yield no result.
func ParsePyVenvCfg(path string) (PyVenvCfg, bool) {
	file, err := os.Open(path) // #nosec G304 - path comes from directory enumeration
	if err != nil {
		return PyVenvCfg{}, false
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if m := cfgVersionRegexp.FindStringSubmatch(line); m != nil {
			return PyVenvCfg{Version: m[1]}, true
		}
		if m := cfgVersionInfoRegexp.FindStringSubmatch(line); m != nil {
			return PyVenvCfg{Version: m[1]}, true
		}
	}
	return PyVenvCfg{}, false
}
