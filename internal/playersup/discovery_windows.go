// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

//go:build windows

package playersup

import (
	"os"
	"path/filepath"
	"strings"
)

// windowedVariant rewrites a console-subsystem mpv build's path to its
// windowed sibling when one exists alongside it, so no console window
// flashes on every launch.
func windowedVariant(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	if lower != "mpv.com" {
		return path
	}

	sibling := filepath.Join(filepath.Dir(path), "mpv.exe")
	if _, err := os.Stat(sibling); err == nil {
		return sibling
	}
	return path
}
