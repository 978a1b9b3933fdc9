// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

//go:build !windows

package playersup

// windowedVariant is a no-op outside Windows: there is no console/windowed
// subsystem split to rewrite.
func windowedVariant(path string) string {
	return path
}
