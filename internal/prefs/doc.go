// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package prefs persists the remembered audio/subtitle track preference for
// each series the receiver has played, so a later episode of the same
// series picks up the previous language choice automatically. Writes are
// debounced per series to tolerate rapid successive track changes without
// hammering the backing store.
package prefs
