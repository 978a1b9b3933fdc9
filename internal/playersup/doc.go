// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package playersup locates, spawns, and supervises the externally invoked
// player process: executable discovery across an explicit path, well-known
// install roots, and PATH; a mandatory baseline argument set binding the
// player's IPC endpoint; a default keybinding file for the two custom
// client-side message tokens; and a child-exit watcher with optional
// auto-respawn on the next play directive.
package playersup
