// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package orchestrator mediates between the server's abstract directives
// and the player's concrete protocol. It owns the single in-memory
// SessionState, drives the Idle/Loading/Playing/Paused/Failed state
// machine, and projects observed player events back to the server as
// progress and stop reports.
package orchestrator
