// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package notify carries user-visible notices (playback failures, reconnect
// events) from the orchestrator to whatever is watching locally, over an
// in-process Watermill pub/sub topic. There is no remote transport: this is
// purely a decoupling point inside a single receiver process.
package notify
