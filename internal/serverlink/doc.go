// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package serverlink maintains the duplex websocket control channel to the
// server: directive decode and validation, KeepAlive/ForceKeepAlive
// handling, and a reconnect loop following a fixed backoff sequence rather
// than generic exponential doubling.
package serverlink
