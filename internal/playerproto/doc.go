// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package playerproto implements the request/reply and property-subscription
// protocol spoken over the local IPC transport: JSON command frames
// correlated by a monotonic request id, plus an unsolicited event stream
// that property observers fan out from.
package playerproto
