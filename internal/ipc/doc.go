// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package ipc opens the OS-local duplex endpoint used to talk to the
// externally spawned player: a Unix-domain socket everywhere but Windows,
// where a named pipe is used instead. The player may not yet be listening
// when the core dials, so Dial retries with a short bounded backoff.
package ipc
