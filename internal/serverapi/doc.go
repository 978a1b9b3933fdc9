// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package serverapi is a thin typed wrapper over the server's HTTP surface:
// authentication, capability registration, progress/stop reporting, and
// item/episode lookups. Every response is checked for a 2xx status before
// its body is parsed; non-2xx responses surface as a typed HttpError. All
// request URLs pass through a single redaction helper before they are
// logged.
package serverapi
