// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package models holds the data types shared across the cast receiver core:
// media items and streams fetched from the server, the live playback session
// mirrored from the external player, server-originated directives, and the
// per-series track preferences remembered between episodes.
package models
