// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

//go:build windows

package ipc

import (
	"context"
	"io"

	"github.com/Microsoft/go-winio"
)

// ResolveName returns the full pipe path for a named-pipe endpoint name.
func ResolveName(name string) string {
	return `\\.\pipe\` + name
}

func dialPlatform(name string) (io.ReadWriteCloser, error) {
	conn, err := winio.DialPipeContext(context.Background(), ResolveName(name))
	if err != nil {
		return nil, err
	}
	return conn, nil
}
