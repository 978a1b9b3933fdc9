// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

//go:build !windows

package ipc

import (
	"io"
	"net"
	"os"
	"path/filepath"
)

// SocketDir is the directory Unix-domain socket endpoints are created under
// when the name is relative. Defaults to the OS temp directory.
var SocketDir = os.TempDir()

// ResolveName returns the filesystem path for a socket endpoint name.
func ResolveName(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(SocketDir, name)
}

func dialPlatform(name string) (io.ReadWriteCloser, error) {
	conn, err := net.Dial("unix", ResolveName(name))
	if err != nil {
		return nil, err
	}
	return conn, nil
}
