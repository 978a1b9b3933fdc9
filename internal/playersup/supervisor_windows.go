// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

//go:build windows

package playersup

import "os/exec"

func setPlatformAttrs(cmd *exec.Cmd) {
	// No process-group support is used on Windows in this context.
}

// terminateGracefully is a no-op on Windows: there is no reliable graceful
// signal, so Terminate falls straight through to the hard kill after the
// grace period elapses.
func terminateGracefully(cmd *exec.Cmd) error {
	return nil
}
