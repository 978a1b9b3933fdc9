// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

//go:build !windows

package playersup

import (
	"os/exec"
	"syscall"
)

func setPlatformAttrs(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// terminateGracefully sends SIGTERM to the process group so the player gets
// a chance to flush playback state before the hard kill fallback fires.
func terminateGracefully(cmd *exec.Cmd) error {
	pid := cmd.Process.Pid
	if err := syscall.Kill(-pid, syscall.SIGTERM); err != nil {
		if err == syscall.ESRCH {
			return errProcessAlreadyDone
		}
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	return nil
}
