// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package playersup

import "github.com/jmsr/castcore/internal/ipc"

// baselineArgs builds the mandatory spawn argument set: the IPC endpoint
// directive first, fixed behavior flags next, user-supplied args last so
// they can override anything that precedes them.
func baselineArgs(endpoint ipc.Endpoint, extra []string) []string {
	args := []string{
		"--input-ipc-server=" + ipc.ResolveName(endpoint.Name),
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
	}
	return append(args, extra...)
}
