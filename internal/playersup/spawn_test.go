// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package playersup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmsr/castcore/internal/ipc"
)

func TestBaselineArgs_OrderAndUserArgsLast(t *testing.T) {
	args := baselineArgs(ipc.Endpoint{Name: "jmsr-test"}, []string{"--fullscreen=yes"})

	require := assert.New(t)
	require.GreaterOrEqual(len(args), 5)
	require.Contains(args[0], "--input-ipc-server=")
	require.Contains(args[0], "jmsr-test")
	require.Equal("--idle=yes", args[1])
	require.Equal("--force-window=yes", args[2])
	require.Equal("--keep-open=yes", args[3])
	require.Equal("--fullscreen=yes", args[len(args)-1])
}
