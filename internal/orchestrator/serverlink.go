// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"

	"github.com/jmsr/castcore/internal/logging"
)

// HandleServerDisconnect reacts to the control link going down: the mirrored
// playback session is dropped (there is nowhere to report its progress to)
// and a warning notice is raised. The player itself keeps playing
// uninterrupted; only the server-facing session state is cleared.
func (o *Orchestrator) HandleServerDisconnect() {
	o.directiveMu.Lock()
	defer o.directiveMu.Unlock()

	o.state.clear()
	o.notify("warning", "lost connection to server, retrying")
}

// HandleServerReconnect reacts to the control link coming back up:
// capabilities are re-posted so the server resumes treating this device as
// a remote-control target, and a success notice is raised.
func (o *Orchestrator) HandleServerReconnect(ctx context.Context) {
	if err := o.server.PostCapabilities(ctx); err != nil {
		logging.Warn().Err(err).Msg("orchestrator: capabilities re-post failed after reconnect")
		return
	}
	o.notify("info", "reconnected to server")
}
