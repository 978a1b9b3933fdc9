// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package playerproto

import (
	"errors"
	"fmt"
)

// ErrPlayerDisconnected is returned by any in-flight or new operation once
// the underlying IPC channel has closed.
var ErrPlayerDisconnected = errors.New("playerproto: player disconnected")

// ErrTimeout is returned when no reply arrives within an operation's budget.
var ErrTimeout = errors.New("playerproto: timed out waiting for reply")

// ErrMalformedFrame is returned internally when an outbound command cannot
// be serialized; inbound malformed frames are logged and discarded instead.
var ErrMalformedFrame = errors.New("playerproto: malformed frame")

// PlayerError reports a failure reply from the player itself, carrying the
// player's own error string as code.
type PlayerError struct {
	Code string
	Msg  string
}

func (e *PlayerError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("playerproto: player error %q", e.Code)
	}
	return fmt.Sprintf("playerproto: player error %q: %s", e.Code, e.Msg)
}
