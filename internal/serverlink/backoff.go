// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverlink

import "time"

// reconnectSequence is the fixed reconnect delay schedule, in seconds. It is
// deliberately not a generic exponential doubling: the early steps stay
// short enough to ride out a brief server restart, and the schedule
// flattens at one minute rather than continuing to grow.
var reconnectSequence = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	60 * time.Second,
}

// reconnectDelay returns the delay for the given zero-based attempt number.
// Once the sequence is exhausted, every further attempt repeats its final
// (60s) step indefinitely.
func reconnectDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= len(reconnectSequence) {
		return reconnectSequence[len(reconnectSequence)-1]
	}
	return reconnectSequence[attempt]
}
