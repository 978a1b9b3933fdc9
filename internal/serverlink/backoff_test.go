// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverlink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReconnectDelay_ExactSequence(t *testing.T) {
	expected := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		5 * time.Second,
		10 * time.Second,
		30 * time.Second,
		60 * time.Second,
		60 * time.Second,
		60 * time.Second,
	}

	for attempt, want := range expected {
		assert.Equal(t, want, reconnectDelay(attempt), "attempt %d", attempt)
	}
}

func TestReconnectDelay_NegativeAttemptClampsToFirst(t *testing.T) {
	assert.Equal(t, 1*time.Second, reconnectDelay(-1))
}
