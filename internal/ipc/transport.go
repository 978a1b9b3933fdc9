// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ipc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jmsr/castcore/internal/logging"
)

// ErrTransportUnavailable is returned when the player endpoint never became
// acceptable within the connect budget.
var ErrTransportUnavailable = errors.New("ipc: transport unavailable")

// DialConfig controls the bounded retry used while the player process is
// still warming up its listener.
type DialConfig struct {
	// InitialInterval is the delay between connect attempts. Default 50ms.
	InitialInterval time.Duration
	// MaxElapsed is the total time budget before giving up. Default 2s.
	MaxElapsed time.Duration
}

// DefaultDialConfig gives up to ~2 seconds total, 50ms between attempts,
// for the player's listener to come up after spawn.
func DefaultDialConfig() DialConfig {
	return DialConfig{
		InitialInterval: 50 * time.Millisecond,
		MaxElapsed:      2 * time.Second,
	}
}

// Endpoint names a local duplex endpoint: a socket path everywhere but
// Windows, where it is the pipe name appended to `\\.\pipe\`.
type Endpoint struct {
	Name string
}

// Dial connects to the named endpoint, retrying with a constant bounded
// backoff until the player's listener comes up or the budget is exhausted.
func Dial(ctx context.Context, ep Endpoint, cfg DialConfig) (io.ReadWriteCloser, error) {
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 50 * time.Millisecond
	}
	if cfg.MaxElapsed <= 0 {
		cfg.MaxElapsed = 2 * time.Second
	}

	b := backoff.WithContext(
		backoff.WithMaxElapsedTime(backoff.NewConstantBackOff(cfg.InitialInterval), cfg.MaxElapsed),
		ctx,
	)

	var conn io.ReadWriteCloser
	op := func() error {
		c, err := dialPlatform(ep.Name)
		if err != nil {
			logging.Debug().Str("endpoint", ep.Name).Err(err).Msg("ipc connect attempt failed, retrying")
			return err
		}
		conn = c
		return nil
	}

	if err := backoff.Retry(op, b); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransportUnavailable, ep.Name, err)
	}

	logging.Info().Str("endpoint", ep.Name).Msg("ipc connected")
	return conn, nil
}
