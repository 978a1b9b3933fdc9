// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

package services

import (
	"context"
	"fmt"
)

// PlayerProcessManager is the subset of the player supervisor this service
// drives: start the player process (spawning it if it isn't already
// running) and stop it on shutdown. It matches
// orchestrator.PlayerSupervisor's shape so the same adapter that the
// orchestrator calls lazily, on the first play directive, can also be
// registered here to guarantee the process is brought up eagerly at startup.
type PlayerProcessManager interface {
	EnsureStarted(ctx context.Context) error
	Stop(ctx context.Context) error
}

// PlayerProcessService wraps the player process manager as a supervised
// service.
//
// It adapts the EnsureStarted/Stop lifecycle pattern to suture's Serve
// pattern:
//  1. Calls EnsureStarted(ctx) to spawn the player process
//  2. Waits for context cancellation
//  3. Calls Stop(ctx) for graceful shutdown
type PlayerProcessService struct {
	manager PlayerProcessManager
	name    string
}

// NewPlayerProcessService creates a new player process service wrapper.
func NewPlayerProcessService(manager PlayerProcessManager) *PlayerProcessService {
	return &PlayerProcessService{
		manager: manager,
		name:    "player-process",
	}
}

// Serve implements suture.Service.
//
// If EnsureStarted fails, the error is returned immediately, causing suture
// to restart the service according to its backoff policy.
func (s *PlayerProcessService) Serve(ctx context.Context) error {
	if err := s.manager.EnsureStarted(ctx); err != nil {
		return fmt.Errorf("player process start failed: %w", err)
	}

	<-ctx.Done()

	if err := s.manager.Stop(ctx); err != nil {
		return fmt.Errorf("player process stop failed: %w", err)
	}

	return ctx.Err()
}

// String implements fmt.Stringer for logging.
func (s *PlayerProcessService) String() string {
	return s.name
}
