// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

/*
Package services provides suture.Service wrappers for the cast receiver's
components.

This package adapts existing application components to the suture v4
supervision model, translating various lifecycle patterns (EnsureStarted/Stop,
Run, channel read loops) into suture's context-aware Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Lifecycle translation (EnsureStarted/Stop, Run, to Serve pattern)
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

Server Link (ServerLinkService):
  - Wraps serverlink.Link's reconnect loop
  - Run blocks internally and returns nothing; Serve adapts that into an
    error-returning shutdown so a canceled context is a clean stop

Directive Bridge (DirectiveBridgeService):
  - Drains serverlink.Link.Directives() into orchestrator.HandleDirective,
    in arrival order
  - Polls Link.Connected() for the connect/disconnect transitions the link
    itself does not push, projecting them onto the orchestrator's session
    state (clear + warning notice on drop, re-post capabilities + success
    notice on reconnect)

Orchestrator (OrchestratorService):
  - Wraps the orchestrator's player-event projection loop
  - Run's signature already matches suture.Service; the wrapper exists for
    a stable type name and a fmt.Stringer

Player Process (PlayerProcessService):
  - Wraps the player-process supervisor's EnsureStarted/Stop lifecycle
  - Brings the player process up eagerly at startup and tears it down on
    shutdown, rather than waiting on the orchestrator's first lazy
    EnsureStarted call

Player Link (PlayerLinkService):
  - Wraps playerlink.Client's reconnect loop
  - Watches the active player connection for disconnect, respawns the
    process through the supervisor, redials, and swaps in the fresh
    protocol client the orchestrator is already holding a reference to
  - Run's signature already matches suture.Service; the wrapper exists for
    a stable type name and a fmt.Stringer

# Usage Example

Creating and registering services:

	import (
	    "github.com/jmsr/castcore/internal/supervisor"
	    "github.com/jmsr/castcore/internal/supervisor/services"
	)

	func setupSupervisor(link *serverlink.Link, orch *orchestrator.Orchestrator, player services.PlayerProcessManager, playerLink services.PlayerLinkRunner) {
	    tree, _ := supervisor.NewSupervisorTree(logger, config)

	    tree.AddLinkService(services.NewServerLinkService(link))
	    tree.AddCoreService(services.NewDirectiveBridgeService(link, orch))
	    tree.AddCoreService(services.NewOrchestratorService(orch))
	    tree.AddCoreService(services.NewPlayerProcessService(player))
	    tree.AddCoreService(services.NewPlayerLinkService(playerLink))

	    tree.Serve(ctx)
	}

# Lifecycle Patterns

The package handles two common lifecycle patterns:

EnsureStarted/Stop Pattern:

	type PlayerProcessManager interface {
	    EnsureStarted(ctx context.Context) error
	    Stop(ctx context.Context) error
	}

	// Wrapped as:
	func (s *PlayerProcessService) Serve(ctx context.Context) error {
	    if err := s.manager.EnsureStarted(ctx); err != nil {
	        return err
	    }
	    <-ctx.Done()
	    return s.manager.Stop(ctx)
	}

Run Pattern (blocks until canceled, no error return):

	type LinkRunner interface {
	    Run(ctx context.Context)
	    Close() error
	}

	// Wrapped as:
	func (s *ServerLinkService) Serve(ctx context.Context) error {
	    done := make(chan struct{})
	    go func() { defer close(done); s.link.Run(ctx) }()
	    select {
	    case <-ctx.Done():
	        s.link.Close()
	        <-done
	        return ctx.Err()
	    case <-done:
	        return nil
	    }
	}

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

# Service Identification

All services implement fmt.Stringer for logging:

	func (s *ServerLinkService) String() string {
	    return "server-link"
	}

Suture uses this for log messages:

	INFO server-link: starting
	INFO server-link: stopped
	ERROR server-link: restarting after failure

# Thread Safety

All service wrappers are safe for concurrent use:
  - Context cancellation is handled atomically
  - Multiple Serve calls on the same wrapper are not supported (undefined
    behavior)

# See Also

  - internal/supervisor: SupervisorTree that manages these services
  - github.com/thejerf/suture/v4: Underlying supervision library
  - internal/serverlink: server control-link implementation
  - internal/orchestrator: directive/event orchestration
*/
package services
