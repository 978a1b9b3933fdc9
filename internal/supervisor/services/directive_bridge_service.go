// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

package services

import (
	"context"
	"time"

	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/models"
)

const connectedPollInterval = 500 * time.Millisecond

// DirectiveSource is the subset of serverlink.Link the bridge consumes.
type DirectiveSource interface {
	Directives() <-chan models.Directive
	Connected() bool
}

// DirectiveHandler is the subset of orchestrator.Orchestrator the bridge
// drives: directive dispatch plus the disconnect/reconnect hooks. The link
// only exposes a poll-based Connected(), so the bridge is responsible for
// noticing the rising and falling edges itself.
type DirectiveHandler interface {
	HandleDirective(ctx context.Context, d models.Directive) error
	HandleServerDisconnect()
	HandleServerReconnect(ctx context.Context)
}

// DirectiveBridgeService feeds directives from the control link to the
// orchestrator, in arrival order, and projects the link's connect/disconnect
// transitions onto the orchestrator's session state.
type DirectiveBridgeService struct {
	link DirectiveSource
	orch DirectiveHandler
	name string
}

// NewDirectiveBridgeService wires link's directive stream to orch.
func NewDirectiveBridgeService(link DirectiveSource, orch DirectiveHandler) *DirectiveBridgeService {
	return &DirectiveBridgeService{link: link, orch: orch, name: "directive-bridge"}
}

// Serve implements suture.Service.
func (s *DirectiveBridgeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(connectedPollInterval)
	defer ticker.Stop()

	wasConnected := s.link.Connected()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case d, ok := <-s.link.Directives():
			if !ok {
				return nil
			}
			if err := s.orch.HandleDirective(ctx, d); err != nil {
				logging.Warn().Err(err).Int("kind", int(d.Kind)).Msg("directive-bridge: directive handling failed")
			}

		case <-ticker.C:
			connected := s.link.Connected()
			if connected == wasConnected {
				continue
			}
			wasConnected = connected
			if connected {
				s.orch.HandleServerReconnect(ctx)
			} else {
				s.orch.HandleServerDisconnect()
			}
		}
	}
}

// String implements fmt.Stringer for logging.
func (s *DirectiveBridgeService) String() string {
	return s.name
}
