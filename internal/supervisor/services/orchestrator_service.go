// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

package services

import "context"

// Runner is the subset of orchestrator.Orchestrator the supervisor drives:
// the player-event projection loop that observes pause/time-pos/end-file
// and keeps the mirrored session in sync.
type Runner interface {
	Run(ctx context.Context) error
}

// OrchestratorService wraps the orchestrator's event-projection loop as a
// supervised service. Run's signature already matches suture.Service, so
// Serve is a direct pass-through; the wrapper exists for a stable type name
// and a fmt.Stringer for logging.
type OrchestratorService struct {
	orch Runner
	name string
}

// NewOrchestratorService wraps orch for supervision.
func NewOrchestratorService(orch Runner) *OrchestratorService {
	return &OrchestratorService{orch: orch, name: "orchestrator"}
}

// Serve implements suture.Service.
func (s *OrchestratorService) Serve(ctx context.Context) error {
	return s.orch.Run(ctx)
}

// String implements fmt.Stringer for logging.
func (s *OrchestratorService) String() string {
	return s.name
}
