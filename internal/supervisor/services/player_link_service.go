// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

package services

import "context"

// PlayerLinkRunner is the subset of playerlink.Client the supervisor
// drives: the background loop that watches the active player connection
// for disconnect and redials through the process supervisor.
type PlayerLinkRunner interface {
	Run(ctx context.Context) error
}

// PlayerLinkService wraps the reconnecting player connection's watch loop
// as a supervised service. Run's signature already matches suture.Service,
// so Serve is a direct pass-through; the wrapper exists for a stable type
// name and a fmt.Stringer for logging.
type PlayerLinkService struct {
	link PlayerLinkRunner
	name string
}

// NewPlayerLinkService wraps link for supervision.
func NewPlayerLinkService(link PlayerLinkRunner) *PlayerLinkService {
	return &PlayerLinkService{link: link, name: "player-link"}
}

// Serve implements suture.Service.
func (s *PlayerLinkService) Serve(ctx context.Context) error {
	return s.link.Run(ctx)
}

// String implements fmt.Stringer for logging.
func (s *PlayerLinkService) String() string {
	return s.name
}
