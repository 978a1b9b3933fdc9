// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

package services

import "context"

// LinkRunner is the subset of serverlink.Link the supervisor drives.
type LinkRunner interface {
	Run(ctx context.Context)
	Close() error
}

// ServerLinkService wraps the server control-link's reconnect loop as a
// supervised service.
//
// Link.Run blocks internally until ctx is canceled or Close is called, and
// returns nothing, so Serve adapts that into suture's error-returning
// pattern: a canceled context is a clean stop, anything else is treated as
// a crash so the supervisor restarts the link.
type ServerLinkService struct {
	link LinkRunner
	name string
}

// NewServerLinkService wraps link for supervision.
func NewServerLinkService(link LinkRunner) *ServerLinkService {
	return &ServerLinkService{link: link, name: "server-link"}
}

// Serve implements suture.Service.
func (s *ServerLinkService) Serve(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.link.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		s.link.Close()
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

// String implements fmt.Stringer for logging.
func (s *ServerLinkService) String() string {
	return s.name
}
