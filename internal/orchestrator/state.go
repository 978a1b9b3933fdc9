// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"sync"

	"github.com/jmsr/castcore/internal/models"
)

// PlaybackPhase is the playback state machine's current node.
type PlaybackPhase int

const (
	PhaseIdle PlaybackPhase = iota
	PhaseLoading
	PhasePlaying
	PhasePaused
	PhaseFailed
)

func (p PlaybackPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionState is the core's single source of truth about what is playing.
// It has exactly one writer, the orchestrator; every other reader takes a
// snapshot under the shared lock rather than holding a reference into it.
type SessionState struct {
	mu sync.RWMutex

	phase PlaybackPhase

	server   models.ServerSession
	playback *models.PlaybackSession
	item     *models.MediaItem
	seriesID string
	streams  []models.MediaStream
}

// NewSessionState starts in PhaseIdle with no active playback.
func NewSessionState(server models.ServerSession) *SessionState {
	return &SessionState{phase: PhaseIdle, server: server}
}

// Phase returns the current playback phase.
func (s *SessionState) Phase() PlaybackPhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *SessionState) setPhase(p PlaybackPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p
}

// Snapshot returns a copy of the playback session, or nil if none is active.
func (s *SessionState) Snapshot() *models.PlaybackSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.playback == nil {
		return nil
	}
	cp := *s.playback
	return &cp
}

// Item returns the current media item, or nil.
func (s *SessionState) Item() *models.MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.item
}

// SeriesID returns the series id of the current item, empty if none or not
// part of a series.
func (s *SessionState) SeriesID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seriesID
}

// Streams returns the media streams of the current item.
func (s *SessionState) Streams() []models.MediaStream {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streams
}

// Server returns a copy of the server session identity.
func (s *SessionState) Server() models.ServerSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.server
}

// beginLoad installs a fresh playback session and item for an in-flight
// load, entering PhaseLoading.
func (s *SessionState) beginLoad(item *models.MediaItem, playback models.PlaybackSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseLoading
	s.item = item
	s.seriesID = item.SeriesID
	s.streams = item.MediaStreams
	s.playback = &playback
}

// mutatePlayback applies fn to the current playback session under lock. It
// is a no-op if no session is active.
func (s *SessionState) mutatePlayback(fn func(*models.PlaybackSession)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playback == nil {
		return
	}
	fn(s.playback)
}

// clear drops the current playback session and item, returning to
// PhaseIdle.
func (s *SessionState) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseIdle
	s.playback = nil
	s.item = nil
	s.seriesID = ""
	s.streams = nil
}
