// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/metrics"
	"github.com/jmsr/castcore/internal/models"
)

// ticksPerSecond is the server's tick resolution: 10,000,000 ticks/second.
const ticksPerSecond = 10_000_000

func ticksToSeconds(ticks int64) float64 {
	return float64(ticks) / float64(ticksPerSecond)
}

func secondsToTicks(seconds float64) int64 {
	return int64(seconds * float64(ticksPerSecond))
}

// Config tunes the orchestrator's timing policy.
type Config struct {
	// ProgressInterval throttles time-pos driven progress reports.
	ProgressInterval time.Duration
}

// DefaultConfig returns the default progress-report interval.
func DefaultConfig() Config {
	return Config{ProgressInterval: 5 * time.Second}
}

// Orchestrator mediates server directives and player events. HandleDirective
// and the end-file and client-message event handlers are serialized through
// directiveMu so directives apply strictly in arrival order on a single
// logical task, matching the ordering guarantee in the concurrency model.
// Property-change handling does not take directiveMu; it updates
// SessionState under SessionState's own lock.
type Orchestrator struct {
	cfg Config

	state      *SessionState
	player     PlayerClient
	supervisor PlayerSupervisor
	server     ServerClient
	prefs      PreferenceStore
	notifier   Notifier

	directiveMu sync.Mutex

	progressMu   sync.Mutex
	lastProgress time.Time
}

// New builds an Orchestrator. notifier may be nil to discard notices.
func New(cfg Config, state *SessionState, player PlayerClient, supervisor PlayerSupervisor, server ServerClient, prefs PreferenceStore, notifier Notifier) *Orchestrator {
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = DefaultConfig().ProgressInterval
	}
	return &Orchestrator{
		cfg:        cfg,
		state:      state,
		player:     player,
		supervisor: supervisor,
		server:     server,
		prefs:      prefs,
		notifier:   notifier,
	}
}

func (o *Orchestrator) notify(level, msg string) {
	if o.notifier != nil {
		o.notifier.Notify(level, msg)
	}
}

// HandleDirective dispatches a single directive from the server control
// link. Directives must be fed to this method in arrival order; the caller
// (a single reader loop) is responsible for that ordering.
func (o *Orchestrator) HandleDirective(ctx context.Context, d models.Directive) error {
	o.directiveMu.Lock()
	defer o.directiveMu.Unlock()

	kind, err := o.dispatchDirective(ctx, d)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.DirectivesHandled.WithLabelValues(kind, outcome).Inc()
	return err
}

func (o *Orchestrator) dispatchDirective(ctx context.Context, d models.Directive) (string, error) {
	switch d.Kind {
	case models.DirectivePlay:
		return "play", o.handlePlay(ctx, d.Play)
	case models.DirectivePlaystate:
		return "playstate", o.handlePlaystate(ctx, d.Playstate)
	case models.DirectiveGeneralCommand:
		return "general_command", o.handleGeneralCommand(ctx, d.GeneralCommand)
	default:
		logging.Warn().Int("kind", int(d.Kind)).Msg("orchestrator: unknown directive kind, ignoring")
		return "unknown", nil
	}
}

// currentPlayback returns a snapshot of the active session or a zero value
// plus false if none is active.
func (o *Orchestrator) currentPlayback() (models.PlaybackSession, bool) {
	s := o.state.Snapshot()
	if s == nil {
		return models.PlaybackSession{}, false
	}
	return *s, true
}
