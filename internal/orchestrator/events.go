// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/metrics"
	"github.com/jmsr/castcore/internal/models"
	"github.com/jmsr/castcore/internal/playerproto"
)

// observedProperties are subscribed once per player process lifetime; their
// change events drive immediate or throttled progress reports.
var observedProperties = []string{"pause", "volume", "mute", "time-pos"}

// resubscribeBackoff separates a dropped player session from the next
// resubscribe attempt, giving a reconnecting PlayerClient time to land a
// fresh connection before Observe is retried against it.
const resubscribeBackoff = 2 * time.Second

// propertyChange pairs a property name with the event that changed it, used
// to fan the per-subscription channels into a single select loop.
type propertyChange struct {
	name string
	ev   playerproto.Event
}

// Run subscribes to the player's property and event streams and projects
// them onto SessionState and outbound progress reports until ctx is
// cancelled. It runs for the lifetime of the receiver process, not just one
// player process: a player crash ends the current session with
// playerproto.ErrPlayerDisconnected, and Run resubscribes against whatever
// connection o.player presents next, once its PlayerClient (typically a
// reconnecting playerlink.Client) has re-dialed. It runs alongside the
// server control link's directive feed, which calls HandleDirective
// concurrently.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		err := o.runSession(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			logging.Warn().Err(err).Msg("orchestrator: player session ended, resubscribing after backoff")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(resubscribeBackoff):
		}
	}
}

// runSession subscribes to one player connection's property and event
// streams and projects them until ctx is cancelled or that connection
// disconnects.
func (o *Orchestrator) runSession(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes := make(chan propertyChange, 16)
	handles := make([]playerproto.SubscriptionHandle, 0, len(observedProperties))

	for _, name := range observedProperties {
		handle, ch, err := o.player.Observe(name)
		if err != nil {
			for _, h := range handles {
				_ = o.player.Unobserve(h)
			}
			return err
		}
		handles = append(handles, handle)
		go forwardPropertyChanges(runCtx, name, ch, changes)
	}
	defer func() {
		for _, h := range handles {
			_ = o.player.Unobserve(h)
		}
	}()

	events := o.player.Events()
	disconnected := o.player.Done()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-disconnected:
			return playerproto.ErrPlayerDisconnected
		case change := <-changes:
			o.handlePropertyChange(ctx, change.name, change.ev)
		case ev, ok := <-events:
			if !ok {
				return playerproto.ErrPlayerDisconnected
			}
			o.handleGeneralEvent(ctx, ev)
		}
	}
}

func forwardPropertyChanges(ctx context.Context, name string, src <-chan playerproto.Event, dst chan<- propertyChange) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-src:
			if !ok {
				return
			}
			select {
			case dst <- propertyChange{name: name, ev: ev}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (o *Orchestrator) handlePropertyChange(ctx context.Context, name string, ev playerproto.Event) {
	switch name {
	case "pause":
		var paused bool
		if err := json.Unmarshal(ev.Data, &paused); err != nil {
			return
		}
		if paused {
			o.state.setPhase(PhasePaused)
		} else {
			o.state.setPhase(PhasePlaying)
		}
		o.state.mutatePlayback(func(p *models.PlaybackSession) { p.Paused = paused })
		o.reportProgressNow(ctx)
	case "volume":
		var volume int
		if err := json.Unmarshal(ev.Data, &volume); err != nil {
			return
		}
		o.state.mutatePlayback(func(p *models.PlaybackSession) { p.Volume = volume })
		o.reportProgressNow(ctx)
	case "mute":
		var muted bool
		if err := json.Unmarshal(ev.Data, &muted); err != nil {
			return
		}
		o.state.mutatePlayback(func(p *models.PlaybackSession) { p.Muted = muted })
		o.reportProgressNow(ctx)
	case "time-pos":
		var seconds float64
		if err := json.Unmarshal(ev.Data, &seconds); err != nil {
			return
		}
		o.state.mutatePlayback(func(p *models.PlaybackSession) { p.PositionTicks = secondsToTicks(seconds) })
		o.reportProgressThrottled(ctx)
	}
}

func (o *Orchestrator) handleGeneralEvent(ctx context.Context, ev playerproto.Event) {
	switch ev.Name {
	case "end-file":
		o.directiveMu.Lock()
		defer o.directiveMu.Unlock()
		if ev.Reason == "eof" {
			if err := o.advanceTrack(ctx, 1); err != nil {
				logging.Warn().Err(err).Msg("orchestrator: natural-end auto-advance failed")
			}
			return
		}
		if err := o.stopPlayback(ctx); err != nil {
			logging.Warn().Err(err).Msg("orchestrator: stop on end-file failed")
		}
	case "client-message":
		if len(ev.Args) == 0 {
			return
		}
		o.directiveMu.Lock()
		defer o.directiveMu.Unlock()
		switch ev.Args[0] {
		case "jmsr-next":
			if err := o.advanceTrack(ctx, 1); err != nil {
				logging.Warn().Err(err).Msg("orchestrator: keybinding next-track failed")
			}
		case "jmsr-prev":
			if err := o.advanceTrack(ctx, -1); err != nil {
				logging.Warn().Err(err).Msg("orchestrator: keybinding previous-track failed")
			}
		}
	}
}

func (o *Orchestrator) reportProgressNow(ctx context.Context) {
	snapshot, ok := o.currentPlayback()
	if !ok {
		return
	}
	if err := o.server.PostProgress(ctx, snapshot); err != nil {
		logging.Warn().Err(err).Msg("orchestrator: progress report failed")
		return
	}
	metrics.ProgressReports.WithLabelValues("progress").Inc()
}

// reportProgressThrottled rate-limits time-pos driven reports to
// cfg.ProgressInterval so position ticks don't flood the server.
func (o *Orchestrator) reportProgressThrottled(ctx context.Context) {
	o.progressMu.Lock()
	due := time.Since(o.lastProgress) >= o.cfg.ProgressInterval
	if due {
		o.lastProgress = time.Now()
	}
	o.progressMu.Unlock()

	if due {
		o.reportProgressNow(ctx)
	}
}
