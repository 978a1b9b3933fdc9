// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/metrics"
	"github.com/jmsr/castcore/internal/models"
	"github.com/jmsr/castcore/internal/playerproto"
)

func (o *Orchestrator) handlePlaystate(ctx context.Context, d *models.PlaystateDirective) error {
	if d == nil {
		return fmt.Errorf("orchestrator: nil playstate directive")
	}

	switch d.Command {
	case models.PlaystateCommandPause:
		return o.setPause(ctx, true)
	case models.PlaystateCommandUnpause:
		return o.setPause(ctx, false)
	case models.PlaystateCommandPlayPause:
		return o.togglePauseFromLiveState(ctx)
	case models.PlaystateCommandStop:
		return o.stopPlayback(ctx)
	case models.PlaystateCommandSeek:
		return o.player.Seek(ctx, ticksToSeconds(d.SeekPositionTicks), playerproto.SeekAbsolute)
	case models.PlaystateCommandNextTrack:
		return o.advanceTrack(ctx, 1)
	case models.PlaystateCommandPreviousTrack:
		return o.advanceTrack(ctx, -1)
	default:
		return fmt.Errorf("orchestrator: unknown playstate command %q", d.Command)
	}
}

func (o *Orchestrator) setPause(ctx context.Context, paused bool) error {
	if err := o.player.Set(ctx, "pause", paused); err != nil {
		return fmt.Errorf("orchestrator: set pause=%v: %w", paused, err)
	}
	if paused {
		o.state.setPhase(PhasePaused)
	} else {
		o.state.setPhase(PhasePlaying)
	}
	o.state.mutatePlayback(func(p *models.PlaybackSession) { p.Paused = paused })
	return nil
}

// togglePauseFromLiveState queries the player's actual pause state rather
// than trusting SessionState's mirrored value, since the user may have
// toggled pause through the player's own keybindings since the last event.
func (o *Orchestrator) togglePauseFromLiveState(ctx context.Context) error {
	raw, err := o.player.Get(ctx, "pause")
	if err != nil {
		return fmt.Errorf("orchestrator: query live pause state: %w", err)
	}

	var actual bool
	if err := json.Unmarshal(raw, &actual); err != nil {
		return fmt.Errorf("orchestrator: decode live pause state: %w", err)
	}

	return o.setPause(ctx, !actual)
}

func (o *Orchestrator) stopPlayback(ctx context.Context) error {
	if err := o.player.Stop(ctx); err != nil {
		logging.Warn().Err(err).Msg("orchestrator: stop command failed")
	}

	if snapshot, ok := o.currentPlayback(); ok {
		if err := o.server.PostStopped(ctx, snapshot); err != nil {
			logging.Warn().Err(err).Msg("orchestrator: stop report failed")
		} else {
			metrics.ProgressReports.WithLabelValues("stopped").Inc()
		}
	}

	o.state.clear()
	return nil
}

// advanceTrack moves to the next (direction=1) or previous (direction=-1)
// episode in the current item's series: post a stop report for the current
// item, fetch the adjacent episode, then re-enter play on it.
func (o *Orchestrator) advanceTrack(ctx context.Context, direction int) error {
	seriesID := o.state.SeriesID()
	if seriesID == "" {
		return fmt.Errorf("orchestrator: current item has no series to advance within")
	}

	current, ok := o.currentPlayback()
	if !ok {
		return fmt.Errorf("orchestrator: no active playback to advance from")
	}

	if err := o.server.PostStopped(ctx, current); err != nil {
		logging.Warn().Err(err).Msg("orchestrator: stop report before advance failed")
	} else {
		metrics.ProgressReports.WithLabelValues("stopped").Inc()
	}

	var (
		adjacent *models.MediaItem
		err      error
	)
	if direction > 0 {
		adjacent, err = o.server.GetNextEpisode(ctx, seriesID, current.ItemID)
	} else {
		adjacent, err = o.server.GetPreviousEpisode(ctx, seriesID, current.ItemID)
	}
	if err != nil {
		o.state.clear()
		return fmt.Errorf("orchestrator: fetch adjacent episode: %w", err)
	}

	return o.handlePlay(ctx, &models.PlayDirective{ItemIDs: []string{adjacent.ID}})
}
