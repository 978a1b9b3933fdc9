// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/metrics"
	"github.com/jmsr/castcore/internal/models"
	"github.com/jmsr/castcore/internal/playerproto"
)

func (o *Orchestrator) handlePlay(ctx context.Context, d *models.PlayDirective) error {
	if d == nil || len(d.ItemIDs) == 0 {
		return fmt.Errorf("orchestrator: play directive has no items")
	}
	itemID := d.ItemIDs[0]

	item, err := o.server.GetItem(ctx, itemID)
	if err != nil {
		o.notify("error", "could not load the requested item")
		return fmt.Errorf("orchestrator: fetch item %s: %w", itemID, err)
	}
	if d.MediaSourceID != "" {
		item.MediaSourceID = d.MediaSourceID
	}

	server := o.state.Server()
	streamURL, playSessionID := streamingURL(server, item)

	audioIdx, subtitleIdx := d.AudioStreamIndex, d.SubtitleStreamIndex
	if item.SeriesID != "" {
		if pref, ok := o.prefs.Get(item.SeriesID); ok {
			audioIdx, subtitleIdx = resolveEffectiveIndices(item, audioIdx, subtitleIdx, &pref, true)
		}
	}

	if err := o.supervisor.EnsureStarted(ctx); err != nil {
		o.notify("error", "could not start the player")
		return fmt.Errorf("orchestrator: ensure player started: %w", err)
	}

	playback := models.PlaybackSession{
		ItemID:                item.ID,
		PlaySessionID:         playSessionID,
		MediaSourceID:         item.MediaSourceID,
		PositionTicks:         d.StartPositionTicks,
		SelectedAudioIndex:    audioIdx,
		SelectedSubtitleIndex: subtitleIdx,
	}
	o.state.beginLoad(item, playback)

	if err := o.player.Load(ctx, streamURL); err != nil {
		o.state.setPhase(PhaseFailed)
		o.notify("error", "playback failed to start")
		return fmt.Errorf("orchestrator: load: %w", err)
	}
	o.state.setPhase(PhasePlaying)

	if d.StartPositionTicks > 0 {
		if err := o.player.Seek(ctx, ticksToSeconds(d.StartPositionTicks), playerproto.SeekAbsolute); err != nil {
			logSoftPlayerError("seek", err)
		}
	}
	if audioIdx != nil {
		if err := o.player.Set(ctx, "aid", *audioIdx); err != nil {
			logSoftPlayerError("set aid", err)
		}
	}
	if subtitleIdx != nil {
		if err := o.player.Set(ctx, "sid", *subtitleIdx); err != nil {
			logSoftPlayerError("set sid", err)
		}
	}

	if snapshot, ok := o.currentPlayback(); ok {
		if err := o.server.PostProgress(ctx, snapshot); err != nil {
			logging.Warn().Err(err).Msg("orchestrator: initial progress report failed")
		} else {
			metrics.ProgressReports.WithLabelValues("progress").Inc()
		}
	}

	return nil
}

// logSoftPlayerError logs a player-reported failure that does not abort the
// directive it occurred during, e.g. a "no such track" reply to a track
// selection applied speculatively.
func logSoftPlayerError(op string, err error) {
	var perr *playerproto.PlayerError
	if errors.As(err, &perr) {
		logging.Warn().Str("op", op).Str("code", perr.Code).Msg("orchestrator: player rejected command, continuing")
		return
	}
	logging.Warn().Str("op", op).Err(err).Msg("orchestrator: command failed, continuing")
}
