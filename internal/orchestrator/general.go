// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/jmsr/castcore/internal/models"
)

func (o *Orchestrator) handleGeneralCommand(ctx context.Context, d *models.GeneralCommandDirective) error {
	if d == nil {
		return fmt.Errorf("orchestrator: nil general command directive")
	}

	switch d.Name {
	case models.GeneralCommandSetVolume:
		volume, err := strconv.Atoi(d.Arguments["Volume"])
		if err != nil {
			return fmt.Errorf("orchestrator: invalid volume argument: %w", err)
		}
		if err := o.player.Set(ctx, "volume", volume); err != nil {
			return fmt.Errorf("orchestrator: set volume: %w", err)
		}
		o.state.mutatePlayback(func(p *models.PlaybackSession) { p.Volume = volume })
		return nil

	case models.GeneralCommandToggleMute:
		return o.toggleMute(ctx)
	case models.GeneralCommandMute:
		return o.setMute(ctx, true)
	case models.GeneralCommandUnmute:
		return o.setMute(ctx, false)

	case models.GeneralCommandSetAudioStreamIndex:
		index, err := strconv.Atoi(d.Arguments["Index"])
		if err != nil {
			return fmt.Errorf("orchestrator: invalid audio index argument: %w", err)
		}
		return o.setTrackIndex(ctx, "aid", "Audio", index)

	case models.GeneralCommandSetSubtitleStreamIndex:
		index, err := strconv.Atoi(d.Arguments["Index"])
		if err != nil {
			return fmt.Errorf("orchestrator: invalid subtitle index argument: %w", err)
		}
		return o.setTrackIndex(ctx, "sid", "Subtitle", index)

	case models.GeneralCommandDisplayMessage:
		o.notify("info", d.Arguments["Text"])
		return nil

	default:
		return fmt.Errorf("orchestrator: unknown general command %q", d.Name)
	}
}

func (o *Orchestrator) toggleMute(ctx context.Context) error {
	raw, err := o.player.Get(ctx, "mute")
	if err != nil {
		return fmt.Errorf("orchestrator: query live mute state: %w", err)
	}
	var muted bool
	if err := json.Unmarshal(raw, &muted); err != nil {
		return fmt.Errorf("orchestrator: decode live mute state: %w", err)
	}
	return o.setMute(ctx, !muted)
}

func (o *Orchestrator) setMute(ctx context.Context, muted bool) error {
	if err := o.player.Set(ctx, "mute", muted); err != nil {
		return fmt.Errorf("orchestrator: set mute=%v: %w", muted, err)
	}
	o.state.mutatePlayback(func(p *models.PlaybackSession) { p.Muted = muted })
	return nil
}

// setTrackIndex applies an explicit audio/subtitle selection and persists
// it as the series' remembered preference, keyed by the stream's language
// rather than its numeric index (which varies episode to episode).
func (o *Orchestrator) setTrackIndex(ctx context.Context, propertyName, streamType string, index int) error {
	if err := o.player.Set(ctx, propertyName, index); err != nil {
		return fmt.Errorf("orchestrator: set %s: %w", propertyName, err)
	}

	seriesID := o.state.SeriesID()
	if seriesID == "" {
		return nil
	}

	pref, _ := o.prefs.Get(seriesID)
	switch streamType {
	case "Audio":
		pref.AudioLanguage = languageForIndex(o.state.Streams(), streamType, index)
		o.state.mutatePlayback(func(p *models.PlaybackSession) { p.SelectedAudioIndex = &index })
	case "Subtitle":
		if index == subtitlesOff {
			pref.SubtitleEnabled = false
		} else {
			pref.SubtitleEnabled = true
			pref.SubtitleLanguage = languageForIndex(o.state.Streams(), streamType, index)
		}
		o.state.mutatePlayback(func(p *models.PlaybackSession) { p.SelectedSubtitleIndex = &index })
	}

	o.prefs.Set(seriesID, pref)
	return nil
}

func languageForIndex(streams []models.MediaStream, streamType string, index int) string {
	for _, s := range streams {
		if s.Type == streamType && s.Index == index {
			return s.Language
		}
	}
	return ""
}
