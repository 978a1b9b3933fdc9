// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverapi

import (
	"context"

	"github.com/jmsr/castcore/internal/models"
)

type playbackProgressInfo struct {
	ItemID              string `json:"ItemId"`
	PlaySessionID       string `json:"PlaySessionId,omitempty"`
	MediaSourceID       string `json:"MediaSourceId,omitempty"`
	PositionTicks       int64  `json:"PositionTicks"`
	IsPaused            bool   `json:"IsPaused"`
	VolumeLevel         int    `json:"VolumeLevel"`
	IsMuted             bool   `json:"IsMuted"`
	AudioStreamIndex    *int   `json:"AudioStreamIndex,omitempty"`
	SubtitleStreamIndex *int   `json:"SubtitleStreamIndex,omitempty"`
}

func toProgressInfo(s models.PlaybackSession) playbackProgressInfo {
	return playbackProgressInfo{
		ItemID:              s.ItemID,
		PlaySessionID:       s.PlaySessionID,
		MediaSourceID:       s.MediaSourceID,
		PositionTicks:       s.PositionTicks,
		IsPaused:            s.Paused,
		VolumeLevel:         s.Volume,
		IsMuted:             s.Muted,
		AudioStreamIndex:    s.SelectedAudioIndex,
		SubtitleStreamIndex: s.SelectedSubtitleIndex,
	}
}

// PostProgress reports the current playback position and transport state.
// Also used for the initial "playback has started" report.
func (c *Client) PostProgress(ctx context.Context, session models.PlaybackSession) error {
	return c.doJSON(ctx, "post_progress", "POST", "/Sessions/Playing/Progress", toProgressInfo(session), nil)
}

// PostStopped reports that playback of session has ended.
func (c *Client) PostStopped(ctx context.Context, session models.PlaybackSession) error {
	return c.doJSON(ctx, "post_stopped", "POST", "/Sessions/Playing/Stopped", toProgressInfo(session), nil)
}
