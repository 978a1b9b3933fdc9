// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import "github.com/jmsr/castcore/internal/models"

// subtitlesOff is the player's sentinel for "no subtitle track selected".
const subtitlesOff = -1

// resolveEffectiveIndices computes the audio/subtitle stream indices that
// should actually be applied: the server-supplied indices, overridden by a
// remembered series preference when one exists.
func resolveEffectiveIndices(item *models.MediaItem, serverAudio, serverSubtitle *int, pref *models.TrackPreference, havePref bool) (audio, subtitle *int) {
	audio, subtitle = serverAudio, serverSubtitle

	if !havePref {
		return audio, subtitle
	}

	if idx, ok := item.StreamByLanguage("Audio", pref.AudioLanguage); ok {
		a := idx
		audio = &a
	}

	if !pref.SubtitleEnabled {
		off := subtitlesOff
		subtitle = &off
		return audio, subtitle
	}

	if idx, ok := item.StreamByLanguage("Subtitle", pref.SubtitleLanguage); ok {
		s := idx
		subtitle = &s
	}

	return audio, subtitle
}
