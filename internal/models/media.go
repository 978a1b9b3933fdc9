// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

// MediaStream describes a single audio, video, or subtitle track carried by a
// MediaItem. Index is the stream's position within NowPlaying's MediaStreams
// array, the same index the player expects for its "aid"/"sid" properties.
type MediaStream struct {
	Index        int    `json:"Index"`
	Type         string `json:"Type"` // "Video", "Audio", "Subtitle", "EmbeddedImage"
	Language     string `json:"Language,omitempty"`
	DisplayTitle string `json:"DisplayTitle,omitempty"`
	IsDefault    bool   `json:"IsDefault,omitempty"`
}

// MediaItem is a resolved server item: enough to build a streaming URL and to
// derive effective audio/subtitle indices from series preferences.
type MediaItem struct {
	ID            string        `json:"Id"`
	SeriesID      string        `json:"SeriesId,omitempty"`
	Name          string        `json:"Name"`
	RunTimeTicks  int64         `json:"RunTimeTicks"`
	MediaStreams  []MediaStream `json:"MediaStreams"`
	MediaSourceID string        `json:"MediaSourceId,omitempty"`
	Container     string        `json:"Container,omitempty"`
	// IndexNumber orders episodes within a season; used to resolve the
	// next/previous episode relative to the currently playing item.
	IndexNumber       int `json:"IndexNumber,omitempty"`
	ParentIndexNumber int `json:"ParentIndexNumber,omitempty"`
}

// StreamByLanguage returns the index of the first stream of the given kind
// whose Language matches lang exactly, falling back to the first stream of
// that kind flagged IsDefault. It reports false if neither match exists.
func (m *MediaItem) StreamByLanguage(kind, lang string) (int, bool) {
	var fallback int
	haveFallback := false

	for _, s := range m.MediaStreams {
		if s.Type != kind {
			continue
		}
		if lang != "" && s.Language == lang {
			return s.Index, true
		}
		if s.IsDefault && !haveFallback {
			fallback = s.Index
			haveFallback = true
		}
	}

	if haveFallback {
		return fallback, true
	}
	return 0, false
}

// PlaybackSession is the core's view of what the external player is currently
// doing. SelectedSubtitleIndex of -1 means subtitles are explicitly off; nil
// means no selection has been observed yet.
type PlaybackSession struct {
	ItemID               string
	PlaySessionID        string
	MediaSourceID        string
	PositionTicks        int64
	Paused               bool
	Volume               int
	Muted                bool
	SelectedAudioIndex   *int
	SelectedSubtitleIndex *int
}

// TrackPreference is the remembered language/subtitle choice for a series,
// applied automatically whenever any episode of that series starts playing.
type TrackPreference struct {
	AudioLanguage      string `json:"audio_language,omitempty"`
	SubtitleLanguage   string `json:"subtitle_language,omitempty"`
	SubtitleEnabled    bool   `json:"subtitle_enabled"`
}
