// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/jmsr/castcore/internal/models"
	"github.com/jmsr/castcore/internal/playerproto"
)

// PlayerClient is the subset of playerproto.Client the orchestrator drives.
// Isolating it behind an interface keeps orchestrator tests independent of
// the wire protocol.
type PlayerClient interface {
	Load(ctx context.Context, url string) error
	Set(ctx context.Context, name string, value interface{}) error
	Get(ctx context.Context, name string) (json.RawMessage, error)
	Seek(ctx context.Context, seconds float64, mode playerproto.SeekMode) error
	Stop(ctx context.Context) error
	Observe(name string) (playerproto.SubscriptionHandle, <-chan playerproto.Event, error)
	Unobserve(handle playerproto.SubscriptionHandle) error
	Events() <-chan playerproto.Event
	// Done reports the active connection's disconnect signal. Implementations
	// backed by a reconnecting client return a fresh channel per connection;
	// callers must re-fetch it after it fires rather than caching it across
	// a reconnect.
	Done() <-chan struct{}
}

// ServerClient is the subset of serverapi the orchestrator needs.
type ServerClient interface {
	GetItem(ctx context.Context, itemID string) (*models.MediaItem, error)
	PostProgress(ctx context.Context, session models.PlaybackSession) error
	PostStopped(ctx context.Context, session models.PlaybackSession) error
	PostCapabilities(ctx context.Context) error
	GetNextEpisode(ctx context.Context, seriesID, currentItemID string) (*models.MediaItem, error)
	GetPreviousEpisode(ctx context.Context, seriesID, currentItemID string) (*models.MediaItem, error)
}

// PreferenceStore is the debounced per-series track-preference facade.
type PreferenceStore interface {
	Get(seriesID string) (models.TrackPreference, bool)
	Set(seriesID string, pref models.TrackPreference)
}

// PlayerSupervisor is the subset of playersup.Supervisor the orchestrator
// uses to ensure a process is alive before issuing player commands.
type PlayerSupervisor interface {
	EnsureStarted(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Notifier emits user-visible toast-level notices, e.g. on recovered
// protocol errors or server reconnects.
type Notifier interface {
	Notify(level, message string)
}
