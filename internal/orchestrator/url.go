// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/jmsr/castcore/internal/models"
)

// streamingURL derives the static-streaming route for item, carrying the
// access token as the only place it ever appears outside a request header.
// It returns the URL and the PlaySessionId generated for this playback.
func streamingURL(server models.ServerSession, item *models.MediaItem) (string, string) {
	playSessionID := uuid.NewString()

	path := fmt.Sprintf("/Videos/%s/stream", item.ID)
	if item.Container != "" {
		path += "." + item.Container
	}
	u := &url.URL{Path: path}
	q := u.Query()
	q.Set("Static", "true")
	q.Set("api_key", server.AccessToken)
	q.Set("PlaySessionId", playSessionID)
	if item.MediaSourceID != "" {
		q.Set("MediaSourceId", item.MediaSourceID)
	}
	u.RawQuery = q.Encode()

	return server.BaseURL + u.String(), playSessionID
}
