// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jmsr/castcore/internal/models"
)

// ErrEpisodeNotFound is returned by GetNextEpisode/GetPreviousEpisode when
// the current item has no neighbor in that direction.
var ErrEpisodeNotFound = errors.New("serverapi: no adjacent episode")

// GetItem fetches a single item by id.
func (c *Client) GetItem(ctx context.Context, itemID string) (*models.MediaItem, error) {
	var item models.MediaItem
	path := fmt.Sprintf("/Users/%s/Items/%s", c.userIDLocked(), itemID)
	if err := c.doJSON(ctx, "get_item", "GET", path, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

type episodesResponse struct {
	Items []models.MediaItem `json:"Items"`
}

// GetEpisodes fetches every episode of a series, ordered by season then
// episode index.
func (c *Client) GetEpisodes(ctx context.Context, seriesID string) ([]models.MediaItem, error) {
	path := fmt.Sprintf("/Shows/%s/Episodes?userId=%s", seriesID, c.userIDLocked())
	var resp episodesResponse
	if err := c.doJSON(ctx, "get_episodes", "GET", path, nil, &resp); err != nil {
		return nil, err
	}

	episodes := resp.Items
	sort.Slice(episodes, func(i, j int) bool {
		if episodes[i].ParentIndexNumber != episodes[j].ParentIndexNumber {
			return episodes[i].ParentIndexNumber < episodes[j].ParentIndexNumber
		}
		return episodes[i].IndexNumber < episodes[j].IndexNumber
	})
	return episodes, nil
}

// GetNextEpisode returns the episode immediately following currentItemID in
// series seriesID's ordering. The server has no dedicated "next episode"
// endpoint, so this is derived locally from GetEpisodes.
func (c *Client) GetNextEpisode(ctx context.Context, seriesID, currentItemID string) (*models.MediaItem, error) {
	return c.adjacentEpisode(ctx, seriesID, currentItemID, 1)
}

// GetPreviousEpisode returns the episode immediately preceding
// currentItemID in series seriesID's ordering.
func (c *Client) GetPreviousEpisode(ctx context.Context, seriesID, currentItemID string) (*models.MediaItem, error) {
	return c.adjacentEpisode(ctx, seriesID, currentItemID, -1)
}

func (c *Client) adjacentEpisode(ctx context.Context, seriesID, currentItemID string, offset int) (*models.MediaItem, error) {
	episodes, err := c.GetEpisodes(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	for i, ep := range episodes {
		if ep.ID != currentItemID {
			continue
		}
		j := i + offset
		if j < 0 || j >= len(episodes) {
			return nil, ErrEpisodeNotFound
		}
		return &episodes[j], nil
	}
	return nil, ErrEpisodeNotFound
}
