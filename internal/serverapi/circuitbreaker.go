// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverapi

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/metrics"
	"github.com/jmsr/castcore/internal/models"
)

const breakerName = "server-api"

// CircuitBreakerClient wraps Client with a circuit breaker so a server
// outage degrades to fast local rejection instead of every orchestrator
// call blocking on a dead connection.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
}

// NewCircuitBreakerClient wraps client. Opens after a 60% failure rate over
// at least 10 requests within a one-minute window, and probes recovery
// after two minutes open.
func NewCircuitBreakerClient(client *Client) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("serverapi: circuit opening")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("serverapi: circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb}
}

func (c *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := c.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			return nil, err
		}
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(float64(c.cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)
	return result, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Authenticate proxies Client.Authenticate through the breaker.
func (c *CircuitBreakerClient) Authenticate(ctx context.Context, username, password string) (AuthResult, error) {
	result, err := c.execute(func() (interface{}, error) {
		return c.client.Authenticate(ctx, username, password)
	})
	if err != nil {
		return AuthResult{}, err
	}
	return result.(AuthResult), nil
}

// PostCapabilities proxies Client.PostCapabilities through the breaker.
func (c *CircuitBreakerClient) PostCapabilities(ctx context.Context, caps Capabilities) error {
	_, err := c.execute(func() (interface{}, error) {
		return nil, c.client.PostCapabilities(ctx, caps)
	})
	return err
}

// PostProgress proxies Client.PostProgress through the breaker.
func (c *CircuitBreakerClient) PostProgress(ctx context.Context, session models.PlaybackSession) error {
	_, err := c.execute(func() (interface{}, error) {
		return nil, c.client.PostProgress(ctx, session)
	})
	return err
}

// PostStopped proxies Client.PostStopped through the breaker.
func (c *CircuitBreakerClient) PostStopped(ctx context.Context, session models.PlaybackSession) error {
	_, err := c.execute(func() (interface{}, error) {
		return nil, c.client.PostStopped(ctx, session)
	})
	return err
}

// GetItem proxies Client.GetItem through the breaker.
func (c *CircuitBreakerClient) GetItem(ctx context.Context, itemID string) (*models.MediaItem, error) {
	result, err := c.execute(func() (interface{}, error) {
		return c.client.GetItem(ctx, itemID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.MediaItem), nil
}

// GetEpisodes proxies Client.GetEpisodes through the breaker.
func (c *CircuitBreakerClient) GetEpisodes(ctx context.Context, seriesID string) ([]models.MediaItem, error) {
	result, err := c.execute(func() (interface{}, error) {
		return c.client.GetEpisodes(ctx, seriesID)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.MediaItem), nil
}

// GetNextEpisode proxies Client.GetNextEpisode through the breaker.
func (c *CircuitBreakerClient) GetNextEpisode(ctx context.Context, seriesID, currentItemID string) (*models.MediaItem, error) {
	result, err := c.execute(func() (interface{}, error) {
		return c.client.GetNextEpisode(ctx, seriesID, currentItemID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.MediaItem), nil
}

// GetPreviousEpisode proxies Client.GetPreviousEpisode through the breaker.
func (c *CircuitBreakerClient) GetPreviousEpisode(ctx context.Context, seriesID, currentItemID string) (*models.MediaItem, error) {
	result, err := c.execute(func() (interface{}, error) {
		return c.client.GetPreviousEpisode(ctx, seriesID, currentItemID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.MediaItem), nil
}
