// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

// Package playerlink owns the reconnecting player connection: a single
// long-lived handle the orchestrator drives, backed by a playerproto.Client
// that is discarded and rebuilt every time the underlying player process
// dies and the supervisor respawns it.
package playerlink

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/jmsr/castcore/internal/ipc"
	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/metrics"
	"github.com/jmsr/castcore/internal/playerproto"
	"github.com/jmsr/castcore/internal/playersup"
)

// redialBackoff separates failed reconnect attempts, giving the supervisor
// time to finish spawning the replacement process before the next dial.
const redialBackoff = 2 * time.Second

// ErrNotConnected is returned by forwarding methods called before Connect
// has ever succeeded.
var ErrNotConnected = errors.New("playerlink: not connected")

// Client is orchestrator.PlayerClient backed by a player process that may
// crash and respawn any number of times over the receiver's lifetime. Every
// respawn produces a fresh playerproto.Client, per the protocol's own
// contract that a new process resets every request id and subscription;
// Client swaps the active one in transparently, but callers observing
// Done() must re-subscribe after it fires, exactly as they would against a
// bare playerproto.Client after a reconnect.
type Client struct {
	sup      *playersup.Supervisor
	endpoint ipc.Endpoint

	mu      sync.RWMutex
	current *playerproto.Client
}

// New builds a Client bound to sup and endpoint. Connect must be called
// once before the client is usable.
func New(sup *playersup.Supervisor, endpoint ipc.Endpoint) *Client {
	return &Client{sup: sup, endpoint: endpoint}
}

// Connect ensures the player process is running and performs the initial
// protocol handshake.
func (c *Client) Connect(ctx context.Context) error {
	pc, err := c.dial(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.current = pc
	c.mu.Unlock()
	metrics.PlayerLinkState.Set(1)
	return nil
}

func (c *Client) dial(ctx context.Context) (*playerproto.Client, error) {
	if err := c.sup.EnsureStarted(ctx, c.endpoint); err != nil {
		return nil, err
	}
	conn, err := ipc.Dial(ctx, c.endpoint, ipc.DefaultDialConfig())
	if err != nil {
		return nil, err
	}
	return playerproto.New(conn), nil
}

func (c *Client) get() *playerproto.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Run watches the active connection for disconnect and redials until ctx is
// cancelled, swapping in each fresh client as it is established. It returns
// ErrNotConnected if Connect has never succeeded, and otherwise only on ctx
// cancellation; after a respawn refusal it waits for cancellation instead
// of returning.
func (c *Client) Run(ctx context.Context) error {
	client := c.get()
	if client == nil {
		return ErrNotConnected
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-client.Done():
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		metrics.PlayerLinkState.Set(0)
		logging.Warn().Err(client.Err()).Msg("playerlink: player connection lost, reconnecting")

		pc, err := c.redialUntilConnected(ctx)
		if err != nil {
			return err
		}

		c.mu.Lock()
		c.current = pc
		c.mu.Unlock()
		client = pc

		metrics.PlayerLinkState.Set(1)
		logging.Info().Msg("playerlink: player reconnected")
	}
}

// redialUntilConnected retries the dial until it succeeds or ctx ends. A
// respawn refusal (auto-respawn disabled) is not retried: it blocks on ctx
// instead of spinning, since no amount of retrying changes the outcome
// until an operator restarts the process by hand.
func (c *Client) redialUntilConnected(ctx context.Context) (*playerproto.Client, error) {
	for {
		metrics.PlayerLinkReconnects.Inc()
		pc, err := c.dial(ctx)
		if err == nil {
			return pc, nil
		}
		if errors.Is(err, playersup.ErrRespawnDisabled) {
			logging.Warn().Msg("playerlink: auto-respawn disabled, player will stay down until manually restarted")
			<-ctx.Done()
			return nil, ctx.Err()
		}

		logging.Warn().Err(err).Msg("playerlink: reconnect attempt failed, retrying")
		select {
		case <-time.After(redialBackoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Done reports the active connection's disconnect signal. Callers must
// re-fetch it after it fires, since it names one specific underlying
// client, not the reconnecting Client as a whole.
func (c *Client) Done() <-chan struct{} {
	client := c.get()
	if client == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return client.Done()
}

// Load instructs the active player to load the given URL.
func (c *Client) Load(ctx context.Context, url string) error {
	client := c.get()
	if client == nil {
		return playerproto.ErrPlayerDisconnected
	}
	return client.Load(ctx, url)
}

// Set assigns a named property on the active player.
func (c *Client) Set(ctx context.Context, name string, value interface{}) error {
	client := c.get()
	if client == nil {
		return playerproto.ErrPlayerDisconnected
	}
	return client.Set(ctx, name, value)
}

// Get retrieves a named property's raw JSON value from the active player.
func (c *Client) Get(ctx context.Context, name string) (json.RawMessage, error) {
	client := c.get()
	if client == nil {
		return nil, playerproto.ErrPlayerDisconnected
	}
	return client.Get(ctx, name)
}

// Seek moves playback position on the active player.
func (c *Client) Seek(ctx context.Context, seconds float64, mode playerproto.SeekMode) error {
	client := c.get()
	if client == nil {
		return playerproto.ErrPlayerDisconnected
	}
	return client.Seek(ctx, seconds, mode)
}

// Stop halts current playback but leaves the process alive.
func (c *Client) Stop(ctx context.Context) error {
	client := c.get()
	if client == nil {
		return playerproto.ErrPlayerDisconnected
	}
	return client.Stop(ctx)
}

// Observe registers a property observer on the active player.
func (c *Client) Observe(name string) (playerproto.SubscriptionHandle, <-chan playerproto.Event, error) {
	client := c.get()
	if client == nil {
		return playerproto.SubscriptionHandle{}, nil, playerproto.ErrPlayerDisconnected
	}
	return client.Observe(name)
}

// Unobserve revokes a previously registered property observer on the
// active player. A stale handle from a client that has already been
// replaced is a no-op: the new process never knew about it.
func (c *Client) Unobserve(handle playerproto.SubscriptionHandle) error {
	client := c.get()
	if client == nil {
		return playerproto.ErrPlayerDisconnected
	}
	return client.Unobserve(handle)
}

// Events returns the active player's general event bus.
func (c *Client) Events() <-chan playerproto.Event {
	client := c.get()
	if client == nil {
		closed := make(chan playerproto.Event)
		close(closed)
		return closed
	}
	return client.Events()
}
