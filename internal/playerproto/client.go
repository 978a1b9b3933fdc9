// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package playerproto

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/jmsr/castcore/internal/ipc"
	"github.com/jmsr/castcore/internal/logging"
)

// Default operation-class timeout budgets.
const (
	DefaultTimeout = 5 * time.Second
	LoadTimeout    = 30 * time.Second
)

// SeekMode selects how seek's argument is interpreted.
type SeekMode string

const (
	SeekAbsolute SeekMode = "absolute"
	SeekRelative SeekMode = "relative"
)

// SubscriptionHandle identifies an active property observer so it can later
// be revoked with Unobserve.
type SubscriptionHandle struct {
	id   int64
	name string
}

// Client speaks the request/reply and event protocol over a connected
// duplex endpoint. One Client corresponds to one player process lifetime;
// a fresh process requires a fresh Client so that request and subscription
// ids reset along with it.
type Client struct {
	conn   io.ReadWriteCloser
	reader *ipc.LineReader
	writer *ipc.LineWriter

	mu         sync.Mutex
	pending    map[int64]chan reply
	subs       map[int64]chan Event
	nextReqID  int64
	nextSubID  int64
	closed     chan struct{}
	closeOnce  sync.Once
	closeErr   atomic.Value // error

	events chan Event
}

// New wraps conn and starts the background reader loop. The caller owns
// conn's lifecycle beyond Close.
func New(conn io.ReadWriteCloser) *Client {
	c := &Client{
		conn:    conn,
		reader:  ipc.NewLineReader(conn),
		writer:  ipc.NewLineWriter(conn),
		pending: make(map[int64]chan reply),
		subs:    make(map[int64]chan Event),
		closed:  make(chan struct{}),
		events:  make(chan Event, 64),
	}
	go c.readLoop()
	return c
}

// Events returns the general event bus: every unsolicited frame, including
// property-change events (also fanned out to their subscription channel).
func (c *Client) Events() <-chan Event {
	return c.events
}

// Done is closed once the channel has disconnected, for any reason.
func (c *Client) Done() <-chan struct{} {
	return c.closed
}

// Err returns the reason Done closed, once it has.
func (c *Client) Err() error {
	if v := c.closeErr.Load(); v != nil {
		return v.(error)
	}
	return nil
}

func (c *Client) readLoop() {
	defer c.shutdown(ErrPlayerDisconnected)
	for {
		line, err := c.reader.ReadLine()
		if err != nil {
			return
		}
		if len(line) == 0 {
			continue
		}

		var f inboundFrame
		if err := json.Unmarshal(line, &f); err != nil {
			ipc.LogDiscardedLine(line, err)
			continue
		}

		switch {
		case f.RequestID != nil:
			c.resolveRequest(*f.RequestID, reply{status: f.Error, data: f.Data})
		case f.Event != "":
			c.dispatchEvent(f)
		default:
			logging.Warn().Str("line", string(line)).Msg("playerproto: frame with neither request_id nor event")
		}
	}
}

func (c *Client) resolveRequest(id int64, r reply) {
	c.mu.Lock()
	ch, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()
	if ok {
		ch <- r
	}
}

func (c *Client) dispatchEvent(f inboundFrame) {
	ev := Event{Name: f.Event, Data: f.Data, Reason: f.Reason, Args: f.Args}
	if f.Event == "property-change" {
		ev.SubscriptionID = f.ID
		c.mu.Lock()
		sub, ok := c.subs[f.ID]
		c.mu.Unlock()
		if ok {
			nonBlockingSendLatest(sub, ev)
		}
	}
	nonBlockingSendLatest(c.events, ev)
}

// nonBlockingSendLatest drops the oldest buffered item to make room rather
// than block the reader when a consumer falls behind.
func nonBlockingSendLatest(ch chan Event, ev Event) {
	for {
		select {
		case ch <- ev:
			return
		default:
		}
		select {
		case <-ch:
		default:
			return
		}
	}
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.closeErr.Store(err)
		c.mu.Lock()
		for id, ch := range c.pending {
			close(ch)
			delete(c.pending, id)
		}
		c.mu.Unlock()
		close(c.closed)
	})
}

// Close terminates the underlying connection and unblocks every pending
// operation with ErrPlayerDisconnected.
func (c *Client) Close() error {
	err := c.conn.Close()
	c.shutdown(ErrPlayerDisconnected)
	return err
}

func (c *Client) send(ctx context.Context, cmd []interface{}, timeout time.Duration) (reply, error) {
	select {
	case <-c.closed:
		return reply{}, ErrPlayerDisconnected
	default:
	}

	c.mu.Lock()
	c.nextReqID++
	id := c.nextReqID
	ch := make(chan reply, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	frame := outboundCommand{Command: cmd, RequestID: id}
	line, err := json.Marshal(frame)
	if err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return reply{}, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}

	if err := c.writer.WriteLine(line); err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return reply{}, ErrPlayerDisconnected
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r, ok := <-ch:
		if !ok {
			return reply{}, ErrPlayerDisconnected
		}
		if !r.ok() {
			return reply{}, &PlayerError{Code: r.status}
		}
		return r, nil
	case <-timer.C:
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return reply{}, ErrTimeout
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return reply{}, ctx.Err()
	case <-c.closed:
		return reply{}, ErrPlayerDisconnected
	}
}

// Load instructs the player to load the given URL.
func (c *Client) Load(ctx context.Context, url string) error {
	_, err := c.send(ctx, []interface{}{"loadfile", url}, LoadTimeout)
	return err
}

// Set assigns a named property.
func (c *Client) Set(ctx context.Context, name string, value interface{}) error {
	_, err := c.send(ctx, []interface{}{"set_property", name, value}, DefaultTimeout)
	return err
}

// Get retrieves a named property's raw JSON value.
func (c *Client) Get(ctx context.Context, name string) (json.RawMessage, error) {
	r, err := c.send(ctx, []interface{}{"get_property", name}, DefaultTimeout)
	if err != nil {
		return nil, err
	}
	return r.data, nil
}

// Seek moves playback position, absolute or relative.
func (c *Client) Seek(ctx context.Context, seconds float64, mode SeekMode) error {
	_, err := c.send(ctx, []interface{}{"seek", seconds, string(mode)}, DefaultTimeout)
	return err
}

// Stop halts current playback but keeps the process alive.
func (c *Client) Stop(ctx context.Context) error {
	_, err := c.send(ctx, []interface{}{"stop"}, DefaultTimeout)
	return err
}

// Quit terminates the player process gracefully.
func (c *Client) Quit(ctx context.Context) error {
	_, err := c.send(ctx, []interface{}{"quit"}, DefaultTimeout)
	return err
}

// Observe registers a property observer, fire-and-forget per wire protocol,
// and returns a handle for later revocation. The subscription channel is
// registered before the command is written so no early event can be missed.
func (c *Client) Observe(name string) (SubscriptionHandle, <-chan Event, error) {
	select {
	case <-c.closed:
		return SubscriptionHandle{}, nil, ErrPlayerDisconnected
	default:
	}

	c.mu.Lock()
	c.nextSubID++
	id := c.nextSubID
	sub := make(chan Event, 1)
	c.subs[id] = sub
	c.mu.Unlock()

	cmd := outboundCommand{Command: []interface{}{"observe_property", id, name}}
	line, err := json.Marshal(cmd)
	if err != nil {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
		return SubscriptionHandle{}, nil, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}
	if err := c.writer.WriteLine(line); err != nil {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
		return SubscriptionHandle{}, nil, ErrPlayerDisconnected
	}

	return SubscriptionHandle{id: id, name: name}, sub, nil
}

// Unobserve revokes a previously registered property observer.
func (c *Client) Unobserve(handle SubscriptionHandle) error {
	c.mu.Lock()
	ch, ok := c.subs[handle.id]
	if ok {
		delete(c.subs, handle.id)
	}
	c.mu.Unlock()
	if ok {
		close(ch)
	}

	cmd := outboundCommand{Command: []interface{}{"unobserve_property", handle.id}}
	line, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}
	return c.writer.WriteLine(line)
}
