// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

package playerlink

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmsr/castcore/internal/playerproto"
)

// newWiredClient builds a Client whose active connection is a real
// playerproto.Client over a net.Pipe, bypassing the supervisor and IPC
// dial so the forwarding and reconnect-signal behavior can be exercised
// without spawning a process.
func newWiredClient(t *testing.T) (*Client, net.Conn) {
	t.Helper()
	clientConn, serverConn := net.Pipe()
	t.Cleanup(func() { _ = clientConn.Close(); _ = serverConn.Close() })

	c := &Client{}
	c.current = playerproto.New(clientConn)
	return c, serverConn
}

func TestClient_ForwardingBeforeConnectFails(t *testing.T) {
	c := &Client{}
	ctx := context.Background()

	_, err := c.Get(ctx, "pause")
	assert.ErrorIs(t, err, playerproto.ErrPlayerDisconnected)
	assert.ErrorIs(t, c.Load(ctx, "http://example/x"), playerproto.ErrPlayerDisconnected)
	assert.ErrorIs(t, c.Set(ctx, "pause", true), playerproto.ErrPlayerDisconnected)
	assert.ErrorIs(t, c.Seek(ctx, 1, playerproto.SeekAbsolute), playerproto.ErrPlayerDisconnected)
	assert.ErrorIs(t, c.Stop(ctx), playerproto.ErrPlayerDisconnected)
	assert.ErrorIs(t, c.Unobserve(playerproto.SubscriptionHandle{}), playerproto.ErrPlayerDisconnected)

	_, _, err = c.Observe("pause")
	assert.ErrorIs(t, err, playerproto.ErrPlayerDisconnected)

	select {
	case <-c.Done():
	default:
		t.Fatal("Done() must already be closed before Connect")
	}

	_, ok := <-c.Events()
	assert.False(t, ok, "Events() must return a closed channel before Connect")
}

func TestClient_ForwardsLoadToActiveConnection(t *testing.T) {
	c, serverConn := newWiredClient(t)
	reader := bufio.NewReader(serverConn)

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background(), "http://example/movie.mkv") }()

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, "loadfile")
	assert.Contains(t, line, "http://example/movie.mkv")

	_, err = serverConn.Write([]byte(`{"request_id":1,"error":"success"}` + "\n"))
	require.NoError(t, err)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Load did not complete")
	}
}

func TestClient_DoneReflectsActiveConnection(t *testing.T) {
	c, serverConn := newWiredClient(t)

	select {
	case <-c.Done():
		t.Fatal("Done() fired before the connection dropped")
	default:
	}

	require.NoError(t, serverConn.Close())

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done() did not fire after the connection dropped")
	}
}

func TestClient_UnobserveStaleHandleAfterSwapIsSafe(t *testing.T) {
	c, _ := newWiredClient(t)

	// Swap in a second connection, simulating a reconnect after a crash.
	secondClient, secondServer := net.Pipe()
	t.Cleanup(func() { _ = secondClient.Close(); _ = secondServer.Close() })
	go func() { _, _ = bufio.NewReader(secondServer).ReadString('\n') }()
	c.mu.Lock()
	c.current = playerproto.New(secondClient)
	c.mu.Unlock()

	// A handle minted against the old, now-discarded client must not panic
	// or block when revoked against the new one.
	assert.NotPanics(t, func() {
		_ = c.Unobserve(playerproto.SubscriptionHandle{})
	})
}
