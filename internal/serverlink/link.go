// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverlink

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/metrics"
	"github.com/jmsr/castcore/internal/models"
)

// ErrServerDisconnected is returned when a keep-alive reply is attempted
// while no connection is up; the reconnect loop keeps retrying in the
// background regardless.
var ErrServerDisconnected = errors.New("serverlink: server disconnected")

const (
	readTimeout       = 60 * time.Second
	handshakeTimeout  = 10 * time.Second
)

// HeaderFunc builds the auth headers for a (re)connect attempt, evaluated
// fresh each time so a refreshed token is always picked up.
type HeaderFunc func() http.Header

// Link owns one websocket connection to the server's control endpoint, with
// automatic reconnect on any disconnect.
type Link struct {
	url      string
	headerFn HeaderFunc

	connMu sync.RWMutex
	conn   *websocket.Conn

	directives chan models.Directive

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New builds a Link for url, not yet connected.
func New(url string, headerFn HeaderFunc) *Link {
	return &Link{
		url:        url,
		headerFn:   headerFn,
		directives: make(chan models.Directive, 32),
		stop:       make(chan struct{}),
	}
}

// Directives is the stream of validated directives decoded from inbound
// frames.
func (l *Link) Directives() <-chan models.Directive {
	return l.directives
}

// Connected reports whether the websocket connection is currently up.
func (l *Link) Connected() bool {
	l.connMu.RLock()
	defer l.connMu.RUnlock()
	return l.conn != nil
}

// Run connects and then maintains the connection until ctx is cancelled or
// Close is called, reconnecting on every disconnect per reconnectDelay.
func (l *Link) Run(ctx context.Context) {
	l.wg.Add(1)
	defer l.wg.Done()

	attempt := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stop:
			return
		default:
		}

		metrics.ServerLinkReconnects.Inc()
		if err := l.connect(ctx); err != nil {
			logging.Warn().Err(err).Int("attempt", attempt).Msg("serverlink: connect failed")
			delay := reconnectDelay(attempt)
			metrics.ServerLinkReconnectBackoff.Set(delay.Seconds())
			attempt++
			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return
			case <-l.stop:
				return
			}
		}

		attempt = 0
		metrics.ServerLinkState.Set(1)
		l.readUntilDisconnect(ctx)
		metrics.ServerLinkState.Set(0)
	}
}

func (l *Link) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	var header http.Header
	if l.headerFn != nil {
		header = l.headerFn()
	}

	conn, resp, err := dialer.DialContext(ctx, l.url, header)
	if err != nil {
		return err
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	l.connMu.Lock()
	l.conn = conn
	l.connMu.Unlock()

	logging.Info().Str("url", l.url).Msg("serverlink: connected")
	return nil
}

func (l *Link) readUntilDisconnect(ctx context.Context) {
	for {
		l.connMu.RLock()
		conn := l.conn
		l.connMu.RUnlock()
		if conn == nil {
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				logging.Warn().Err(err).Msg("serverlink: read failed, will reconnect")
			}
			l.closeConn()
			return
		}

		l.handleFrame(data)
	}
}

func (l *Link) handleFrame(data []byte) {
	var msg wireMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logging.Warn().Err(err).Msg("serverlink: malformed frame, discarding")
		return
	}

	if msg.MessageType == messageTypeForceKeepAlive {
		if err := l.sendKeepAlive(); err != nil {
			logging.Warn().Err(err).Msg("serverlink: keep-alive reply failed")
		}
		return
	}

	directive, ok, err := decodeDirective(msg)
	if err != nil {
		logging.Warn().Err(err).Str("type", msg.MessageType).Msg("serverlink: discarding invalid directive")
		return
	}
	if !ok {
		return
	}

	select {
	case l.directives <- directive:
	default:
		logging.Warn().Str("type", msg.MessageType).Msg("serverlink: directive channel full, dropping oldest")
		select {
		case <-l.directives:
		default:
		}
		l.directives <- directive
	}
}

func (l *Link) sendKeepAlive() error {
	l.connMu.Lock()
	defer l.connMu.Unlock()
	if l.conn == nil {
		return ErrServerDisconnected
	}
	return l.conn.WriteJSON(wireMessage{MessageType: messageTypeKeepAlive})
}

func (l *Link) closeConn() {
	l.connMu.Lock()
	defer l.connMu.Unlock()
	if l.conn != nil {
		_ = l.conn.Close()
		l.conn = nil
	}
}

// Close stops the reconnect loop and closes any active connection.
func (l *Link) Close() error {
	l.stopOnce.Do(func() { close(l.stop) })
	l.closeConn()
	l.wg.Wait()
	return nil
}
