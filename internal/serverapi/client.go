// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/metrics"
)

// DeviceIdentity is the device-identity portion of every authenticated
// request: a stable id generated once at first launch, a user-configurable
// display name, and the application's own name and version.
type DeviceIdentity struct {
	ID         string
	Name       string
	AppName    string
	AppVersion string
}

// DefaultDeviceName is used until the user configures a display name.
const DefaultDeviceName = "JMSR"

// Client is a typed wrapper over the server's HTTP surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
	identity   DeviceIdentity

	mu     sync.RWMutex
	token  string
	userID string
}

// NewClient builds a Client against baseURL using identity for every
// request's auth header. A zero-value httpClient argument selects a
// 10-second default request timeout.
func NewClient(baseURL string, identity DeviceIdentity, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if identity.Name == "" {
		identity.Name = DefaultDeviceName
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		identity:   identity,
	}
}

// SetSession installs the token and user id obtained from Authenticate (or
// restored from a persisted server session) onto subsequent requests.
func (c *Client) SetSession(token, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.userID = userID
}

// SetDisplayName updates the device display name sent on every request.
// Per server convention, a changed display name requires re-registering
// capabilities; the caller is responsible for calling PostCapabilities
// again.
func (c *Client) SetDisplayName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity.Name = name
}

func (c *Client) userIDLocked() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Client) authHeader(req *http.Request) {
	c.mu.RLock()
	token, name := c.token, c.identity.Name
	c.mu.RUnlock()

	req.Header.Set("X-Emby-Client", c.identity.AppName)
	req.Header.Set("X-Emby-Device-Name", name)
	req.Header.Set("X-Emby-Device-Id", c.identity.ID)
	req.Header.Set("X-Emby-Client-Version", c.identity.AppVersion)
	if token != "" {
		req.Header.Set("X-Emby-Token", token)
	}
	req.Header.Set("Accept", "application/json")
}

// AuthHeader exposes the same device-identity and bearer-token headers used
// for HTTP requests, for callers (the websocket control link) that must
// authenticate a non-HTTP-client connection the same way.
func (c *Client) AuthHeader() http.Header {
	c.mu.RLock()
	token, name := c.token, c.identity.Name
	c.mu.RUnlock()

	h := http.Header{}
	h.Set("X-Emby-Client", c.identity.AppName)
	h.Set("X-Emby-Device-Name", name)
	h.Set("X-Emby-Device-Id", c.identity.ID)
	h.Set("X-Emby-Client-Version", c.identity.AppVersion)
	if token != "" {
		h.Set("X-Emby-Token", token)
	}
	return h
}

// UserID returns the authenticated user id installed by SetSession, or
// empty if no session has been established yet.
func (c *Client) UserID() string {
	return c.userIDLocked()
}

// Token returns the access token installed by SetSession, or empty if no
// session has been established yet.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, operation, method, path string, body interface{}) (*http.Response, error) {
	start := time.Now()
	defer func() {
		metrics.ServerAPIRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	fullURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("serverapi: encode request body: %w", err)
		}
		reader = strings.NewReader(string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("serverapi: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authHeader(req)

	logging.Debug().Str("method", method).Str("url", RedactURL(fullURL)).Msg("serverapi: request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// doJSON performs the request and, on a 2xx response, decodes the body into
// out (which may be nil for no-content responses). Non-2xx yields HttpError.
func (c *Client) doJSON(ctx context.Context, operation, method, path string, body, out interface{}) error {
	resp, err := c.do(ctx, operation, method, path, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return &HttpError{Status: resp.StatusCode, BodyExcerpt: excerpt(raw)}
	}
	if out == nil {
		return nil
	}
	if resp.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("serverapi: decode response: %w", err)
	}
	return nil
}
