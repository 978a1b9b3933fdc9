// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverapi

import "context"

// AuthResult is the server's response to a successful authentication.
type AuthResult struct {
	AccessToken string `json:"AccessToken"`
	ServerID    string `json:"ServerId"`
	User        struct {
		ID   string `json:"Id"`
		Name string `json:"Name"`
	} `json:"User"`
}

type authenticateRequest struct {
	Username string `json:"Username"`
	Pw       string `json:"Pw"`
}

// Authenticate exchanges a username and password for an access token and
// installs it on the Client so subsequent requests are authorized.
func (c *Client) Authenticate(ctx context.Context, username, password string) (AuthResult, error) {
	var result AuthResult
	err := c.doJSON(ctx, "authenticate", "POST", "/Users/AuthenticateByName", authenticateRequest{
		Username: username,
		Pw:       password,
	}, &result)
	if err != nil {
		return AuthResult{}, err
	}

	c.SetSession(result.AccessToken, result.User.ID)
	return result, nil
}
