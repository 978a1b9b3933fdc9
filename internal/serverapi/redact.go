// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverapi

import "net/url"

// redactedQueryParams lists the query parameter names whose values are
// replaced with a fixed placeholder before a URL is logged. The actual
// request is always made against the unredacted URL.
var redactedQueryParams = map[string]bool{
	"api_key":      true,
	"apikey":       true,
	"token":        true,
	"access_token": true,
	"X-Emby-Token": true,
}

const redactedPlaceholder = "***"

// RedactURL returns rawURL with every recognized token query parameter's
// value replaced by a fixed placeholder. Malformed input is returned as-is
// since there is nothing structured left to redact.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	q := u.Query()
	changed := false
	for name := range q {
		if redactedQueryParams[name] {
			q.Set(name, redactedPlaceholder)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}
