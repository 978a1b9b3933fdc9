// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverapi

import "fmt"

// HttpError reports a non-2xx response from the server, carrying a short
// excerpt of the body for diagnostics without risking unbounded log lines.
type HttpError struct {
	Status     int
	BodyExcerpt string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("serverapi: http status %d: %s", e.Status, e.BodyExcerpt)
}

const bodyExcerptLimit = 512

func excerpt(body []byte) string {
	if len(body) <= bodyExcerptLimit {
		return string(body)
	}
	return string(body[:bodyExcerptLimit]) + "..."
}
