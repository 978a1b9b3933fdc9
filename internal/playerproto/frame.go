// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package playerproto

import "github.com/goccy/go-json"

// outboundCommand is the wire shape of a request frame.
type outboundCommand struct {
	Command   []interface{} `json:"command"`
	RequestID int64         `json:"request_id,omitempty"`
}

// inboundFrame is parsed loosely first so the reader can dispatch on shape
// before committing to a reply or an event decode.
type inboundFrame struct {
	RequestID *int64          `json:"request_id"`
	Error     string          `json:"error"`
	Data      json.RawMessage `json:"data"`
	Event     string          `json:"event"`
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Reason    string          `json:"reason"`
	Args      []string        `json:"args"`
}

// reply is what a pending request is resolved with.
type reply struct {
	status string
	data   json.RawMessage
}

func (r reply) ok() bool {
	return r.status == "" || r.status == "success"
}

// Event is an unsolicited message from the player: a property-change fan-out
// or a generic client message (e.g. a custom keybinding token).
type Event struct {
	Name string
	// SubscriptionID is set for property-change events, zero otherwise.
	SubscriptionID int64
	Data           json.RawMessage
	// Reason is set for end-file events (eof, stop, quit, error, redirect).
	Reason string
	// Args carries client-message tokens.
	Args []string
}
