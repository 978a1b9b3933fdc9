// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverapi

import "context"

// Capabilities declares what the session accepts from the server: the
// playable general commands and the playstate commands this receiver
// implements, so the server only routes directives it knows will be acted
// on.
type Capabilities struct {
	PlayableMediaTypes    []string `json:"PlayableMediaTypes"`
	SupportedCommands     []string `json:"SupportedCommands"`
	SupportsMediaControl  bool     `json:"SupportsMediaControl"`
}

// DefaultCapabilities matches the set of directives the orchestrator
// actually handles.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		PlayableMediaTypes:   []string{"Video", "Audio"},
		SupportsMediaControl: true,
		SupportedCommands: []string{
			string(GeneralCommandSetVolume),
			string(GeneralCommandSetAudioStreamIndex),
			string(GeneralCommandSetSubtitleStreamIndex),
			string(GeneralCommandToggleMute),
			string(GeneralCommandMute),
			string(GeneralCommandUnmute),
			string(GeneralCommandDisplayMessage),
		},
	}
}

// The command-name constants below mirror models.GeneralCommandName without
// importing models, keeping serverapi's wire-shape concerns decoupled from
// the orchestrator's directive types.
const (
	GeneralCommandSetVolume              = "SetVolume"
	GeneralCommandSetAudioStreamIndex    = "SetAudioStreamIndex"
	GeneralCommandSetSubtitleStreamIndex = "SetSubtitleStreamIndex"
	GeneralCommandToggleMute             = "ToggleMute"
	GeneralCommandMute                   = "Mute"
	GeneralCommandUnmute                 = "Unmute"
	GeneralCommandDisplayMessage         = "DisplayMessage"
)

// PostCapabilities registers this session's capabilities with the server.
// Must be re-posted whenever the device display name changes.
func (c *Client) PostCapabilities(ctx context.Context, caps Capabilities) error {
	return c.doJSON(ctx, "post_capabilities", "POST", "/Sessions/Capabilities/Full", caps, nil)
}
