// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

// PlaystateCommand enumerates the Playstate directive's Command field.
type PlaystateCommand string

const (
	PlaystateCommandPause         PlaystateCommand = "Pause"
	PlaystateCommandUnpause       PlaystateCommand = "Unpause"
	PlaystateCommandPlayPause     PlaystateCommand = "PlayPause"
	PlaystateCommandStop          PlaystateCommand = "Stop"
	PlaystateCommandSeek          PlaystateCommand = "Seek"
	PlaystateCommandNextTrack     PlaystateCommand = "NextTrack"
	PlaystateCommandPreviousTrack PlaystateCommand = "PreviousTrack"
)

// GeneralCommandName enumerates the GeneralCommand directive's Name field.
type GeneralCommandName string

const (
	GeneralCommandSetVolume             GeneralCommandName = "SetVolume"
	GeneralCommandSetAudioStreamIndex   GeneralCommandName = "SetAudioStreamIndex"
	GeneralCommandSetSubtitleStreamIndex GeneralCommandName = "SetSubtitleStreamIndex"
	GeneralCommandToggleMute            GeneralCommandName = "ToggleMute"
	GeneralCommandMute                  GeneralCommandName = "Mute"
	GeneralCommandUnmute                GeneralCommandName = "Unmute"
	GeneralCommandDisplayMessage        GeneralCommandName = "DisplayMessage"
)

// PlayDirective asks the core to begin (or replace) playback of one or more
// queued items. Only the first item is acted on; additional entries describe
// a server-side queue the core does not manage directly.
type PlayDirective struct {
	ItemIDs             []string `json:"ItemIds" validate:"required,min=1"`
	StartPositionTicks  int64    `json:"StartPositionTicks"`
	AudioStreamIndex    *int     `json:"AudioStreamIndex,omitempty"`
	SubtitleStreamIndex *int     `json:"SubtitleStreamIndex,omitempty"`
	MediaSourceID       string   `json:"MediaSourceId,omitempty"`
}

// PlaystateDirective asks the core to apply a transport-control command to
// the current playback session.
type PlaystateDirective struct {
	Command      PlaystateCommand `json:"Command" validate:"required"`
	SeekPositionTicks int64        `json:"SeekPositionTicks,omitempty"`
}

// GeneralCommandDirective asks the core to apply a miscellaneous control
// command, most commonly a volume or track change.
type GeneralCommandDirective struct {
	Name      GeneralCommandName `json:"Name" validate:"required"`
	Arguments map[string]string  `json:"Arguments,omitempty"`
}

// Directive is the tagged union of everything the server control link can
// deliver. Exactly one of Play, Playstate, or GeneralCommand is populated;
// Kind says which.
type Directive struct {
	Kind           DirectiveKind
	Play           *PlayDirective
	Playstate      *PlaystateDirective
	GeneralCommand *GeneralCommandDirective
}

// DirectiveKind discriminates the Directive union.
type DirectiveKind int

const (
	DirectiveUnknown DirectiveKind = iota
	DirectivePlay
	DirectivePlaystate
	DirectiveGeneralCommand
)

// ServerSession is the authenticated identity the core presents to the
// server: who it is, which device, and the token that proves it.
type ServerSession struct {
	BaseURL        string
	UserID         string
	DeviceID       string
	DeviceName     string
	AccessToken    string
	WebSocketURL   string
}
