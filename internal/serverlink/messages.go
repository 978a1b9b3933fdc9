// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package serverlink

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/jmsr/castcore/internal/models"
)

var validate = validator.New()

// wireMessage is the envelope every inbound websocket frame shares.
type wireMessage struct {
	MessageType string          `json:"MessageType"`
	Data        json.RawMessage `json:"Data,omitempty"`
}

const (
	messageTypePlay            = "Play"
	messageTypePlaystate       = "Playstate"
	messageTypeGeneralCommand  = "GeneralCommand"
	messageTypeKeepAlive       = "KeepAlive"
	messageTypeForceKeepAlive  = "ForceKeepAlive"
)

// decodeDirective turns a wire message's MessageType/Data into a validated
// Directive. It returns (_, false, nil) for recognized non-directive
// message types (KeepAlive, ForceKeepAlive) that the caller should handle
// separately, and an error only for a directive-shaped message that fails
// to parse or validate.
func decodeDirective(msg wireMessage) (models.Directive, bool, error) {
	switch msg.MessageType {
	case messageTypePlay:
		var d models.PlayDirective
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return models.Directive{}, false, fmt.Errorf("serverlink: decode Play: %w", err)
		}
		if err := validate.Struct(d); err != nil {
			return models.Directive{}, false, fmt.Errorf("serverlink: validate Play: %w", err)
		}
		return models.Directive{Kind: models.DirectivePlay, Play: &d}, true, nil

	case messageTypePlaystate:
		var d models.PlaystateDirective
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return models.Directive{}, false, fmt.Errorf("serverlink: decode Playstate: %w", err)
		}
		if err := validate.Struct(d); err != nil {
			return models.Directive{}, false, fmt.Errorf("serverlink: validate Playstate: %w", err)
		}
		return models.Directive{Kind: models.DirectivePlaystate, Playstate: &d}, true, nil

	case messageTypeGeneralCommand:
		var d models.GeneralCommandDirective
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return models.Directive{}, false, fmt.Errorf("serverlink: decode GeneralCommand: %w", err)
		}
		if err := validate.Struct(d); err != nil {
			return models.Directive{}, false, fmt.Errorf("serverlink: validate GeneralCommand: %w", err)
		}
		return models.Directive{Kind: models.DirectiveGeneralCommand, GeneralCommand: &d}, true, nil

	case messageTypeKeepAlive, messageTypeForceKeepAlive:
		return models.Directive{}, false, nil

	default:
		return models.Directive{}, false, nil
	}
}
