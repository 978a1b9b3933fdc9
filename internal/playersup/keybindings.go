// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package playersup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmsr/castcore/internal/logging"
)

// KeyBindings names the two user-configurable key chords bound to the
// custom client-message tokens the player emits back over IPC.
type KeyBindings struct {
	Next     string
	Previous string
}

// DefaultKeyBindings matches the baseline chords named in configuration.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{Next: "Shift+N", Previous: "Shift+P"}
}

const (
	nextMessageToken = "jmsr-next"
	prevMessageToken = "jmsr-prev"
)

// WriteDefaultKeyBindings writes an input-config file mapping bindings to
// the custom tokens into configDir/input.conf, unless one already exists —
// an existing file is assumed to be user-customized and is left untouched.
func WriteDefaultKeyBindings(configDir string, bindings KeyBindings) error {
	path := filepath.Join(configDir, "input.conf")
	if _, err := os.Stat(path); err == nil {
		logging.Debug().Str("path", path).Msg("playersup: keybinding file already exists, leaving untouched")
		return nil
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("playersup: create config dir: %w", err)
	}

	contents := fmt.Sprintf(
		"%s script-message %s\n%s script-message %s\n",
		bindings.Next, nextMessageToken,
		bindings.Previous, prevMessageToken,
	)

	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("playersup: write keybinding file: %w", err)
	}

	logging.Info().Str("path", path).Msg("playersup: wrote default keybinding file")
	return nil
}
