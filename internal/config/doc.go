// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

/*
Package config loads and validates the receiver's runtime configuration.

# Configuration Sources

Three layers are merged in order of increasing priority:

  - Struct defaults (DefaultConfig)
  - An optional YAML config file (config.yaml, searched in the working
    directory and /etc/castcore/, or pointed to by CASTCORE_CONFIG_PATH)
  - Environment variables, prefixed CASTCORE_ and underscore-delimited,
    e.g. CASTCORE_SERVER_URL, CASTCORE_PLAYER_AGGRESSIVE_CLEANUP

# Hot reload

WatchConfigFile uses the file provider's built-in watch to invoke a
callback whenever the config file changes on disk, so a display-name change
or new player spawn settings can be picked up without restarting the
process. The default keybinding file is written at most once and is not
rewritten on reload.

# Validation

Config.Validate runs struct-tag validation (go-playground/validator) plus
the few cross-field checks that cannot be expressed as tags.
*/
package config
