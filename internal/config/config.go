// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ServerConfig identifies the Jellyfin server this receiver presents itself
// to and the device identity carried on every request.
type ServerConfig struct {
	// URL is the server's base address, e.g. https://jellyfin.example.com.
	URL string `koanf:"url" validate:"required,url"`
	// Username/Password, when Username is set, authenticate at every
	// startup; the resulting access token is held in memory for the life
	// of the process and is not stored.
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	// DeviceID is generated once and persisted; a config-supplied value
	// overrides that, mainly useful for reproducible test fixtures.
	DeviceID   string `koanf:"device_id"`
	DeviceName string `koanf:"device_name"`
	AppName    string `koanf:"app_name"`
	AppVersion string `koanf:"app_version"`
}

// PlayerConfig controls how the external media player is located, spawned,
// and kept alive.
type PlayerConfig struct {
	// ExplicitPath, if set, is tried before any platform search.
	ExplicitPath string `koanf:"path"`
	// AdditionalArgs are appended to the player's mandatory baseline args.
	AdditionalArgs []string `koanf:"additional_args"`
	// KeyBindingConfigDir is where the default keybinding file is written
	// on first start; empty disables writing one.
	KeyBindingConfigDir string `koanf:"keybinding_config_dir"`
	// AggressiveCleanup terminates the player process on every explicit
	// stop rather than keeping it idle for reuse by the next directive.
	AggressiveCleanup bool `koanf:"aggressive_cleanup"`
	// AutoRespawn spawns a fresh process on the next play directive after
	// the previous one exited unexpectedly.
	AutoRespawn bool `koanf:"auto_respawn"`
	// TerminateGrace bounds how long Stop waits between a graceful
	// terminate and a forceful kill.
	TerminateGrace time.Duration `koanf:"terminate_grace"`
}

// Config is the receiver's complete runtime configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server" validate:"required"`
	Player  PlayerConfig  `koanf:"player"`
	Logging LoggingConfig `koanf:"logging"`

	// ProgressInterval throttles time-pos driven progress reports sent to
	// the server.
	ProgressInterval time.Duration `koanf:"progress_interval" validate:"required"`
}

// LoggingConfig mirrors internal/logging.Config, kept separate so this
// package never imports internal/logging (avoiding an import cycle with
// anything logging-adjacent that might one day read config back).
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error fatal panic"`
	Format string `koanf:"format" validate:"required,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

var validate = validator.New()

// Validate checks the configuration for internal consistency beyond what
// struct tags express, and runs the struct-tag validations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.ProgressInterval <= 0 {
		return fmt.Errorf("config: progress_interval must be positive")
	}
	return nil
}
