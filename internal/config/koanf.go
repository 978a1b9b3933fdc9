// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where a config file is searched for,
// in priority order. The first one found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/castcore/config.yaml",
	"/etc/castcore/config.yml",
}

// ConfigPathEnvVar overrides the config file search with an exact path.
const ConfigPathEnvVar = "CASTCORE_CONFIG_PATH"

const envPrefix = "CASTCORE_"

// DefaultConfig returns a Config with every field set to its production
// default. File and environment layers are applied on top of this.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			AppName:    "castcore",
			AppVersion: "dev",
		},
		Player: PlayerConfig{
			AggressiveCleanup: false,
			AutoRespawn:       true,
			TerminateGrace:    3 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		ProgressInterval: 5 * time.Second,
	}
}

// LoadWithKoanf loads the layered configuration (defaults, file, env),
// unmarshals it, and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	if err := processAdditionalArgs(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile returns the path LoadWithKoanf would read its file layer
// from, or "" if none of DefaultConfigPaths exist and ConfigPathEnvVar is
// unset. Used by callers that want to watch that same file for changes.
func FindConfigFile() string {
	return findConfigFile()
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps CASTCORE_SERVER_URL -> server.url and
// CASTCORE_PLAYER_AGGRESSIVE_CLEANUP -> player.aggressive_cleanup: the
// underscore after a section name becomes the key separator, later ones are
// kept as part of the field name. Keys outside a section
// (CASTCORE_PROGRESS_INTERVAL) keep all their underscores.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	for _, section := range []string{"server", "player", "logging"} {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// processAdditionalArgs splits player.additional_args from a
// comma-separated environment string into a slice, since env vars never
// arrive as native slices.
func processAdditionalArgs(k *koanf.Koanf) error {
	const path = "player.additional_args"
	val := k.Get(path)
	str, ok := val.(string)
	if !ok || str == "" {
		return nil
	}
	parts := strings.Split(str, ",")
	args := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			args = append(args, p)
		}
	}
	if err := k.Set(path, args); err != nil {
		return fmt.Errorf("config: set %s: %w", path, err)
	}
	return nil
}

// WatchConfigFile invokes callback whenever the config file at path
// changes on disk, using the file provider's built-in watch.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
