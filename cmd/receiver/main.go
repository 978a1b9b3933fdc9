// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

// Command receiver runs the cast receiver: a background process that
// presents as a remotely controllable playback device to a Jellyfin
// server, driving a local media player process over a duplex IPC channel.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmsr/castcore/internal/config"
	"github.com/jmsr/castcore/internal/ipc"
	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/models"
	"github.com/jmsr/castcore/internal/notify"
	"github.com/jmsr/castcore/internal/orchestrator"
	"github.com/jmsr/castcore/internal/playerlink"
	"github.com/jmsr/castcore/internal/playersup"
	"github.com/jmsr/castcore/internal/prefs"
	"github.com/jmsr/castcore/internal/serverapi"
	"github.com/jmsr/castcore/internal/serverlink"
	"github.com/jmsr/castcore/internal/supervisor"
	"github.com/jmsr/castcore/internal/supervisor/services"
)

// metricsAddr is where the Prometheus text endpoint is served, local
// diagnostics only, never exposed off-box by this process.
const metricsAddr = "127.0.0.1:9863"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		fmt.Fprintf(os.Stderr, "castcore: config: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("castcore: fatal startup error")
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dataDir := playerDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	deviceID := cfg.Server.DeviceID
	if deviceID == "" {
		idPath := filepath.Join(dataDir, "device_id")
		if b, err := os.ReadFile(idPath); err == nil && strings.TrimSpace(string(b)) != "" {
			deviceID = strings.TrimSpace(string(b))
		} else {
			deviceID = uuid.NewString()
			if err := os.WriteFile(idPath, []byte(deviceID), 0o600); err != nil {
				logging.Warn().Err(err).Msg("castcore: could not persist device id")
			}
		}
	}
	displayName := cfg.Server.DeviceName
	if displayName == "" {
		displayName = serverapi.DefaultDeviceName
	}

	apiClient := serverapi.NewClient(cfg.Server.URL, serverapi.DeviceIdentity{
		ID:         deviceID,
		Name:       displayName,
		AppName:    cfg.Server.AppName,
		AppVersion: cfg.Server.AppVersion,
	}, nil)

	if cfg.Server.Username != "" {
		authCtx, authCancel := context.WithTimeout(ctx, 10*time.Second)
		_, err := apiClient.Authenticate(authCtx, cfg.Server.Username, cfg.Server.Password)
		authCancel()
		if err != nil {
			return fmt.Errorf("authenticate: %w", err)
		}
	}

	if err := apiClient.PostCapabilities(ctx, serverapi.DefaultCapabilities()); err != nil {
		logging.Warn().Err(err).Msg("castcore: initial capabilities post failed, link will retry after connect")
	}

	wsURL, err := deviceControlURL(cfg.Server.URL, deviceID)
	if err != nil {
		return fmt.Errorf("build websocket url: %w", err)
	}
	link := serverlink.New(wsURL, apiClient.AuthHeader)

	badgerOpts := badger.DefaultOptions(filepath.Join(dataDir, "prefs"))
	badgerOpts.Logger = nil
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return fmt.Errorf("open preference store: %w", err)
	}
	defer db.Close()
	prefStore := prefs.New(db)

	noticeBus := notify.New()
	defer noticeBus.Close()

	playerSup := playersup.NewSupervisor(playersup.Config{
		ExplicitPath:        cfg.Player.ExplicitPath,
		AdditionalArgs:      cfg.Player.AdditionalArgs,
		KeyBindingConfigDir: cfg.Player.KeyBindingConfigDir,
		AggressiveCleanup:   cfg.Player.AggressiveCleanup,
		AutoRespawn:         cfg.Player.AutoRespawn,
		TerminateGrace:      cfg.Player.TerminateGrace,
	})
	endpoint := ipc.Endpoint{Name: fmt.Sprintf("castcore-%d.sock", os.Getpid())}
	playerAdapter := &playerSupervisorAdapter{sup: playerSup, endpoint: endpoint}

	playerClient := playerlink.New(playerSup, endpoint)
	if err := playerClient.Connect(ctx); err != nil {
		return fmt.Errorf("start player: %w", err)
	}

	if configPath := config.FindConfigFile(); configPath != "" {
		watchConfigFile(configPath, apiClient, playerSup, displayName)
	}

	server := models.ServerSession{
		BaseURL:      cfg.Server.URL,
		UserID:       apiClient.UserID(),
		DeviceID:     deviceID,
		DeviceName:   displayName,
		AccessToken:  apiClient.Token(),
		WebSocketURL: wsURL,
	}

	cbClient := serverapi.NewCircuitBreakerClient(apiClient)

	orch := orchestrator.New(
		orchestrator.Config{ProgressInterval: cfg.ProgressInterval},
		orchestrator.NewSessionState(server),
		playerClient,
		playerAdapter,
		serverAdapter{cbClient},
		prefStore,
		noticeBus,
	)

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("build supervisor tree: %w", err)
	}

	tree.AddLinkService(services.NewServerLinkService(link))
	tree.AddCoreService(services.NewDirectiveBridgeService(link, orch))
	tree.AddCoreService(services.NewOrchestratorService(orch))
	tree.AddCoreService(services.NewPlayerProcessService(playerAdapter))
	tree.AddCoreService(services.NewPlayerLinkService(playerClient))

	startMetricsServer(ctx)

	return tree.Serve(ctx)
}

// playerDataDir returns the directory the receiver persists local state
// (preferences, device id) under, honoring XDG_STATE_HOME when set.
func playerDataDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "castcore")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "castcore")
	}
	return filepath.Join(home, ".local", "state", "castcore")
}

// deviceControlURL derives the server's duplex control-socket URL from its
// HTTP base URL, carrying the device id the same way the HTTP client does
// in its headers.
func deviceControlURL(baseURL, deviceID string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/socket"
	q := u.Query()
	q.Set("deviceId", deviceID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// startMetricsServer exposes Prometheus metrics on a local-only listener.
// Bind failures are logged, not fatal: diagnostics are never load-bearing
// for playback.
func startMetricsServer(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: metricsAddr, Handler: mux}

	ln, err := net.Listen("tcp", metricsAddr)
	if err != nil {
		logging.Warn().Err(err).Str("addr", metricsAddr).Msg("castcore: metrics listener unavailable")
		return
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logging.Warn().Err(err).Msg("castcore: metrics server stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// watchConfigFile re-reads the config file on every change and applies the
// parts of it that are safe to change live: a new display name is pushed to
// the server client and re-registered with the server immediately, and
// player spawn settings are handed to the process supervisor for its next
// respawn. lastDisplayName tracks the name already in effect so an
// unrelated field changing doesn't trigger a needless re-post.
func watchConfigFile(path string, apiClient *serverapi.Client, playerSup *playersup.Supervisor, lastDisplayName string) {
	err := config.WatchConfigFile(path, func() {
		cfg, err := config.LoadWithKoanf()
		if err != nil {
			logging.Warn().Err(err).Msg("castcore: config reload failed, keeping previous configuration")
			return
		}

		playerSup.UpdateConfig(playersup.Config{
			ExplicitPath:        cfg.Player.ExplicitPath,
			AdditionalArgs:      cfg.Player.AdditionalArgs,
			KeyBindingConfigDir: cfg.Player.KeyBindingConfigDir,
			AggressiveCleanup:   cfg.Player.AggressiveCleanup,
			AutoRespawn:         cfg.Player.AutoRespawn,
			TerminateGrace:      cfg.Player.TerminateGrace,
		})

		name := cfg.Server.DeviceName
		if name == "" {
			name = serverapi.DefaultDeviceName
		}
		if name == lastDisplayName {
			return
		}
		lastDisplayName = name

		apiClient.SetDisplayName(name)
		postCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiClient.PostCapabilities(postCtx, serverapi.DefaultCapabilities()); err != nil {
			logging.Warn().Err(err).Msg("castcore: capabilities re-post after display name change failed")
			return
		}
		logging.Info().Str("display_name", name).Msg("castcore: config reload applied new display name")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("castcore: config file watch unavailable, live reload disabled")
	}
}

// playerSupervisorAdapter bridges orchestrator.PlayerSupervisor's
// endpoint-free lifecycle to playersup.Supervisor's endpoint-addressed one,
// by baking in the one endpoint this process ever dials.
type playerSupervisorAdapter struct {
	sup      *playersup.Supervisor
	endpoint ipc.Endpoint
}

func (a *playerSupervisorAdapter) EnsureStarted(ctx context.Context) error {
	return a.sup.EnsureStarted(ctx, a.endpoint)
}

func (a *playerSupervisorAdapter) Stop(ctx context.Context) error {
	return a.sup.Stop(ctx)
}

// serverAdapter binds the circuit-breaker-wrapped client's capability
// payload, since orchestrator.ServerClient's PostCapabilities takes no
// payload argument: this device only ever advertises one fixed capability
// set.
type serverAdapter struct {
	*serverapi.CircuitBreakerClient
}

func (a serverAdapter) PostCapabilities(ctx context.Context) error {
	return a.CircuitBreakerClient.PostCapabilities(ctx, serverapi.DefaultCapabilities())
}
