// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package playersup

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jmsr/castcore/internal/ipc"
	"github.com/jmsr/castcore/internal/logging"
	"github.com/jmsr/castcore/internal/metrics"
)

// Config controls how the player executable is located and spawned.
type Config struct {
	// ExplicitPath, if set, is tried before any platform search.
	ExplicitPath string
	// AdditionalArgs are appended after the mandatory baseline set.
	AdditionalArgs []string
	// KeyBindingConfigDir is the per-application directory the default
	// keybinding file is written into on first start.
	KeyBindingConfigDir string
	KeyBindings         KeyBindings
	// AggressiveCleanup, if true, terminates the process on explicit stop
	// rather than keeping it idle for reuse.
	AggressiveCleanup bool
	// AutoRespawn, if true, spawns a fresh process on the next play
	// directive after the previous one exited.
	AutoRespawn bool
	// TerminateGrace bounds how long Stop waits between a graceful
	// terminate and a forceful kill.
	TerminateGrace time.Duration
}

func (c Config) graceOrDefault() time.Duration {
	if c.TerminateGrace > 0 {
		return c.TerminateGrace
	}
	return 3 * time.Second
}

// Supervisor owns the lifecycle of a single player process at a time: at
// most one live process, located lazily, restarted according to policy.
type Supervisor struct {
	cfgMu sync.RWMutex
	cfg   Config

	spawnGroup singleflight.Group
	hasSpawned bool

	mu          sync.Mutex
	cmd         *exec.Cmd
	exited      chan struct{}
	started     bool
	terminating bool

	wroteKeyBindings bool
}

// NewSupervisor constructs a Supervisor bound to cfg.
func NewSupervisor(cfg Config) *Supervisor {
	if cfg.KeyBindings == (KeyBindings{}) {
		cfg.KeyBindings = DefaultKeyBindings()
	}
	return &Supervisor{cfg: cfg}
}

// UpdateConfig replaces the supervisor's configuration, e.g. after a config
// file reload. ExplicitPath and AdditionalArgs take effect with the next
// spawn; AutoRespawn, AggressiveCleanup and TerminateGrace are read each time
// EnsureStarted, Stop or Terminate runs. The keybinding file is written at
// most once per Supervisor and never over an existing file, so changed
// KeyBindings are not written out. A process already running is left alone.
func (s *Supervisor) UpdateConfig(cfg Config) {
	if cfg.KeyBindings == (KeyBindings{}) {
		cfg.KeyBindings = DefaultKeyBindings()
	}
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}

func (s *Supervisor) configSnapshot() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// Running reports whether a player process is currently believed alive.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Exited returns a channel closed when the current process instance exits,
// for any reason. Callers obtained before a respawn must re-fetch it.
func (s *Supervisor) Exited() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exited == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.exited
}

// ErrRespawnDisabled is returned by EnsureStarted when the player process
// has already exited once and AutoRespawn is false: the caller must wait
// for an operator-initiated restart rather than spawning a replacement.
var ErrRespawnDisabled = errors.New("playersup: auto-respawn disabled, player will not be restarted")

// EnsureStarted spawns the player if one is not already running, or is a
// no-op if one is. Concurrent callers are deduplicated onto a single spawn.
// Once a process has exited, a further spawn is refused with
// ErrRespawnDisabled unless AutoRespawn is set.
func (s *Supervisor) EnsureStarted(ctx context.Context, endpoint ipc.Endpoint) error {
	if s.Running() {
		return nil
	}
	if s.hasSpawned && !s.configSnapshot().AutoRespawn {
		return ErrRespawnDisabled
	}

	_, err, _ := s.spawnGroup.Do("spawn", func() (interface{}, error) {
		if s.Running() {
			return nil, nil
		}
		if s.hasSpawned && !s.configSnapshot().AutoRespawn {
			return nil, ErrRespawnDisabled
		}
		return nil, s.spawn(ctx, endpoint)
	})
	return err
}

func (s *Supervisor) spawn(ctx context.Context, endpoint ipc.Endpoint) error {
	cfg := s.configSnapshot()

	path, err := Discover(cfg.ExplicitPath)
	if err != nil {
		return fmt.Errorf("playersup: %w", err)
	}

	if cfg.KeyBindingConfigDir != "" && !s.wroteKeyBindings {
		if err := WriteDefaultKeyBindings(cfg.KeyBindingConfigDir, cfg.KeyBindings); err != nil {
			logging.Warn().Err(err).Msg("playersup: failed to write default keybindings, continuing")
		}
		s.wroteKeyBindings = true
	}

	args := baselineArgs(endpoint, cfg.AdditionalArgs)
	//nolint:gosec // player path is resolved from config/well-known roots/PATH, not untrusted input
	cmd := exec.CommandContext(context.Background(), path, args...)
	setPlatformAttrs(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("playersup: spawn %s: %w", path, err)
	}

	exited := make(chan struct{})
	s.mu.Lock()
	s.cmd = cmd
	s.exited = exited
	s.started = true
	s.terminating = false
	s.mu.Unlock()

	metrics.PlayerSpawns.Inc()
	if s.hasSpawned {
		metrics.PlayerRestarts.Inc()
	}
	s.hasSpawned = true
	logging.Info().Str("path", path).Int("pid", cmd.Process.Pid).Msg("playersup: player started")

	go s.watch(cmd, exited)
	return nil
}

// watch is the dedicated health task: it awaits the child's exit and marks
// the supervisor's process slot empty regardless of exit cause.
func (s *Supervisor) watch(cmd *exec.Cmd, exited chan struct{}) {
	err := cmd.Wait()

	s.mu.Lock()
	requested := s.terminating
	if s.cmd == cmd {
		s.started = false
	}
	s.mu.Unlock()

	metrics.PlayerExits.WithLabelValues(strconv.FormatBool(requested)).Inc()

	if err != nil {
		logging.Warn().Err(err).Msg("playersup: player process exited")
	} else {
		logging.Info().Msg("playersup: player process exited cleanly")
	}
	close(exited)
}

// Stop terminates the current process if AggressiveCleanup is enabled;
// otherwise it leaves the process running for reuse by the next directive.
func (s *Supervisor) Stop(ctx context.Context) error {
	if !s.configSnapshot().AggressiveCleanup {
		return nil
	}
	return s.Terminate(ctx)
}

// Terminate unconditionally ends the current process, gracefully first and
// forcefully after the configured grace period.
func (s *Supervisor) Terminate(ctx context.Context) error {
	s.mu.Lock()
	cmd := s.cmd
	exited := s.exited
	s.terminating = true
	s.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}

	if err := terminateGracefully(cmd); err != nil && !errors.Is(err, errProcessAlreadyDone) {
		logging.Debug().Err(err).Msg("playersup: graceful terminate signal failed")
	}

	select {
	case <-exited:
		return nil
	case <-time.After(s.configSnapshot().graceOrDefault()):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, errProcessAlreadyDone) {
		return fmt.Errorf("playersup: kill: %w", err)
	}
	return nil
}

var errProcessAlreadyDone = errors.New("playersup: process already exited")
