// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ServerLinkState is 1 while the server control link's websocket is
	// connected, 0 otherwise.
	ServerLinkState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "server_link_state",
			Help: "Server control link connection state (0=disconnected, 1=connected)",
		},
	)

	ServerLinkReconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "server_link_reconnects_total",
			Help: "Total number of server control link reconnect attempts",
		},
	)

	ServerLinkReconnectBackoff = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "server_link_reconnect_backoff_seconds",
			Help: "Delay applied before the most recent server control link reconnect attempt",
		},
	)

	// Player supervision metrics.
	PlayerSpawns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "player_spawns_total",
			Help: "Total number of player process spawns",
		},
	)

	PlayerExits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "player_exits_total",
			Help: "Total number of player process exits",
		},
		[]string{"requested"}, // "true" for a supervisor-initiated stop, "false" otherwise
	)

	PlayerRestarts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "player_restarts_total",
			Help: "Total number of automatic player restarts after an unexpected exit",
		},
	)

	// Player link (IPC) reconnect metrics, mirroring the server link's.
	PlayerLinkState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "player_link_state",
			Help: "Player IPC connection state (0=disconnected, 1=connected)",
		},
	)

	PlayerLinkReconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "player_link_reconnects_total",
			Help: "Total number of player IPC reconnect attempts after a process exit",
		},
	)

	// Directive handling metrics.
	DirectivesHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directives_handled_total",
			Help: "Total number of server directives processed",
		},
		[]string{"kind", "outcome"}, // outcome: "ok", "error"
	)

	ProgressReports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_reports_total",
			Help: "Total number of playback reports sent to the server",
		},
		[]string{"kind"}, // "progress", "stopped"
	)

	// Server API client metrics.
	ServerAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "server_api_request_duration_seconds",
			Help:    "Duration of server API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)
