// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmsr/castcore

/*
Package metrics provides Prometheus instrumentation for the receiver process.

# Available Metrics

Server link:
  - server_link_state: current connection state (gauge, 0=disconnected, 1=connected)
  - server_link_reconnects_total: reconnect attempts (counter)
  - server_link_reconnect_backoff_seconds: delay applied before the most recent
    reconnect attempt (gauge)

Player supervision:
  - player_spawns_total: player process spawns (counter)
  - player_exits_total: player process exits (counter), labeled by whether the
    exit was requested
  - player_restarts_total: automatic restarts after an unexpected exit (counter)

Player link (IPC):
  - player_link_state: current IPC connection state (gauge, 0=disconnected,
    1=connected)
  - player_link_reconnects_total: reconnect attempts after a process exit
    (counter)

Directive handling:
  - directives_handled_total: directives processed (counter), labeled by kind
    and outcome
  - progress_reports_total: playback progress reports sent to the server
    (counter), labeled by kind (progress, stopped)

HTTP client:
  - server_api_request_duration_seconds: server API request latency
    (histogram), labeled by operation

Circuit breaker:
  - circuit_breaker_state: current state (gauge, 0=closed, 1=half-open,
    2=open), labeled by breaker name
  - circuit_breaker_requests_total: requests through the breaker (counter),
    labeled by name and result (success, failure, rejected)
  - circuit_breaker_consecutive_failures: current consecutive failure streak
    (gauge), labeled by name
  - circuit_breaker_state_transitions_total: state transitions (counter),
    labeled by name, from_state, to_state

# Metrics Endpoint

Metrics are exposed in Prometheus text format wherever cmd/receiver wires up
promhttp.Handler(), typically at /metrics on a local diagnostics port.
*/
package metrics
