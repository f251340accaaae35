// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between service boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// DatasetFetch caps a single dataset request to the Orb sensor when the
// caller does not supply its own timeout.
const DatasetFetch = 30 * time.Second

// SensorProbe caps the reachability check against the Orb sensor at
// service startup and during background health monitoring.
const SensorProbe = 5 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
