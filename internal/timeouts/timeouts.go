// Package timeouts provides centralized timeout constants for the
// application.
//
// The chat path dominates the numbers: a single question may traverse up to
// three LLM providers, each with its own model chain and retry backoff, so
// the HTTP write timeout must sit above the full provider-chain budget while
// the read timeout stays tight for the small JSON payloads the API accepts.
package timeouts

import "time"

// HTTP server timeouts
const (
	// HTTPRead is the server read timeout. Chat requests carry a question
	// and a short history, a few kilobytes at most.
	HTTPRead = 10 * time.Second

	// HTTPWrite is the server write timeout. Must exceed the chat
	// processing budget (provider chain plus retries) with margin for
	// response serialization.
	HTTPWrite = 90 * time.Second

	// HTTPIdle is the idle timeout for keep-alive connections.
	HTTPIdle = 120 * time.Second
)

// Database timeouts
const (
	// DatabaseBusyTimeout is the SQLite busy_timeout pragma value. Covers
	// write contention while ingest rebuilds tables in bulk.
	DatabaseBusyTimeout = 30 * time.Second

	// DatabaseConnMaxLifetime is the maximum lifetime of database
	// connections. Prevents stale connections and allows pool refresh.
	DatabaseConnMaxLifetime = time.Hour
)

// Background job intervals
const (
	// SnapshotPoll is how often server instances check R2 for a newer
	// database snapshot. Ingest runs are manual and rare; five minutes
	// keeps swap latency acceptable without hammering object storage.
	SnapshotPoll = 5 * time.Minute
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for graceful server shutdown.
	// Allows in-flight chat requests to complete before termination.
	GracefulShutdown = 30 * time.Second

	// SentryFlush is how long shutdown waits for buffered error events.
	SentryFlush = 2 * time.Second
)
