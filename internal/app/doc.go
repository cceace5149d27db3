// Package app provides the orchestration layer for BrickBase.
//
// # Overview
//
// This package is the composition root: it loads configuration and
// preferences, opens the offline cache database, builds the API client,
// and wires the Service that the UI and the background loops share.
//
// # Startup sequence
//
//  1. Load config from ~/.config/brickbase/config.toml
//  2. Load user prefs (theme, sort, show-sold)
//  3. Open the SQLite cache database (in-memory fallback on failure)
//  4. Warm the state store from the cached snapshot (offline-first:
//     the catalog renders before the first network round-trip)
//  5. Resolve the session in the background: a configured token is
//     validated against /api/auth/me, otherwise configured credentials
//     are exchanged via login; then one forced refresh runs
//  6. Start the poller and boot the TUI (blocks until exit)
//
// # Background loop
//
// One goroutine runs both background duties on a shared cadence: drain
// the pending-create queue (SyncPending), then refresh the snapshot —
// but only when the cache says it is stale (a local write tripped the
// refresh flag) or no snapshot exists. While the backend is down the
// cadence backs off exponentially, capped at five minutes.
//
// # Create flow
//
// Service.CreateListing implements the optimistic write path: enqueue
// the payload, insert a temp-id record into the cached snapshot, trip
// the refresh flag, then submit. Success promotes the temp record to
// the server's and dequeues; failure rolls the overlay back and leaves
// the queued entry for the syncer (up to maxSyncRetries attempts) or
// for manual retry/discard from the UI.
//
// # Error handling
//
// Fatal (returned from Run): unparseable config, invalid API base.
// Recoverable (logged, loops continue): refresh failures, sync
// failures, and a cache database that cannot be opened — the app then
// runs with an in-memory store and simply has no offline cache for the
// session.
package app
