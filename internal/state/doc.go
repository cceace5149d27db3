// Package state provides the thread-safe in-memory snapshot shared by
// the background refresher and the UI.
//
// # Overview
//
// A single Store mediates between the poller goroutine (producer) and
// the Bubble Tea render loop (consumer). The poller calls Update after
// each server round-trip; the UI calls Snapshot on its own schedule.
// Both directions deep-copy the listing slice, so neither side can
// mutate data the other is reading.
//
// # Update semantics
//
//   - Success: the listing slice is replaced wholesale, LastError is
//     cleared, and the failure counter resets.
//   - Failure: previous listings are kept (the UI keeps showing the
//     last good data), the error is recorded, and ConsecutiveFailures
//     increments. Snapshot.IsOffline reports true after two misses.
//   - Warm seeds the store from the offline cache exactly once, before
//     the first real update, so a cold start with no network still
//     renders the catalog immediately. FromCache marks such data.
//
// The Store also carries pending/failed queue counts so the header can
// show unsynced local writes without consulting the cache itself.
//
// The zero value is ready to use; no constructor is needed.
package state
