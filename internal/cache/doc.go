// Package cache is the offline-first local cache for property listings.
//
// # Overview
//
// The cache keeps four cooperating pieces of state over one durable
// key-value store (kv.Store):
//
//   - Snapshot cache: the last known full listing sequence plus a
//     capture timestamp. Writing a new snapshot fully replaces the old
//     one; there are no partial updates.
//   - Refresh-trip flag: one in-memory boolean per Store meaning "a
//     local write happened, refetch at the next opportunity". Coarse by
//     design — it does not track which listings changed.
//   - Pending-create queue: ordered create operations not yet confirmed
//     by the server, each with a status (pending, syncing, failed) and
//     a retry count. The cache only records state; retry scheduling and
//     backoff belong to the caller.
//   - Optimistic overlay: insert/promote/remove of a single record in
//     the snapshot, linking a locally generated temp id to the
//     server-assigned one on confirmation.
//
// An image cache (one key per listing photo) rides along with an
// independent lifecycle; it is only emptied by ClearAll.
//
// # Staleness policy
//
// The snapshot is valid forever unless the refresh-trip flag is set.
// There is no TTL: staleness is event-driven (a local write happened),
// not time-driven. A process restart clears the flag, which is fine
// because the surrounding app refetches on first load anyway.
//
// # Failure policy
//
// Nothing here is fatal. Storage and decode failures are logged and
// degrade to "no snapshot" / empty queue / no-op; operating on an id
// that is absent is an expected condition, not an error. Total cache
// loss degrades the app to always fetching fresh from the server — a
// correct, slower fallback. The swallow-and-log policy is implemented
// once, in the storage boundary helpers at the bottom of cache.go.
//
// # Concurrency
//
// All read-modify-write sequences (queue updates, optimistic overlay
// operations) run under one per-Store mutex, so concurrent callers
// cannot interleave between a snapshot read and its write-back. The
// underlying store needs no transaction support.
package cache
