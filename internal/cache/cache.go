package cache

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/GoldCat07/BrickBase-sub000/internal/kv"
	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
)

// Status tracks a pending create through its sync lifecycle.
type Status string

const (
	StatusPending Status = "pending"
	StatusSyncing Status = "syncing"
	StatusFailed  Status = "failed"
)

// PendingCreate is one not-yet-confirmed create operation.
type PendingCreate struct {
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
	Status    Status          `json:"status"`
	Retries   int             `json:"retries"`
}

// Key layout in the underlying store.
const (
	listingPrefix = "brickbase:listings:"
	pendingPrefix = "brickbase:pending:"
	imagePrefix   = "brickbase:image:"

	snapshotKey   = listingPrefix + "snapshot"
	snapshotAtKey = listingPrefix + "snapshot_at"
	pendingKey    = pendingPrefix + "creates"
)

// Store is the offline listing cache: a full-snapshot cache, a
// refresh-trip flag, a pending-create queue, and optimistic overlay
// operations, all persisted through a kv.Store.
//
// Every operation is best-effort: storage and decode failures are
// logged and degrade to a safe default (empty result or no-op), never
// an error to the caller. Losing cache state only costs a network
// round-trip; corrupting a caller's write flow would cost more.
type Store struct {
	mu          sync.Mutex
	kv          kv.Store
	logf        func(format string, args ...any)
	refreshTrip bool
}

// New builds a cache over the given store. logf receives swallowed
// storage errors; nil uses the standard logger.
func New(store kv.Store, logf func(format string, args ...any)) *Store {
	if logf == nil {
		logf = log.Printf
	}
	return &Store{kv: store, logf: logf}
}

// CacheSnapshot persists listings as the full snapshot, replacing any
// prior snapshot and stamping the capture time.
func (s *Store) CacheSnapshot(ctx context.Context, listings []listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeSnapshot(ctx, listings)
}

// CachedSnapshot returns the persisted snapshot. ok is false when no
// snapshot exists or the stored value cannot be decoded.
func (s *Store) CachedSnapshot(ctx context.Context) ([]listing.Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readSnapshot(ctx)
}

// SnapshotUsable reports whether the cached snapshot may be shown
// without refetching. A tripped refresh flag always forces a refresh;
// otherwise any recorded snapshot is usable (no TTL — staleness is
// event-driven, not time-driven).
func (s *Store) SnapshotUsable(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refreshTrip {
		return false
	}
	_, ok := s.loadRaw(ctx, snapshotAtKey)
	return ok
}

// TripRefresh marks the snapshot stale because a local write happened.
func (s *Store) TripRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTrip = true
}

// ShouldRefresh reads the refresh-trip flag.
func (s *Store) ShouldRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshTrip
}

// ClearRefreshTrip resets the flag after a refresh has been performed.
func (s *Store) ClearRefreshTrip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTrip = false
}

// Enqueue appends a pending create with status pending and zero
// retries, returning its generated identifier.
func (s *Store) Enqueue(ctx context.Context, payload json.RawMessage) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := PendingCreate{
		ID:        NewPendingID(),
		Payload:   append(json.RawMessage(nil), payload...),
		CreatedAt: time.Now().UTC(),
		Status:    StatusPending,
	}
	queue := s.readQueue(ctx)
	queue = append(queue, entry)
	s.writeQueue(ctx, queue)
	return entry.ID
}

// Pending returns the queue oldest-first. Empty on any read failure.
func (s *Store) Pending(ctx context.Context) []PendingCreate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readQueue(ctx)
}

// SetStatus updates one entry's status and, when retries >= 0, its
// retry count. Unknown ids are a silent no-op: the entry may have been
// dequeued by a racing confirmation.
func (s *Store) SetStatus(ctx context.Context, id string, status Status, retries int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.readQueue(ctx)
	found := false
	for i := range queue {
		if queue[i].ID != id {
			continue
		}
		queue[i].Status = status
		if retries >= 0 {
			queue[i].Retries = retries
		}
		found = true
		break
	}
	if found {
		s.writeQueue(ctx, queue)
	}
}

// Dequeue removes the entry with the given id. Idempotent.
func (s *Store) Dequeue(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.readQueue(ctx)
	kept := queue[:0]
	for _, entry := range queue {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	if len(kept) != len(queue) {
		s.writeQueue(ctx, kept)
	}
}

// InsertOptimistic prepends rec to the snapshot so a local write shows
// immediately. When no snapshot exists this is a no-op: the cache never
// fabricates a snapshot from a single record.
func (s *Store) InsertOptimistic(ctx context.Context, rec listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listings, ok := s.readSnapshot(ctx)
	if !ok {
		return
	}
	listings = append([]listing.Listing{rec}, listings...)
	s.writeSnapshot(ctx, listings)
}

// PromoteOptimistic replaces the entry whose id equals tempID with the
// server-confirmed record, keeping its position. No-op when absent.
func (s *Store) PromoteOptimistic(ctx context.Context, tempID string, final listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listings, ok := s.readSnapshot(ctx)
	if !ok {
		return
	}
	for i := range listings {
		if listings[i].ID == tempID {
			listings[i] = final
			s.writeSnapshot(ctx, listings)
			return
		}
	}
}

// RemoveOptimistic drops any snapshot entry with the given id.
func (s *Store) RemoveOptimistic(ctx context.Context, tempID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listings, ok := s.readSnapshot(ctx)
	if !ok {
		return
	}
	kept := listings[:0]
	for _, l := range listings {
		if l.ID != tempID {
			kept = append(kept, l)
		}
	}
	s.writeSnapshot(ctx, kept)
}

// CacheImage stores one encoded photo blob for (listingID, index).
func (s *Store) CacheImage(ctx context.Context, listingID string, index int, data string) {
	s.saveRaw(ctx, imageKey(listingID, index), data)
}

// CachedImage returns the stored blob for (listingID, index), if any.
func (s *Store) CachedImage(ctx context.Context, listingID string, index int) (string, bool) {
	return s.loadRaw(ctx, imageKey(listingID, index))
}

// ClearAll deletes every key under the module's prefixes, leaving
// unrelated keys in the shared store untouched.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.kv.Keys(ctx)
	if err != nil {
		s.logf("cache: list keys: %v", err)
		return
	}
	var owned []string
	for _, key := range keys {
		if strings.HasPrefix(key, listingPrefix) ||
			strings.HasPrefix(key, pendingPrefix) ||
			strings.HasPrefix(key, imagePrefix) {
			owned = append(owned, key)
		}
	}
	if len(owned) == 0 {
		return
	}
	if err := s.kv.Remove(ctx, owned...); err != nil {
		s.logf("cache: clear: %v", err)
	}
}

// Usage estimates store footprint: approximate bytes (2 per character,
// matching the original client's UTF-16 accounting) and key count.
// Diagnostic only.
func (s *Store) Usage(ctx context.Context) (bytes int, keys int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.kv.Keys(ctx)
	if err != nil {
		s.logf("cache: list keys: %v", err)
		return 0, 0
	}
	for _, key := range all {
		value, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			s.logf("cache: read %q: %v", key, err)
			continue
		}
		if ok {
			bytes += 2 * utf8.RuneCountInString(value)
		}
	}
	return bytes, len(all)
}

// --- storage boundary -------------------------------------------------
//
// Every read/write funnels through the helpers below; this is the one
// place the swallow-and-log failure policy lives.

func (s *Store) readSnapshot(ctx context.Context) ([]listing.Listing, bool) {
	raw, ok := s.loadRaw(ctx, snapshotKey)
	if !ok {
		return nil, false
	}
	var listings []listing.Listing
	if err := json.Unmarshal([]byte(raw), &listings); err != nil {
		s.logf("cache: decode snapshot: %v", err)
		return nil, false
	}
	return listings, true
}

func (s *Store) writeSnapshot(ctx context.Context, listings []listing.Listing) {
	if listings == nil {
		listings = []listing.Listing{}
	}
	raw, err := json.Marshal(listings)
	if err != nil {
		s.logf("cache: encode snapshot: %v", err)
		return
	}
	if !s.saveRaw(ctx, snapshotKey, string(raw)) {
		return
	}
	s.saveRaw(ctx, snapshotAtKey, time.Now().UTC().Format(time.RFC3339Nano))
}

func (s *Store) readQueue(ctx context.Context) []PendingCreate {
	raw, ok := s.loadRaw(ctx, pendingKey)
	if !ok {
		return nil
	}
	var queue []PendingCreate
	if err := json.Unmarshal([]byte(raw), &queue); err != nil {
		s.logf("cache: decode pending queue: %v", err)
		return nil
	}
	return queue
}

func (s *Store) writeQueue(ctx context.Context, queue []PendingCreate) {
	if queue == nil {
		queue = []PendingCreate{}
	}
	raw, err := json.Marshal(queue)
	if err != nil {
		s.logf("cache: encode pending queue: %v", err)
		return
	}
	s.saveRaw(ctx, pendingKey, string(raw))
}

func (s *Store) loadRaw(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logf("cache: read %q: %v", key, err)
		return "", false
	}
	return value, ok
}

func (s *Store) saveRaw(ctx context.Context, key, value string) bool {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logf("cache: write %q: %v", key, err)
		return false
	}
	return true
}

func imageKey(listingID string, index int) string {
	return imagePrefix + listingID + ":" + strconv.Itoa(index)
}
