package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/GoldCat07/BrickBase-sub000/internal/api"
	"github.com/GoldCat07/BrickBase-sub000/internal/cache"
	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
	"github.com/GoldCat07/BrickBase-sub000/internal/state"
)

// maxSyncRetries caps automatic resubmission of a queued create. Past
// this the entry stays failed until the user retries or discards it.
const maxSyncRetries = 5

// Creator is the API surface the create/sync flows need.
type Creator interface {
	api.Lister
	Create(ctx context.Context, payload json.RawMessage) (listing.Listing, error)
}

// Service ties the API client, the offline cache, and the shared state
// store together for the UI and the background loops.
type Service struct {
	client Creator
	cache  *cache.Store
	store  *state.Store
}

// NewService wires a Service.
func NewService(client Creator, offline *cache.Store, snapshots *state.Store) *Service {
	return &Service{client: client, cache: offline, store: snapshots}
}

// Cache exposes the offline cache for UI maintenance actions.
func (s *Service) Cache() *cache.Store {
	return s.cache
}

// Refresh fetches listings from the server and replaces the cached
// snapshot. Unless forced, it is skipped while the cached snapshot is
// still usable (no local write tripped the refresh flag).
func (s *Service) Refresh(ctx context.Context, force bool) {
	if !force && s.cache.SnapshotUsable(ctx) {
		return
	}

	listings, err := s.client.Listings(ctx, api.ListQuery{IncludeSold: true})
	if err != nil {
		s.store.Update(nil, err)
		log.Printf("listing refresh failed: %v", err)
		return
	}
	s.cache.CacheSnapshot(ctx, listings)
	s.cache.ClearRefreshTrip()
	s.store.Update(listings, nil)
}

// CreateListing performs the optimistic create flow: the draft is
// queued and shown immediately, then submitted. On success the
// optimistic record is promoted to the server's; on failure it is
// rolled back and the queued entry kept for retry.
func (s *Service) CreateListing(ctx context.Context, draft listing.Listing) (listing.Listing, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return listing.Listing{}, fmt.Errorf("encode listing: %w", err)
	}

	pendingID := s.cache.Enqueue(ctx, payload)

	optimistic := draft
	optimistic.ID = cache.NewTempID()
	optimistic.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	s.cache.InsertOptimistic(ctx, optimistic)
	s.cache.TripRefresh()
	s.pushQueueCounts(ctx)

	created, err := s.client.Create(ctx, payload)
	if err != nil {
		s.cache.SetStatus(ctx, pendingID, cache.StatusFailed, 1)
		s.cache.RemoveOptimistic(ctx, optimistic.ID)
		s.pushQueueCounts(ctx)
		return listing.Listing{}, fmt.Errorf("create listing: %w", err)
	}

	s.cache.PromoteOptimistic(ctx, optimistic.ID, created)
	s.cache.Dequeue(ctx, pendingID)
	s.pushQueueCounts(ctx)

	if listings, ok := s.cache.CachedSnapshot(ctx); ok {
		s.store.Update(listings, nil)
	}
	return created, nil
}

// SyncPending resubmits queued creates that have not exhausted their
// retries. Entries already syncing are left alone; successes are
// dequeued and trip a refresh so the next poll picks up the server's
// authoritative record.
func (s *Service) SyncPending(ctx context.Context) {
	for _, entry := range s.cache.Pending(ctx) {
		if entry.Status == cache.StatusSyncing {
			continue
		}
		if entry.Status == cache.StatusFailed && entry.Retries >= maxSyncRetries {
			continue
		}

		retries := entry.Retries
		s.cache.SetStatus(ctx, entry.ID, cache.StatusSyncing, -1)

		if _, err := s.client.Create(ctx, entry.Payload); err != nil {
			s.cache.SetStatus(ctx, entry.ID, cache.StatusFailed, retries+1)
			log.Printf("sync pending %s failed (attempt %d): %v", entry.ID, retries+1, err)
			continue
		}
		s.cache.Dequeue(ctx, entry.ID)
		s.cache.TripRefresh()
	}
	s.pushQueueCounts(ctx)
}

// RetryPending resets a failed entry so the next sync pass picks it up.
func (s *Service) RetryPending(ctx context.Context, id string) {
	s.cache.SetStatus(ctx, id, cache.StatusPending, 0)
	s.pushQueueCounts(ctx)
}

// DiscardPending drops a queued create for good.
func (s *Service) DiscardPending(ctx context.Context, id string) {
	s.cache.Dequeue(ctx, id)
	s.pushQueueCounts(ctx)
}

func (s *Service) pushQueueCounts(ctx context.Context) {
	pending, failed := 0, 0
	for _, entry := range s.cache.Pending(ctx) {
		if entry.Status == cache.StatusFailed && entry.Retries >= maxSyncRetries {
			failed++
		} else {
			pending++
		}
	}
	s.store.SetQueueCounts(pending, failed)
}
