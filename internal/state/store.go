package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/GoldCat07/BrickBase-sub000/internal/listing"
)

// Snapshot represents the latest listing data available to the UI.
type Snapshot struct {
	Listings            []listing.Listing
	FromCache           bool // seeded from the offline cache, not yet server-confirmed
	PendingCount        int  // queued creates awaiting sync
	FailedCount         int  // queued creates that exhausted retries
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
}

// IsOffline returns true when the API has been unreachable for multiple
// refresh attempts.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Warm seeds the store from the offline cache before the first server
// fetch, so the UI has something to show immediately.
func (s *Store) Warm(listings []listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snapshot.LastUpdated.IsZero() {
		return // a real update already happened
	}
	s.snapshot.Listings = cloneListings(listings)
	s.snapshot.FromCache = true
	s.snapshot.LastUpdated = time.Now()
}

// Update replaces the stored listings. When err is non-nil the previous
// data is kept but the error is recorded for visibility.
func (s *Store) Update(listings []listing.Listing, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Listings = cloneListings(listings)
	s.snapshot.FromCache = false
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// SetQueueCounts records pending/failed create counts for the header.
func (s *Store) SetQueueCounts(pending, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.PendingCount = pending
	s.snapshot.FailedCount = failed
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Listings = cloneListings(s.snapshot.Listings)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// cloneListings copies the slice and every nested slice/pointer, so a
// snapshot handed out (or in) shares no backing storage with the store.
func cloneListings(items []listing.Listing) []listing.Listing {
	if len(items) == 0 {
		return nil
	}
	dup := make([]listing.Listing, len(items))
	for i, item := range items {
		dup[i] = item
		dup[i].PropertyPhotos = append([]string(nil), item.PropertyPhotos...)
		dup[i].Floors = append([]listing.Floor(nil), item.Floors...)
		dup[i].Builders = append([]listing.Builder(nil), item.Builders...)
		dup[i].Sizes = append([]listing.Size(nil), item.Sizes...)
		if item.Address != nil {
			addr := *item.Address
			dup[i].Address = &addr
		}
	}
	return dup
}
