package cache

import (
	"context"
	"sync"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
)

type record struct {
	expiresAt time.Time
}

// InMemoryIdempotencyStore tracks processed event IDs in a local map. It only
// covers a single process, so it suits development and tests; distributed
// deployments use the Redis store instead.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	records   map[string]record
	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore returns a store with a background sweeper that
// evicts expired records every few minutes.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	store := &InMemoryIdempotencyStore{
		records: make(map[string]record),
		stop:    make(chan struct{}),
	}

	store.wg.Add(1)
	go store.sweepLoop()

	return store
}

// MarkProcessed records the event ID and reports whether this was the first
// time it was seen. A false return means the event is a duplicate.
func (s *InMemoryIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, exists := s.records[eventID]; exists && time.Now().Before(r.expiresAt) {
		return false, nil
	}

	s.records[eventID] = record{
		expiresAt: time.Now().Add(ttl),
	}

	return true, nil
}

func (s *InMemoryIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.records[eventID]
	if !exists || time.Now().After(r.expiresAt) {
		return false, nil
	}

	return true, nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryIdempotencyStore) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *InMemoryIdempotencyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for eventID, r := range s.records {
		if now.After(r.expiresAt) {
			delete(s.records, eventID)
		}
	}
}

// Size reports how many records the store currently holds.
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
