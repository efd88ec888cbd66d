package state

import (
	"fmt"
	"sync"
	"time"

	"stockbot/internal/domain"

	"github.com/maypok86/otter"
)

// Store keeps the pending flow tag for each user. Absence means the next
// message from that user is a command.
type Store interface {
	Get(userID string) (domain.PendingState, bool)
	Set(userID string, s domain.PendingState)
	Clear(userID string)

	// Take reads and clears the user's tag in one step, so two messages from
	// the same user cannot both observe the same pending flow.
	Take(userID string) (domain.PendingState, bool)
}

// Users with an abandoned flow are evicted after the TTL, so the store does
// not grow without bound.
const storeCapacity = 10_000

// MemoryStore is an in-process Store backed by a TTL cache.
type MemoryStore struct {
	mu    sync.Mutex
	cache otter.Cache[string, domain.PendingState]
}

// NewMemoryStore creates a store whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) (*MemoryStore, error) {
	cache, err := otter.MustBuilder[string, domain.PendingState](storeCapacity).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create state cache: %w", err)
	}
	return &MemoryStore{cache: cache}, nil
}

// Get returns the user's pending tag, if any.
func (s *MemoryStore) Get(userID string) (domain.PendingState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(userID)
}

// Set records a pending tag for the user, replacing any previous one.
func (s *MemoryStore) Set(userID string, tag domain.PendingState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(userID, tag)
}

// Clear removes the user's pending tag.
func (s *MemoryStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(userID)
}

// Take atomically reads and clears the user's pending tag.
func (s *MemoryStore) Take(userID string) (domain.PendingState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag, ok := s.cache.Get(userID)
	if ok {
		s.cache.Delete(userID)
	}
	return tag, ok
}

// Close releases the cache's background resources.
func (s *MemoryStore) Close() {
	s.cache.Close()
}
