package cache

import (
	"context"
	"sync"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/providers"
)

// MemoryRecentStore implements RecentSearchStore in process memory.
// Used when no Redis is configured, and by tests.
type MemoryRecentStore struct {
	mu      sync.Mutex
	entries []string
}

// NewMemoryRecentStore creates an empty in-memory recent-search store
func NewMemoryRecentStore() providers.RecentSearchStore {
	return &MemoryRecentStore{}
}

// Load retrieves the stored entries
func (s *MemoryRecentStore) Load(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Save replaces the stored entries
func (s *MemoryRecentStore) Save(ctx context.Context, entries []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]string, len(entries))
	copy(s.entries, entries)
	return nil
}
