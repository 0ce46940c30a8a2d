package search

import (
	"context"
	"strings"
	"sync"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/providers"
	apperrors "github.com/kurumrehberi/institution-directory/backend/pkg/errors"
)

// RecentSearchCapacity bounds the recent-search log
const RecentSearchCapacity = 5

// RecentSearchLog is the bounded, ordered, deduplicated history of past
// query strings, most recent first. Every mutation is written through the
// backing store.
type RecentSearchLog struct {
	mu      sync.Mutex
	entries []string
	store   providers.RecentSearchStore
}

// NewRecentSearchLog creates a log seeded from the persisted store
func NewRecentSearchLog(ctx context.Context, store providers.RecentSearchStore) (*RecentSearchLog, error) {
	entries, err := store.Load(ctx)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to load recent searches", err)
	}
	if len(entries) > RecentSearchCapacity {
		entries = entries[:RecentSearchCapacity]
	}
	return &RecentSearchLog{entries: entries, store: store}, nil
}

// Record moves-or-inserts the query at the front and persists. Blank input
// is a no-op. Re-adding an existing entry moves it to the front (newest
// casing wins) instead of duplicating it.
func (l *RecentSearchLog) Record(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.withoutLocked(query)
	entries = append([]string{query}, entries...)
	if len(entries) > RecentSearchCapacity {
		entries = entries[:RecentSearchCapacity]
	}
	return l.commitLocked(ctx, entries)
}

// Remove deletes the query from the log if present and persists
func (l *RecentSearchLog) Remove(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.withoutLocked(query)
	if len(entries) == len(l.entries) {
		return nil
	}
	return l.commitLocked(ctx, entries)
}

// List returns the entries, most recent first
func (l *RecentSearchLog) List() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *RecentSearchLog) withoutLocked(query string) []string {
	key := strings.ToLower(query)
	entries := make([]string, 0, len(l.entries))
	for _, entry := range l.entries {
		if strings.ToLower(entry) != key {
			entries = append(entries, entry)
		}
	}
	return entries
}

func (l *RecentSearchLog) commitLocked(ctx context.Context, entries []string) error {
	if err := l.store.Save(ctx, entries); err != nil {
		return apperrors.NewExternalError("failed to persist recent searches", err)
	}
	l.entries = entries
	return nil
}
