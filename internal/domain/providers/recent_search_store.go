package providers

import (
	"context"
)

// RecentSearchStore defines the interface for persisting the recent-search log.
// The log is loaded once at session start and saved after every mutation.
type RecentSearchStore interface {
	// Load retrieves the persisted entries, most recent first.
	// A missing key is not an error; implementations return an empty slice.
	Load(ctx context.Context) ([]string, error)

	// Save persists the entries, replacing any previous value
	Save(ctx context.Context, entries []string) error
}
