// Package cache provides recent-search persistence adapters.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kurumrehberi/institution-directory/backend/internal/domain/providers"
	redisclient "github.com/kurumrehberi/institution-directory/backend/internal/infrastructure/clients/redis"
	"github.com/redis/go-redis/v9"
)

const recentSearchKey = "directory:recent_searches"

// RedisRecentStore implements RecentSearchStore using Redis.
// Entries are stored as one JSON array under a single key, so every save
// replaces the previous value atomically.
type RedisRecentStore struct {
	client *redisclient.Client
	key    string
}

// NewRedisRecentStore creates a Redis-backed recent-search store
func NewRedisRecentStore(client *redisclient.Client) providers.RecentSearchStore {
	return &RedisRecentStore{
		client: client,
		key:    recentSearchKey,
	}
}

// Load retrieves the persisted entries; a missing key yields an empty slice
func (s *RedisRecentStore) Load(ctx context.Context) ([]string, error) {
	payload, err := s.client.Client().Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recent searches: %w", err)
	}

	var entries []string
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode recent searches: %w", err)
	}
	return entries, nil
}

// Save persists the entries, replacing any previous value
func (s *RedisRecentStore) Save(ctx context.Context, entries []string) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode recent searches: %w", err)
	}
	if err := s.client.Client().Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save recent searches: %w", err)
	}
	return nil
}
