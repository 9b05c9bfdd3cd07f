package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var _ Persister = (*RedisStore)(nil)

// snapshotKey is the single Redis key holding the serialized snapshot.
const snapshotKey = "klontong:query-cache"

// RedisStore persists cache snapshots as a single JSON blob in Redis, for
// deployments where local disk is not an option.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at the given URL and verifies the
// connection with a ping.
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Persist replaces the stored snapshot with entries.
func (s *RedisStore) Persist(ctx context.Context, entries []PersistedEntry) error {
	blob, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.client.Set(ctx, snapshotKey, blob, 0).Err()
}

// Restore returns the stored snapshot, or nothing when none exists.
func (s *RedisStore) Restore(ctx context.Context) ([]PersistedEntry, error) {
	blob, err := s.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var entries []PersistedEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return entries, nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
