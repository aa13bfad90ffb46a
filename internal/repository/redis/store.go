// Package redis is a PreferenceStore backed by a Redis server, for
// deployments that run several API replicas.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"bridge/internal/config"
	"bridge/internal/domain"
	"bridge/internal/port"
)

// keyPrefix namespaces Bridge keys inside a shared Redis database.
const keyPrefix = "bridge:pref:"

// Store implements port.PreferenceStore. Values never expire.
type Store struct {
	rdb *redis.Client
}

var _ port.PreferenceStore = (*Store)(nil)

// NewClient creates a Redis client from preference config.
func NewClient(cfg *config.PreferenceConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
}

// NewStore wraps an existing client.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("redis.Get: %w", err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.rdb.Close()
}
