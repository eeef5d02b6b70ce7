// Package cache implements the redis lookaside caches: per-user sessions
// and the course catalog. Values are JSON-serialized documents; the cache
// is consulted before the store and populated on miss, never authoritative.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Store is the key/value contract the typed caches are built on.
type Store interface {
	// Get returns the value for key, or ErrMiss
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key with an optional TTL (0 = no expiry)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Delete removes the given keys
	Delete(ctx context.Context, keys ...string) error
}

// redisStore implements Store on a redis client.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed Store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
