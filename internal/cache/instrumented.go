package cache

import (
	"context"
	"errors"
	"time"
)

// HitRecorder receives cache hit/miss counts. Implemented by the
// observability metrics provider.
type HitRecorder interface {
	RecordCacheHit(cacheName string)
	RecordCacheMiss(cacheName string)
}

type instrumentedStore struct {
	next    Store
	name    string
	metrics HitRecorder
}

// NewInstrumentedStore wraps a store with hit/miss accounting.
func NewInstrumentedStore(next Store, name string, metrics HitRecorder) Store {
	return &instrumentedStore{next: next, name: name, metrics: metrics}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.next.Get(ctx, key)
	switch {
	case err == nil:
		s.metrics.RecordCacheHit(s.name)
	case errors.Is(err, ErrMiss):
		s.metrics.RecordCacheMiss(s.name)
	}
	return value, err
}

func (s *instrumentedStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.next.Set(ctx, key, value, ttl)
}

func (s *instrumentedStore) Delete(ctx context.Context, keys ...string) error {
	return s.next.Delete(ctx, keys...)
}
