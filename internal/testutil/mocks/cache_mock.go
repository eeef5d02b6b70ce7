package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/jrjohn/academy-cloud-go/internal/cache"
)

// MockStore is an in-memory cache.Store counting calls per operation.
type MockStore struct {
	mu   sync.RWMutex
	data map[string]string

	GetCalls    int
	SetCalls    int
	DeleteCalls int

	// Error injection
	GetErr    error
	SetErr    error
	DeleteErr error
}

var _ cache.Store = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]string)}
}

func (s *MockStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GetCalls++
	if s.GetErr != nil {
		return "", s.GetErr
	}
	value, ok := s.data[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return value, nil
}

func (s *MockStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SetCalls++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.data[key] = value
	return nil
}

func (s *MockStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls++
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

// Has reports whether the key is cached.
func (s *MockStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok
}
