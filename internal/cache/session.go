package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

const keyPrefixSession = "academy:session:"

// SessionCache holds the authenticated user document keyed by user id.
// The auth middleware requires a live entry, so evicting it on logout
// immediately invalidates otherwise-valid access tokens.
type SessionCache struct {
	store Store
	ttl   time.Duration
}

// NewSessionCache creates a SessionCache with the given TTL.
func NewSessionCache(store Store, ttl time.Duration) *SessionCache {
	return &SessionCache{store: store, ttl: ttl}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("%s%d", keyPrefixSession, userID)
}

// Get returns the cached session user, or nil on miss.
func (c *SessionCache) Get(ctx context.Context, userID uint) (*entity.User, error) {
	raw, err := c.store.Get(ctx, sessionKey(userID))
	if err == ErrMiss {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Put writes the session user. Called on login, token refresh and every
// profile mutation so the cached view tracks the store.
func (c *SessionCache) Put(ctx context.Context, user *entity.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, sessionKey(user.ID), string(data), c.ttl)
}

// Evict removes the session entry. Called on logout and account deletion.
func (c *SessionCache) Evict(ctx context.Context, userID uint) error {
	return c.store.Delete(ctx, sessionKey(userID))
}
