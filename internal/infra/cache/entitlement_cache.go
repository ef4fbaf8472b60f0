package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"pedagoia-backend/internal/domain/entitlement"
)

// EntitlementCache keeps resolved verdicts in Redis for a short TTL so hot
// paths (the access guard on every request) don't hammer Postgres and
// Stripe. Misses and Redis errors both read as "not cached".
type EntitlementCache struct {
	client *redis.Client
}

// NewEntitlementCache connects to the given Redis URL. Returns nil (cache
// disabled) when the URL is empty or unparsable.
func NewEntitlementCache(redisURL string) *EntitlementCache {
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil
	}
	return &EntitlementCache{client: redis.NewClient(opts)}
}

func entitlementKey(userID uint) string {
	return fmt.Sprintf("entitlement:%d", userID)
}

func (c *EntitlementCache) Get(ctx context.Context, userID uint) (*entitlement.Result, bool) {
	raw, err := c.client.Get(ctx, entitlementKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var r entitlement.Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false
	}
	return &r, true
}

func (c *EntitlementCache) Set(ctx context.Context, userID uint, r entitlement.Result, ttl time.Duration) {
	raw, err := json.Marshal(r)
	if err != nil {
		return
	}
	c.client.Set(ctx, entitlementKey(userID), raw, ttl)
}

// Invalidate drops the cached verdict, used after webhook or admin writes.
func (c *EntitlementCache) Invalidate(ctx context.Context, userID uint) {
	c.client.Del(ctx, entitlementKey(userID))
}
