package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// dashboardKeyPrefix is the prefix for all cached dashboard payload keys
const dashboardKeyPrefix = "dashboard:resp:"

// DashboardCache keeps rendered dashboard responses in Redis so repeated
// officer queries skip the aggregate scans. Only k-anonymised dashboard
// payloads go through this cache.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

// NewDashboardCache creates a new DashboardCache instance
func NewDashboardCache(client *redis.Client, ttl time.Duration, log logger.Interface) *DashboardCache {
	return &DashboardCache{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

// DashboardKey derives a stable cache key from an endpoint name and its
// raw query string.
func DashboardKey(endpoint string, query string) string {
	sum := sha256.Sum256([]byte(query))
	return endpoint + ":" + hex.EncodeToString(sum[:8])
}

// Key derives the cache key for an endpoint and its raw query string.
func (c *DashboardCache) Key(endpoint string, query string) string {
	return DashboardKey(endpoint, query)
}

// Get returns the cached payload for key, with found=false on a miss.
func (c *DashboardCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, dashboardKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read dashboard cache: %w", err)
	}

	return data, true, nil
}

// Set stores payload under key for the configured TTL.
func (c *DashboardCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, dashboardKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write dashboard cache: %w", err)
	}

	return nil
}

// InvalidateAll drops every cached dashboard payload. Called after a
// materialized view refresh so the next officer query sees fresh numbers.
func (c *DashboardCache) InvalidateAll(ctx context.Context) error {
	deleted := 0

	iter := c.client.Scan(ctx, 0, dashboardKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warnw("failed to delete cached dashboard payload", "key", iter.Val(), "error", err)
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan dashboard cache keys: %w", err)
	}

	if deleted > 0 {
		c.logger.Debugw("dashboard cache invalidated", "keys", deleted)
	}
	return nil
}
