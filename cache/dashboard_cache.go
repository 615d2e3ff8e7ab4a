// Package cache keeps short-lived dashboard aggregates in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DashboardKeyPrefix  = "dashboard:v:"
	DashboardVersionKey = "dashboard:version"
	DefaultTTL          = time.Minute
)

// DashboardCache stores JSON values under a version prefix. Invalidate bumps
// the version so every earlier entry stops being read and expires on its own.
// A nil *DashboardCache, or one without a client, is a no-op.
type DashboardCache struct {
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewDashboardCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *DashboardCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DashboardCache{redis: client, ttl: ttl, log: log}
}

func (c *DashboardCache) enabled() bool {
	return c != nil && c.redis != nil
}

// Get decodes the cached value for key into dest and reports whether it hit.
func (c *DashboardCache) Get(ctx context.Context, key string, dest any) bool {
	if !c.enabled() {
		return false
	}
	version, err := c.version(ctx)
	if err != nil {
		return false
	}

	raw, err := c.redis.Get(ctx, c.key(version, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug("dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("failed to unmarshal cached dashboard value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set writes value in the background; failures are logged and dropped.
func (c *DashboardCache) Set(_ context.Context, key string, value any) {
	if !c.enabled() {
		return
	}
	body, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("failed to marshal dashboard value for cache", zap.String("key", key), zap.Error(err))
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := c.version(bgCtx)
		if err != nil {
			return
		}
		if err := c.redis.Set(bgCtx, c.key(version, key), body, c.ttl).Err(); err != nil {
			c.log.Warn("failed to cache dashboard value", zap.String("key", key), zap.Error(err))
		}
	}()
}

// Invalidate drops every cached aggregate by bumping the version.
func (c *DashboardCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	version, err := c.redis.Incr(ctx, DashboardVersionKey).Result()
	if err != nil {
		c.log.Error("failed to invalidate dashboard cache", zap.Error(err))
		return
	}
	c.log.Debug("dashboard cache invalidated", zap.Int64("version", version))
}

func (c *DashboardCache) version(ctx context.Context) (int64, error) {
	ver, err := c.redis.Get(ctx, DashboardVersionKey).Int64()
	if err == nil {
		return ver, nil
	}
	if errors.Is(err, redis.Nil) {
		// SetNX keeps a concurrent Invalidate from being overwritten.
		if err := c.redis.SetNX(ctx, DashboardVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.redis.Get(ctx, DashboardVersionKey).Int64()
	}
	return 0, err
}

func (c *DashboardCache) key(version int64, key string) string {
	return fmt.Sprintf("%s%d:%s", DashboardKeyPrefix, version, key)
}
