// Package cache provides the Redis-backed suggestion cache. Caching is an
// optimization only; every failure degrades to a miss and the caller goes to
// the suggestion backend instead.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/config"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
)

// SuggestionCache caches normalized suggestion responses in Redis
type SuggestionCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSuggestionCache creates a Redis-backed suggestion cache. The initial
// ping is a connectivity check; a dead Redis at startup is an error, a dead
// Redis at runtime is just misses.
func NewSuggestionCache(cfg config.RedisConfig, logger *zap.Logger) (*SuggestionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.Database,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &SuggestionCache{
		client: client,
		logger: logger.Named("suggestion-cache"),
	}, nil
}

// Get returns the cached suggestions for the key, reporting a miss on any
// error.
func (c *SuggestionCache) Get(ctx context.Context, key string) ([]outbound.MealSuggestion, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var suggestions []outbound.MealSuggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		c.logger.Warn("Corrupt cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return suggestions, true
}

// Set stores the suggestions under the key for the given TTL. Write failures
// are logged and swallowed.
func (c *SuggestionCache) Set(ctx context.Context, key string, suggestions []outbound.MealSuggestion, ttl time.Duration) {
	raw, err := json.Marshal(suggestions)
	if err != nil {
		c.logger.Warn("Cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Ping checks Redis connectivity, for readiness probes
func (c *SuggestionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool
func (c *SuggestionCache) Close() error {
	return c.client.Close()
}

// NoopSuggestionCache is used when Redis is disabled; every read misses.
type NoopSuggestionCache struct{}

// Get always reports a miss
func (NoopSuggestionCache) Get(ctx context.Context, key string) ([]outbound.MealSuggestion, bool) {
	return nil, false
}

// Set discards the entry
func (NoopSuggestionCache) Set(ctx context.Context, key string, suggestions []outbound.MealSuggestion, ttl time.Duration) {
}
