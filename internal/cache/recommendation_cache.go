// internal/cache/recommendation_cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pharmastock/pharmastock/internal/config"
	"github.com/pharmastock/pharmastock/internal/domain"
)

const (
	recommendationKeyPrefix   = "recommendations:run"
	recommendationScanBatches = 100
)

// RecommendationCache stores ranked runs keyed by the data-version token of
// the snapshot they were computed from. A new token naturally misses, so
// stale runs are never served after the underlying data changes.
type RecommendationCache interface {
	Get(ctx context.Context, dataVersion string) (*domain.RecommendationList, bool, error)
	Set(ctx context.Context, dataVersion string, list *domain.RecommendationList) error
	InvalidateAll(ctx context.Context) error
}

type redisRecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopRecommendationCache struct{}

func NewRecommendationCache(cfg config.CacheConfig) (RecommendationCache, error) {
	if !cfg.Enabled {
		return &noopRecommendationCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisRecommendationCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopRecommendationCache() RecommendationCache {
	return &noopRecommendationCache{}
}

func (c *redisRecommendationCache) Get(ctx context.Context, dataVersion string) (*domain.RecommendationList, bool, error) {
	payload, err := c.client.Get(ctx, runKey(dataVersion)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var list domain.RecommendationList
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached recommendations: %w", err)
	}
	return &list, true, nil
}

func (c *redisRecommendationCache) Set(ctx context.Context, dataVersion string, list *domain.RecommendationList) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}
	if err := c.client.Set(ctx, runKey(dataVersion), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisRecommendationCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, recommendationKeyPrefix, recommendationScanBatches)
}

func runKey(dataVersion string) string {
	return fmt.Sprintf("%s:%s", recommendationKeyPrefix, dataVersion)
}

func (c *noopRecommendationCache) Get(ctx context.Context, dataVersion string) (*domain.RecommendationList, bool, error) {
	return nil, false, nil
}

func (c *noopRecommendationCache) Set(ctx context.Context, dataVersion string, list *domain.RecommendationList) error {
	return nil
}

func (c *noopRecommendationCache) InvalidateAll(ctx context.Context) error {
	return nil
}
