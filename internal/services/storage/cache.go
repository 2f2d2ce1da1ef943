package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/phambaophuc/image-thumb/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	CacheKeyPrefix = "img_cache:"
	StatsKey       = "img_stats"

	statHits      = "hits"
	statGenerated = "generated"
)

// CacheKey is the index key of a derived image, named by its base name.
func CacheKey(derivedName string) string {
	return CacheKeyPrefix + derivedName
}

// RecordDerived stores metadata about a freshly generated image.
func (s *StorageService) RecordDerived(ctx context.Context, image models.DerivedImage) error {
	if !s.IndexEnabled() {
		return nil
	}

	data, err := json.Marshal(image)
	if err != nil {
		return fmt.Errorf("failed to marshal derived image: %w", err)
	}

	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, CacheKey(image.Key), data, s.cacheDuration)
	pipe.HIncrBy(ctx, StatsKey, statGenerated, 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (s *StorageService) RecordHit(ctx context.Context) error {
	if !s.IndexEnabled() {
		return nil
	}
	return s.redisClient.HIncrBy(ctx, StatsKey, statHits, 1).Err()
}

// GetDerived returns the indexed metadata, or nil on a miss.
func (s *StorageService) GetDerived(ctx context.Context, derivedName string) (*models.DerivedImage, error) {
	if !s.IndexEnabled() {
		return nil, nil
	}

	data, err := s.redisClient.Get(ctx, CacheKey(derivedName)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var image models.DerivedImage
	if err := json.Unmarshal(data, &image); err != nil {
		return nil, fmt.Errorf("cache decode error: %w", err)
	}
	return &image, nil
}

func (s *StorageService) Forget(ctx context.Context, derivedNames ...string) error {
	if !s.IndexEnabled() || len(derivedNames) == 0 {
		return nil
	}

	keys := make([]string, len(derivedNames))
	for i, name := range derivedNames {
		keys[i] = CacheKey(name)
	}
	return s.redisClient.Del(ctx, keys...).Err()
}

func (s *StorageService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	if !s.IndexEnabled() {
		return map[string]interface{}{"status": "not configured"}, nil
	}

	pipeline := s.redisClient.Pipeline()
	dbSizeCmd := pipeline.DBSize(ctx)
	countersCmd := pipeline.HGetAll(ctx, StatsKey)

	if _, err := pipeline.Exec(ctx); err != nil {
		return nil, fmt.Errorf("pipeline error: %w", err)
	}

	stats := map[string]interface{}{
		"db_keys":   dbSizeCmd.Val(),
		"hits":      int64(0),
		"generated": int64(0),
	}
	for field, raw := range countersCmd.Val() {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			stats[field] = n
		}
	}

	return stats, nil
}
