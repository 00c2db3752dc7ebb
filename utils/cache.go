// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"arborbook/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client, used for availability responses.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// AvailabilityCacheKey builds a versioned cache key for an availability range.
// The version counter is bumped on every booking or blocked-date write, so
// stale entries simply stop being addressed and expire on their own. Returns
// an empty key when caching is not initialized.
func AvailabilityCacheKey(ctx context.Context, start, end string) (string, error) {
	if CacheClient == nil {
		return "", nil
	}
	ver, err := CacheClient.Get(ctx, AvailabilityVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("%s%d:%s:%s", AvailabilityCachePrefix, ver, start, end), nil
}

// BumpAvailabilityVersion invalidates all cached availability ranges.
func BumpAvailabilityVersion(ctx context.Context) {
	if CacheClient == nil {
		return
	}
	if err := CacheClient.Incr(ctx, AvailabilityVersionKey).Err(); err != nil {
		GetLogger().Sugar().Warnf("failed to bump availability cache version: %v", err)
	}
}
