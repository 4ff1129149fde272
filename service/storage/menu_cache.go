package storage

import (
	"context"
	"time"

	"LandokProject/logger"
	rds "LandokProject/service/storage/redis"

	"github.com/redis/go-redis/v9"
)

const (
	menuCacheKey = "landok:menu:foods"
	menuCacheTTL = 60 * time.Second
)

// MenuCache is a best-effort Redis cache in front of the public food list.
// A nil or unreachable Redis degrades every call to a miss/no-op; the menu
// is always served from Mongo in that case.

// GetMenu returns the cached food list JSON, or ok=false on miss.
func GetMenu(ctx context.Context) ([]byte, bool) {
	cli := rds.GetRedis()
	if cli == nil {
		return nil, false
	}
	raw, err := cli.Get(ctx, menuCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warnf("[menu-cache] get failed: %v", err)
		}
		return nil, false
	}
	return raw, true
}

// SetMenu stores the food list JSON with a short TTL.
func SetMenu(ctx context.Context, raw []byte) {
	cli := rds.GetRedis()
	if cli == nil {
		return
	}
	if err := cli.Set(ctx, menuCacheKey, raw, menuCacheTTL).Err(); err != nil {
		logger.Warnf("[menu-cache] set failed: %v", err)
	}
}

// InvalidateMenu drops the cached list; called after any food write.
func InvalidateMenu(ctx context.Context) {
	cli := rds.GetRedis()
	if cli == nil {
		return
	}
	if err := cli.Del(ctx, menuCacheKey).Err(); err != nil {
		logger.Warnf("[menu-cache] invalidate failed: %v", err)
	}
}
