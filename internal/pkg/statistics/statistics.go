// Package statistics keeps the home page counters in the cache so every
// page view does not hit the remote API.
package statistics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/trollfjell/imalink-web/internal/pkg/cache"
)

const (
	CacheKeyCachedPhotos    = "statistics:photos:cached"
	CacheKeyCollections     = "statistics:collections:total"
	CacheKeyCollectionViews = "statistics:collections:views"
	CacheExpiration         = 30 * time.Minute
)

// StatisticsData holds the counters shown on the home page
type StatisticsData struct {
	CachedPhotos    int
	Collections     int
	CollectionViews int64
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the counters are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// ResetCacheUpdateTimer forces a refresh on the next check.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache writes fresh counters to the cache.
func UpdateStatisticsCache(data StatisticsData) error {
	if err := cache.Set(CacheKeyCachedPhotos, strconv.Itoa(data.CachedPhotos), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyCollections, strconv.Itoa(data.Collections), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyCollectionViews, strconv.FormatInt(data.CollectionViews, 10), CacheExpiration); err != nil {
		return err
	}

	cacheUpdateMutex.Lock()
	lastCacheUpdate = time.Now()
	cacheUpdateMutex.Unlock()
	return nil
}

// GetStatisticsData reads the counters from the cache. Missing keys
// simply yield zeroes.
func GetStatisticsData() StatisticsData {
	var data StatisticsData

	if v, err := cache.Get(CacheKeyCachedPhotos); err == nil {
		data.CachedPhotos, _ = strconv.Atoi(v)
	}
	if v, err := cache.Get(CacheKeyCollections); err == nil {
		data.Collections, _ = strconv.Atoi(v)
	}
	if v, err := cache.Get(CacheKeyCollectionViews); err == nil {
		data.CollectionViews, _ = strconv.ParseInt(v, 10, 64)
	} else {
		log.Debugf("[Statistics] counters not cached yet")
	}

	return data
}
