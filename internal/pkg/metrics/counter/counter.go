package counter

import (
	"context"
	"strconv"

	"github.com/trollfjell/imalink-web/internal/pkg/cache"
)

const (
	collectionViewsKey = "collection:counters:views"
	photoViewsKey      = "photo:counters:views"
)

// AddCollectionView increments the view counter for a collection in Redis.
// View counts are display-only; durable photo state lives in the remote
// API, so counters are read back from Redis directly instead of being
// flushed to a database.
func AddCollectionView(collectionID uint) error {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(collectionID), 10)
	return cache.GetClient().HIncrBy(ctx, collectionViewsKey, field, 1).Err()
}

// AddPhotoView increments the view counter for a photo in Redis, keyed by
// its hothash.
func AddPhotoView(hothash string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, photoViewsKey, hothash, 1).Err()
}

// GetCollectionViews reads the current view counter for a collection.
func GetCollectionViews(collectionID uint) (int64, error) {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(collectionID), 10)
	val, err := cache.GetClient().HGet(ctx, collectionViewsKey, field).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// GetAllCollectionViews reads all collection view counters at once, keyed
// by collection id.
func GetAllCollectionViews() (map[uint]int64, error) {
	ctx := context.Background()
	data, err := cache.GetClient().HGetAll(ctx, collectionViewsKey).Result()
	if err != nil {
		return nil, err
	}

	views := make(map[uint]int64, len(data))
	for k, v := range data {
		id, perr := strconv.ParseUint(k, 10, 64)
		if perr != nil {
			continue
		}
		n, ierr := strconv.ParseInt(v, 10, 64)
		if ierr != nil {
			continue
		}
		views[uint(id)] = n
	}
	return views, nil
}
