package kvstore

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/cache"
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/sentry"
)

// collectionCacheTTL bounds how stale a cached collection snapshot can
// get when another instance writes to the store. Writes through this
// instance invalidate immediately.
const collectionCacheTTL = 30 * time.Second

// cachedStore caches whole-collection snapshots in front of the HTTP
// client. LoadAll is the only read the adapter exposes, so the cache
// holds one entry per collection and drops it on any write.
type cachedStore struct {
	next   Store
	cache  cache.Cache
	logger *logger.Logger
}

// NewStore builds the record store stack: the HTTP client wrapped in
// the collection cache.
func NewStore(cfg *config.Configuration, log *logger.Logger, sentrySvc *sentry.Service, c cache.Cache) Store {
	return &cachedStore{
		next:   NewClient(cfg, log, sentrySvc),
		cache:  c,
		logger: log,
	}
}

func collectionCacheKey(collection string) string {
	return cache.PrefixCollection + collection
}

func (s *cachedStore) LoadAll(ctx context.Context, collection string) ([]Record, error) {
	key := collectionCacheKey(collection)
	if v, found := s.cache.Get(ctx, key); found {
		if records, ok := v.([]Record); ok {
			return records, nil
		}
	}

	records, err := s.next.LoadAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, records, collectionCacheTTL)
	return records, nil
}

func (s *cachedStore) Put(ctx context.Context, collection string, record Record) error {
	if err := s.next.Put(ctx, collection, record); err != nil {
		return err
	}
	s.cache.Delete(ctx, collectionCacheKey(collection))
	return nil
}

func (s *cachedStore) Update(ctx context.Context, collection, key string, fields Record) error {
	if err := s.next.Update(ctx, collection, key, fields); err != nil {
		return err
	}
	s.cache.Delete(ctx, collectionCacheKey(collection))
	return nil
}

func (s *cachedStore) Delete(ctx context.Context, collection, key string) error {
	if err := s.next.Delete(ctx, collection, key); err != nil {
		return err
	}
	s.cache.Delete(ctx, collectionCacheKey(collection))
	return nil
}
