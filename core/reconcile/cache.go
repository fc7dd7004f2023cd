package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// PlanCache holds a dry-run plan built at a point in time.
type PlanCache struct {
	// Plan is the cached plan.
	Plan *Plan

	// Built is the timestamp when this cache was built.
	Built time.Time

	// TTL is the time-to-live for this cache.
	TTL time.Duration
}

// IsExpired returns true if this cache has expired based on its TTL.
func (c *PlanCache) IsExpired() bool {
	if c.TTL == 0 {
		return true // No caching
	}
	return time.Since(c.Built) > c.TTL
}

// cacheStore holds plan caches keyed by spec cache key.
type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*PlanCache
	sf     singleflight.Group
}

var globalCacheStore = &cacheStore{
	caches: make(map[string]*PlanCache),
}

// GetOrBuildPlan returns the cached plan for spec, building a new one when absent or
// expired. Concurrent callers share one build.
func GetOrBuildPlan(ctx context.Context, spec *Spec, ttl time.Duration) (*Plan, error) {
	cacheKey := spec.CacheKey()

	globalCacheStore.mu.RLock()
	cache, exists := globalCacheStore.caches[cacheKey]
	globalCacheStore.mu.RUnlock()

	if exists && !cache.IsExpired() {
		return cache.Plan, nil
	}

	result, err, _ := globalCacheStore.sf.Do(cacheKey, func() (interface{}, error) {
		globalCacheStore.mu.RLock()
		cache, exists := globalCacheStore.caches[cacheKey]
		globalCacheStore.mu.RUnlock()

		if exists && !cache.IsExpired() {
			return cache.Plan, nil
		}

		plan, err := ReconcileWithPlan(ctx, spec)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.caches[cacheKey] = &PlanCache{Plan: plan, Built: time.Now(), TTL: ttl}
		globalCacheStore.mu.Unlock()

		return plan, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Plan), nil
}

// InvalidateCache drops the cached plan for spec. Applying a plan calls it so the next
// request sees the new versions.
func InvalidateCache(spec *Spec) {
	cacheKey := spec.CacheKey()
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, cacheKey)
	globalCacheStore.mu.Unlock()
}
