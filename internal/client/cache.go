package client

import (
	"time"

	"github.com/videra/data-server/internal/hashmap"
)

// Cache keeps API responses for a limited time.
// Every successful response is additionally remembered as the last known value of its key so that it can be
// returned as a stale value when the API becomes unreachable. Last known values expire after the stale lifetime.
type Cache struct {
	fresh         *hashmap.ExpiringMap[string, any]
	lastKnown     *hashmap.ExpiringMap[string, any]
	lifetime      time.Duration
	staleLifetime time.Duration
}

// NewCache creates a new response cache whose entries stay fresh for the given lifetime and are kept as last known
// values for the stale lifetime. Close has to be called to stop the cleanup tasks of the cache.
func NewCache(lifetime, staleLifetime time.Duration) *Cache {
	if staleLifetime < lifetime {
		staleLifetime = lifetime
	}
	cache := &Cache{
		fresh:         hashmap.NewExpiring[string, any](lifetime),
		lastKnown:     hashmap.NewExpiring[string, any](staleLifetime),
		lifetime:      lifetime,
		staleLifetime: staleLifetime,
	}
	if lifetime > 0 {
		cache.fresh.ScheduleCleanupTask(lifetime)
	}
	if staleLifetime > 0 {
		cache.lastKnown.ScheduleCleanupTask(staleLifetime)
	}
	return cache
}

// Get returns the fresh value stored under the given key
func (cache *Cache) Get(key string) (any, bool) {
	if cache.lifetime <= 0 {
		return nil, false
	}
	return cache.fresh.Lookup(key)
}

// Set stores a value under the given key
func (cache *Cache) Set(key string, value any) {
	if cache.lifetime > 0 {
		cache.fresh.Set(key, value)
	}
	if cache.staleLifetime > 0 {
		cache.lastKnown.Set(key, value)
	}
}

// LastKnown returns the most recent value stored under the given key unless it is older than the stale lifetime
func (cache *Cache) LastKnown(key string) (any, bool) {
	return cache.lastKnown.Lookup(key)
}

// Clear drops every fresh value; last known values are kept
func (cache *Cache) Clear() {
	cache.fresh.Clear()
}

// Close stops the cleanup tasks of the cache
func (cache *Cache) Close() {
	cache.fresh.StopCleanupTask()
	cache.lastKnown.StopCleanupTask()
}
