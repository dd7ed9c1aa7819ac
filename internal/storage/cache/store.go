package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/videra/data-server/internal/hashmap"
)

// Store represents the backend the caching driver keeps serialized results in.
// Every resource carries a generation number; bumping it invalidates every key built with an older one.
type Store interface {
	// Get retrieves the value stored under the given key and whether it exists
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under the given key for a specific lifetime
	Set(ctx context.Context, key string, value []byte, lifetime time.Duration) error

	// Generation retrieves the current generation of a resource
	Generation(ctx context.Context, resource string) (uint64, error)

	// Bump increments the generation of a resource
	Bump(ctx context.Context, resource string) error

	// Close releases the resources held by the store
	Close() error
}

// MemoryStore implements the Store interface using an in-process expiring map
type MemoryStore struct {
	entries     *hashmap.ExpiringMap[string, []byte]
	generations *hashmap.NormalMap[string, uint64]
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-process store whose expired entries are cleaned up in the given interval
func NewMemoryStore(lifetime, cleanupInterval time.Duration) *MemoryStore {
	entries := hashmap.NewExpiring[string, []byte](lifetime)
	if cleanupInterval > 0 {
		entries.ScheduleCleanupTask(cleanupInterval)
	}
	return &MemoryStore{
		entries:     entries,
		generations: hashmap.NewNormal[string, uint64](),
	}
}

// Get retrieves the value stored under the given key and whether it exists
func (store *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, ok := store.entries.Lookup(key)
	return val, ok, nil
}

// Set stores a value under the given key for a specific lifetime
func (store *MemoryStore) Set(_ context.Context, key string, value []byte, lifetime time.Duration) error {
	store.entries.SetWithLifetime(key, value, lifetime)
	return nil
}

// Generation retrieves the current generation of a resource
func (store *MemoryStore) Generation(_ context.Context, resource string) (uint64, error) {
	generation, _ := store.generations.Lookup(resource)
	return generation, nil
}

// Bump increments the generation of a resource
func (store *MemoryStore) Bump(_ context.Context, resource string) error {
	store.generations.Upsert(resource, func(current uint64, _ bool) uint64 {
		return current + 1
	})
	return nil
}

// Close stops the cleanup task and drops every entry
func (store *MemoryStore) Close() error {
	store.entries.StopCleanupTask()
	store.entries.Clear()
	return nil
}

// RedisStore implements the Store interface using Redis so that multiple server instances share one cache
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a new Redis store; every key is prefixed with the given prefix
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves the value stored under the given key and whether it exists
func (store *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := store.client.Get(ctx, store.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value under the given key for a specific lifetime
func (store *RedisStore) Set(ctx context.Context, key string, value []byte, lifetime time.Duration) error {
	return store.client.Set(ctx, store.prefix+key, value, lifetime).Err()
}

// Generation retrieves the current generation of a resource
func (store *RedisStore) Generation(ctx context.Context, resource string) (uint64, error) {
	gen, err := store.client.Get(ctx, store.generationKey(resource)).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return gen, nil
}

// Bump increments the generation of a resource
func (store *RedisStore) Bump(ctx context.Context, resource string) error {
	return store.client.Incr(ctx, store.generationKey(resource)).Err()
}

// Close closes the underlying Redis client
func (store *RedisStore) Close() error {
	return store.client.Close()
}

func (store *RedisStore) generationKey(resource string) string {
	return store.prefix + "generation:" + resource
}
