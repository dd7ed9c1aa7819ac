package hashmap

import (
	"sync"
	"time"

	"github.com/videra/data-server/internal/task"
)

type expiringEntry[T any] struct {
	raw     T
	expires time.Time
}

func (entry *expiringEntry[T]) expired(now time.Time) bool {
	return !now.Before(entry.expires)
}

// ExpiringMap implements the Map interface on top of a NormalMap whose entries expire.
// Every entry carries its own lifetime; expired entries are never returned and are removed lazily on access or by
// the cleanup task.
type ExpiringMap[K comparable, V any] struct {
	normal   *NormalMap[K, *expiringEntry[V]]
	lifetime time.Duration
	now      func() time.Time

	cleanupMtx  sync.Mutex
	cleanupTask *task.RepeatingTask
}

var _ Map[int, any] = (*ExpiringMap[int, any])(nil)

// NewExpiring creates a new expiring map whose entries live for the given default lifetime.
// Expired entries are hidden right away but only freed on access or once ScheduleCleanupTask was called.
func NewExpiring[K comparable, V any](lifetime time.Duration) *ExpiringMap[K, V] {
	return &ExpiringMap[K, V]{
		normal:   NewNormal[K, *expiringEntry[V]](),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// ScheduleCleanupTask starts a task removing expired entries in the given interval.
// StopCleanupTask has to be called once the map is no longer needed as the map is never garbage collected otherwise.
func (obj *ExpiringMap[K, V]) ScheduleCleanupTask(tick time.Duration) {
	obj.cleanupMtx.Lock()
	defer obj.cleanupMtx.Unlock()
	if obj.cleanupTask != nil {
		return
	}
	obj.cleanupTask = task.NewRepeating(func() {
		obj.Cleanup()
	}, tick)
	obj.cleanupTask.Start()
}

// StopCleanupTask stops the cleanup task
func (obj *ExpiringMap[K, V]) StopCleanupTask() {
	obj.cleanupMtx.Lock()
	cleanupTask := obj.cleanupTask
	obj.cleanupTask = nil
	obj.cleanupMtx.Unlock()

	if cleanupTask != nil {
		cleanupTask.Stop(false)
	}
}

// Cleanup removes all expired entries and returns the amount of removed entries
func (obj *ExpiringMap[K, V]) Cleanup() int {
	now := obj.now()
	return obj.normal.deleteIf(func(_ K, entry *expiringEntry[V]) bool {
		return entry.expired(now)
	})
}

// Len returns the amount of stored entries, including expired ones that were not cleaned up yet
func (obj *ExpiringMap[K, V]) Len() int {
	return obj.normal.Len()
}

// Lookup returns the value stored under the given key and whether one exists that did not expire yet
func (obj *ExpiringMap[K, V]) Lookup(key K) (V, bool) {
	var zero V
	entry, ok := obj.normal.Lookup(key)
	if !ok {
		return zero, false
	}
	if entry.expired(obj.now()) {
		obj.normal.deleteIf(func(candidate K, current *expiringEntry[V]) bool {
			return candidate == key && current == entry
		})
		return zero, false
	}
	return entry.raw, true
}

// Set stores a value using the default lifetime of the map
func (obj *ExpiringMap[K, V]) Set(key K, value V) {
	obj.SetWithLifetime(key, value, obj.lifetime)
}

// SetWithLifetime stores a value that expires after the given lifetime
func (obj *ExpiringMap[K, V]) SetWithLifetime(key K, value V, lifetime time.Duration) {
	obj.normal.Set(key, &expiringEntry[V]{
		raw:     value,
		expires: obj.now().Add(lifetime),
	})
}

// Upsert atomically replaces the value stored under the given key.
// Expired values are reported as missing; the result lives for the default lifetime, starting now.
func (obj *ExpiringMap[K, V]) Upsert(key K, update func(current V, ok bool) V) V {
	now := obj.now()
	entry := obj.normal.Upsert(key, func(current *expiringEntry[V], ok bool) *expiringEntry[V] {
		var value V
		if ok && !current.expired(now) {
			value = current.raw
		} else {
			ok = false
		}
		return &expiringEntry[V]{
			raw:     update(value, ok),
			expires: now.Add(obj.lifetime),
		}
	})
	return entry.raw
}

func (obj *ExpiringMap[K, V]) Delete(key K) {
	obj.normal.Delete(key)
}

func (obj *ExpiringMap[K, V]) Clear() {
	obj.normal.Clear()
}
