package hashmap

import "sync"

// NormalMap implements the Map interface by guarding a builtin map with a RWMutex
type NormalMap[K comparable, V any] struct {
	mtx     sync.RWMutex
	entries map[K]V
}

var _ Map[int, any] = (*NormalMap[int, any])(nil)

// NewNormal creates a new NormalMap
func NewNormal[K comparable, V any]() *NormalMap[K, V] {
	return &NormalMap[K, V]{
		entries: make(map[K]V),
	}
}

func (obj *NormalMap[K, V]) Len() int {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return len(obj.entries)
}

func (obj *NormalMap[K, V]) Lookup(key K) (V, bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	val, ok := obj.entries[key]
	return val, ok
}

func (obj *NormalMap[K, V]) Set(key K, value V) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.entries[key] = value
}

func (obj *NormalMap[K, V]) Upsert(key K, update func(current V, ok bool) V) V {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	current, ok := obj.entries[key]
	next := update(current, ok)
	obj.entries[key] = next
	return next
}

func (obj *NormalMap[K, V]) Delete(key K) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	delete(obj.entries, key)
}

func (obj *NormalMap[K, V]) Clear() {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.entries = make(map[K]V)
}

// deleteIf removes every entry matching the given predicate and returns the amount of removed entries
func (obj *NormalMap[K, V]) deleteIf(predicate func(key K, value V) bool) int {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	removed := 0
	for key, val := range obj.entries {
		if predicate(key, val) {
			delete(obj.entries, key)
			removed++
		}
	}
	return removed
}
