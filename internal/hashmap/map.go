package hashmap

// Map is implemented by every thread safe map of this package
type Map[K comparable, V any] interface {
	// Len returns the amount of stored entries
	Len() int

	// Lookup returns the value stored under the given key and whether one exists
	Lookup(key K) (V, bool)

	// Set stores a value under the given key
	Set(key K, value V)

	// Upsert atomically replaces the value stored under the given key with the result of the given function.
	// The function receives the current value and whether one exists; Upsert returns the stored result.
	Upsert(key K, update func(current V, ok bool) V) V

	// Delete removes the value stored under the given key
	Delete(key K)

	// Clear removes every entry
	Clear()
}
