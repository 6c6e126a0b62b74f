package cache

// Cache is a generic lazily populated map with insertion-ordered
// iteration. Entries are never evicted; they stay until Clear.
//
// Cache is intended for per-object caches of GPU views and shader sets,
// whose key space is small and finite. It is not safe for concurrent use:
// the owner serializes access.
type Cache[K comparable, V any] struct {
	entries map[K]V
	order   []K

	hits   uint64
	misses uint64
}

// New creates an empty cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]V),
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Set stores a value in the cache. Replacing an existing key keeps its
// position in iteration order.
func (c *Cache[K, V]) Set(key K, value V) {
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = value
}

// GetOrCreate returns the cached value or creates it.
// If create fails nothing is stored and the error is returned.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	if v, ok := c.entries[key]; ok {
		c.hits++
		return v, nil
	}
	c.misses++

	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.order = append(c.order, key)
	c.entries[key] = v
	return v, nil
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// Range calls fn for every entry in insertion order until fn returns false.
func (c *Cache[K, V]) Range(fn func(key K, value V) bool) {
	for _, k := range c.order {
		if !fn(k, c.entries[k]) {
			return
		}
	}
}

// Clear removes all entries. If release is non-nil it is called for each
// value in insertion order first.
func (c *Cache[K, V]) Clear(release func(V)) {
	if release != nil {
		for _, k := range c.order {
			release(c.entries[k])
		}
	}
	c.entries = make(map[K]V)
	c.order = nil
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Len:    len(c.entries),
		Hits:   c.hits,
		Misses: c.misses,
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits is the number of lookups answered from the cache.
	Hits uint64
	// Misses is the number of lookups that found no entry.
	Misses uint64
}
