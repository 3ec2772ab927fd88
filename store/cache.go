package store

import "sync"

// cache is a read-through map guarded by a reader-writer lock. GetOrInsert
// runs the create function at most once per key, which is what makes chunk
// and node allocation at-most-once even under concurrent lookups.
type cache[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func newCache[K comparable, V any]() *cache[K, V] {
	return &cache[K, V]{m: make(map[K]V)}
}

func (c *cache[K, V]) get(k K) (V, bool) {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	return v, ok
}

// getOrInsert returns the cached value for k, or inserts the value produced
// by create. The write lock is held across the check and the insert, so two
// racing callers cannot both create.
func (c *cache[K, V]) getOrInsert(k K, create func() (V, error)) (V, error) {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.m[k]; ok {
		return v, nil
	}
	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.m[k] = v
	return v, nil
}

// values snapshots the cached values.
func (c *cache[K, V]) values() []V {
	c.mu.RLock()
	out := make([]V, 0, len(c.m))
	for _, v := range c.m {
		out = append(out, v)
	}
	c.mu.RUnlock()
	return out
}

func (c *cache[K, V]) len() int {
	c.mu.RLock()
	n := len(c.m)
	c.mu.RUnlock()
	return n
}
