// SPDX-License-Identifier: MIT
package textpad

import "github.com/tidwall/tinylru"

// DefaultCacheSize is the number of messages a Cache keeps by default
const DefaultCacheSize = 256

// Cache memoizes a Generator by message. Safe for concurrent use.
type Cache struct {
	gen Generator
	lru tinylru.LRU
}

// NewCache returns a cache of at most size messages padded by gen.
// A size of 1 recomputes only when the message changes.
func NewCache(gen Generator, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c := &Cache{gen: gen}
	c.lru.Resize(size)
	return c
}

// Generate returns the padded message, computing it on a miss
func (c *Cache) Generate(message string) string {
	if v, ok := c.lru.Get(message); ok {
		return v.(string)
	}
	text := c.gen.Generate(message)
	c.lru.Set(message, text)
	return text
}

// Len returns the number of cached messages
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Resize changes how many messages the cache keeps, dropping the least
// recently used ones when it shrinks
func (c *Cache) Resize(size int) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c.lru.Resize(size)
}
