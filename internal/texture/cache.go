package texture

import (
	"fmt"
	"image"
	"sync"
)

// Resolver resolves a pattern name to a decoded image.
type Resolver interface {
	Resolve(name string) (*image.NRGBA, error)
}

// Cache is a concurrency-safe image cache. Batch scenes that share a pattern
// image decode it once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a cache. Names are looked up in index first and fall back
// to being treated as file paths; index may be nil.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches an image by index name or path. Failed loads are
// cached too so a broken file is only reported once per name.
func (c *Cache) Resolve(name string) (*image.NRGBA, error) {
	path := name
	if c.index != nil {
		if p, ok := c.index.ResolvePath(name); ok {
			path = p
		}
	}
	if path == "" {
		return nil, fmt.Errorf("texture: empty image name")
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadImage(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img, err
}

// Len returns the number of cached entries, including failed loads.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
