package skin

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when a skin name is not in the index.
var ErrNotFound = errors.New("skin: not found")

// Resolver resolves a skin name to a decoded skin.
type Resolver interface {
	Resolve(name string) (*Skin, error)
}

// Cache is a concurrency-safe skin cache backed by an Index. Failed loads
// are cached too, so a broken file is read once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	skin *Skin
	err  error
}

// NewCache creates a cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a skin by name.
func (c *Cache) Resolve(name string) (*Skin, error) {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	// Fast path: read lock
	c.mu.RLock()
	if e, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return e.skin, e.err
	}
	c.mu.RUnlock()

	s, err := Load(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, exists := c.items[path]; exists {
		return e.skin, e.err
	}
	c.items[path] = &cacheEntry{skin: s, err: err}
	return s, err
}
