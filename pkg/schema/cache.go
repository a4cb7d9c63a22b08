package schema

import (
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache remembers the route-table fingerprint behind each zone's last
// successful extraction. When the projection has not changed and the
// document is still on disk, the schema tool does not need to run again.
type Cache struct {
	entries *lru.Cache[string, cacheEntry]
}

type cacheEntry struct {
	fingerprint string
	path        string
}

// DefaultCacheSize bounds the number of remembered zones.
const DefaultCacheSize = 128

// NewCache creates a cache holding up to size zone entries.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Lookup returns the cached document path when the zone's fingerprint
// matches and the document still exists on disk.
func (c *Cache) Lookup(zone, fingerprint string) (string, bool) {
	entry, ok := c.entries.Get(zone)
	if !ok || entry.fingerprint != fingerprint {
		return "", false
	}
	if _, err := os.Stat(entry.path); err != nil {
		c.entries.Remove(zone)
		return "", false
	}
	return entry.path, true
}

// Store records a successful extraction.
func (c *Cache) Store(zone, fingerprint, path string) {
	c.entries.Add(zone, cacheEntry{fingerprint: fingerprint, path: path})
}

// Purge drops all entries.
func (c *Cache) Purge() {
	c.entries.Purge()
}
