package hierarchy

import (
	"sync"

	"github.com/localnerve/fleetboard/internal/registry"
)

// Cache memoizes recursive asset sets for a single snapshot. It binds to the
// first snapshot id it stores, or to the id passed to Activate. Puts for any
// other snapshot are ignored, so requests still pinned to a replaced
// snapshot cannot evict the active one.
type Cache struct {
	mu         sync.RWMutex
	snapshotID string
	entries    map[string][]registry.Asset
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]registry.Asset)}
}

// Get returns a copy of the cached set for systemID in snapshotID.
func (c *Cache) Get(snapshotID, systemID string) ([]registry.Asset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if snapshotID != c.snapshotID {
		return nil, false
	}
	assets, ok := c.entries[systemID]
	if !ok {
		return nil, false
	}
	return append([]registry.Asset(nil), assets...), true
}

// Put stores a set for the bound snapshot.
func (c *Cache) Put(snapshotID, systemID string, assets []registry.Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshotID == "" {
		c.snapshotID = snapshotID
	}
	if snapshotID != c.snapshotID {
		return
	}
	c.entries[systemID] = append([]registry.Asset(nil), assets...)
}

// Activate drops every entry and binds the cache to snapshotID.
func (c *Cache) Activate(snapshotID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshotID = snapshotID
	c.entries = make(map[string][]registry.Asset)
}

// Len is the number of cached systems.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
