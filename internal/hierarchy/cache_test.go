package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/fleetboard/internal/registry"
)

func TestCache_SnapshotChangeInvalidates(t *testing.T) {
	c := NewCache()
	c.Put("snap-1", "root", []registry.Asset{{ID: "a1"}})

	got, ok := c.Get("snap-1", "root")
	require.True(t, ok)
	assert.Equal(t, "a1", got[0].ID)

	_, ok = c.Get("snap-2", "root")
	assert.False(t, ok)

	c.Activate("snap-2")
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("snap-1", "root")
	assert.False(t, ok, "entries from the previous snapshot must be gone")

	c.Put("snap-2", "child", []registry.Asset{{ID: "a2"}})
	assert.Equal(t, 1, c.Len())
}

func TestCache_StalePutKeepsActiveEntries(t *testing.T) {
	c := NewCache()
	c.Activate("snap-2")
	c.Put("snap-2", "root", []registry.Asset{{ID: "a2"}})

	c.Put("snap-1", "root", []registry.Asset{{ID: "a1"}})
	c.Put("snap-1", "child", []registry.Asset{{ID: "a1"}})

	assert.Equal(t, 1, c.Len())
	got, ok := c.Get("snap-2", "root")
	require.True(t, ok)
	assert.Equal(t, "a2", got[0].ID)
	_, ok = c.Get("snap-1", "child")
	assert.False(t, ok)
}

func TestCache_ReturnsCopies(t *testing.T) {
	c := NewCache()
	c.Put("snap", "root", []registry.Asset{{ID: "a1"}})

	got, _ := c.Get("snap", "root")
	got[0].ID = "mutated"

	again, _ := c.Get("snap", "root")
	assert.Equal(t, "a1", again[0].ID)
}

func TestResolver_UsesCacheAcrossSnapshots(t *testing.T) {
	cache := NewCache()

	first := buildRegistry(t, rootChild(), []registry.Asset{{ID: "a1", SystemIDs: []string{"child"}}})
	got, err := NewResolver(first, WithCache(cache)).RecursiveAssets("root")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids(got))
	assert.Equal(t, 1, cache.Len())

	second := buildRegistry(t, rootChild(), []registry.Asset{
		{ID: "a1", SystemIDs: []string{"child"}},
		{ID: "a9", SystemIDs: []string{"root"}},
	})
	cache.Activate(second.ID())
	got, err = NewResolver(second, WithCache(cache)).RecursiveAssets("root")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a9"}, ids(got))

	// the replaced snapshot still resolves correctly without touching the cache
	got, err = NewResolver(first, WithCache(cache)).RecursiveAssets("root")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids(got))
	cached, ok := cache.Get(second.ID(), "root")
	require.True(t, ok)
	assert.Equal(t, []string{"a1", "a9"}, ids(cached))
}
