package hierarchy

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/fleetboard/internal/registry"
)

func buildRegistry(t *testing.T, systems []registry.System, assets []registry.Asset) *registry.Registry {
	t.Helper()
	reg, err := registry.New(registry.Input{
		Environments: []registry.Environment{{ID: "e1", Name: "env"}},
		Systems:      systems,
		Assets:       assets,
	})
	require.NoError(t, err)
	return reg
}

func ids(assets []registry.Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.ID
	}
	sort.Strings(out)
	return out
}

func rootChild() []registry.System {
	return []registry.System{
		{ID: "root", EnvironmentID: "e1"},
		{ID: "child", EnvironmentID: "e1", ParentID: "root"},
	}
}

func TestRecursiveAssets_ChildAssetVisibleFromRoot(t *testing.T) {
	reg := buildRegistry(t, rootChild(), []registry.Asset{
		{ID: "a1", SystemIDs: []string{"child"}},
	})
	r := NewResolver(reg)

	got, err := r.RecursiveAssets("root")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids(got))

	got, err = r.RecursiveAssets("child")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ids(got))
}

func TestRecursiveAssets_SharedAssetCountedOnce(t *testing.T) {
	reg := buildRegistry(t, rootChild(), []registry.Asset{
		{ID: "a1", SystemIDs: []string{"child"}},
		{ID: "a2", SystemIDs: []string{"root", "child"}},
	})
	r := NewResolver(reg)

	got, err := r.RecursiveAssets("root")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"a1", "a2"}, ids(got))
}

func TestRecursiveAssets_DiscoveryOrder(t *testing.T) {
	reg := buildRegistry(t, []registry.System{
		{ID: "root", EnvironmentID: "e1"},
		{ID: "left", EnvironmentID: "e1", ParentID: "root"},
		{ID: "right", EnvironmentID: "e1", ParentID: "root"},
		{ID: "leaf", EnvironmentID: "e1", ParentID: "left"},
	}, []registry.Asset{
		{ID: "r1", SystemIDs: []string{"right"}},
		{ID: "l1", SystemIDs: []string{"leaf"}},
		{ID: "root1", SystemIDs: []string{"root"}},
		{ID: "left1", SystemIDs: []string{"left", "right"}},
	})
	r := NewResolver(reg)

	got, err := r.RecursiveAssets("root")
	require.NoError(t, err)
	order := make([]string, len(got))
	for i, a := range got {
		order[i] = a.ID
	}
	assert.Equal(t, []string{"root1", "left1", "l1", "r1"}, order)
}

func TestRecursiveAssets_Idempotent(t *testing.T) {
	reg := buildRegistry(t, rootChild(), []registry.Asset{
		{ID: "a1", SystemIDs: []string{"child"}},
		{ID: "a2", SystemIDs: []string{"root"}},
	})
	r := NewResolver(reg)

	first, err := r.RecursiveAssets("root")
	require.NoError(t, err)
	second, err := r.RecursiveAssets("root")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRecursiveAssets_Monotonic(t *testing.T) {
	reg := buildRegistry(t, []registry.System{
		{ID: "s1", EnvironmentID: "e1"},
		{ID: "s2", EnvironmentID: "e1", ParentID: "s1"},
		{ID: "s3", EnvironmentID: "e1", ParentID: "s2"},
	}, []registry.Asset{
		{ID: "a1", SystemIDs: []string{"s1"}},
		{ID: "a2", SystemIDs: []string{"s2"}},
		{ID: "a3", SystemIDs: []string{"s3", "s1"}},
	})
	r := NewResolver(reg)

	for _, pair := range [][2]string{{"s1", "s2"}, {"s2", "s3"}, {"s1", "s3"}} {
		ancestor, err := r.RecursiveAssets(pair[0])
		require.NoError(t, err)
		descendant, err := r.RecursiveAssets(pair[1])
		require.NoError(t, err)
		assert.Subset(t, ids(ancestor), ids(descendant), "%s should contain %s", pair[0], pair[1])
	}
}

func TestRecursiveAssets_CycleTerminates(t *testing.T) {
	reg := buildRegistry(t, []registry.System{
		{ID: "A", EnvironmentID: "e1", ParentID: "B"},
		{ID: "B", EnvironmentID: "e1", ParentID: "A"},
	}, []registry.Asset{
		{ID: "a", SystemIDs: []string{"A"}},
		{ID: "b", SystemIDs: []string{"B"}},
	})

	var mu sync.Mutex
	var reports []*CycleError
	r := NewResolver(reg, WithCycleReporter(func(e *CycleError) {
		mu.Lock()
		defer mu.Unlock()
		reports = append(reports, e)
	}))

	got, err := r.RecursiveAssets("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got))

	// A second traversal over the same edge is not reported again.
	_, err = r.RecursiveAssets("A")
	require.NoError(t, err)

	require.Len(t, reports, 1)
	assert.Equal(t, "B", reports[0].From)
	assert.Equal(t, "A", reports[0].To)
	assert.Equal(t, reg.ID(), reports[0].SnapshotID)
	assert.Contains(t, reports[0].Error(), "malformed hierarchy")
}

func TestRecursiveAssets_SelfParent(t *testing.T) {
	reg := buildRegistry(t, []registry.System{
		{ID: "loop", EnvironmentID: "e1", ParentID: "loop"},
	}, []registry.Asset{
		{ID: "a", SystemIDs: []string{"loop"}},
	})

	cycles := 0
	r := NewResolver(reg, WithCycleReporter(func(*CycleError) { cycles++ }))
	got, err := r.RecursiveAssets("loop")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(got))
	assert.Equal(t, 1, cycles)
}

func TestRecursiveAssets_NotFoundVersusEmpty(t *testing.T) {
	reg := buildRegistry(t, rootChild(), nil)
	r := NewResolver(reg)

	_, err := r.RecursiveAssets("ghost")
	assert.True(t, registry.IsNotFound(err, registry.KindSystem))

	got, err := r.RecursiveAssets("root")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChildrenOf(t *testing.T) {
	reg := buildRegistry(t, append(rootChild(), registry.System{ID: "child2", EnvironmentID: "e1", ParentID: "root"}), nil)
	r := NewResolver(reg)

	children, err := r.ChildrenOf("root")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "child", children[0].ID)
	assert.Equal(t, "child2", children[1].ID)

	children, err = r.ChildrenOf("child")
	require.NoError(t, err)
	assert.Empty(t, children)

	_, err = r.ChildrenOf("ghost")
	assert.Error(t, err)
}

func TestDescendantsAndPath(t *testing.T) {
	reg := buildRegistry(t, []registry.System{
		{ID: "s1", EnvironmentID: "e1"},
		{ID: "s2", EnvironmentID: "e1", ParentID: "s1"},
		{ID: "s3", EnvironmentID: "e1", ParentID: "s2"},
		{ID: "s4", EnvironmentID: "e1", ParentID: "s1"},
	}, nil)
	r := NewResolver(reg)

	desc, err := r.Descendants("s1")
	require.NoError(t, err)
	var got []string
	for _, s := range desc {
		got = append(got, s.ID)
	}
	assert.Equal(t, []string{"s2", "s3", "s4"}, got)

	path, err := r.Path("s3")
	require.NoError(t, err)
	got = got[:0]
	for _, s := range path {
		got = append(got, s.ID)
	}
	assert.Equal(t, []string{"s1", "s2", "s3"}, got)
}

func TestPath_CycleTruncates(t *testing.T) {
	reg := buildRegistry(t, []registry.System{
		{ID: "A", EnvironmentID: "e1", ParentID: "B"},
		{ID: "B", EnvironmentID: "e1", ParentID: "A"},
	}, nil)
	cycles := 0
	r := NewResolver(reg, WithCycleReporter(func(*CycleError) { cycles++ }))

	path, err := r.Path("A")
	require.NoError(t, err)
	assert.Len(t, path, 2)
	assert.Equal(t, 1, cycles)
}

func TestResolver_ConcurrentReaders(t *testing.T) {
	reg := buildRegistry(t, rootChild(), []registry.Asset{
		{ID: "a1", SystemIDs: []string{"child"}},
		{ID: "a2", SystemIDs: []string{"root", "child"}},
	})
	r := NewResolver(reg, WithCache(NewCache()))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.RecursiveAssets("root")
			assert.NoError(t, err)
			assert.Len(t, got, 2)
		}()
	}
	wg.Wait()
}
