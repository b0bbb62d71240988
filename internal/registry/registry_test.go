package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() Input {
	t0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return Input{
		Environments: []Environment{
			{ID: "e1", Name: "Plant A"},
			{ID: "e2", Name: "Plant B"},
			{ID: "e3", Name: "Empty"},
		},
		Systems: []System{
			{ID: "root", Name: "Root", EnvironmentID: "e1"},
			{ID: "child", Name: "Child", EnvironmentID: "e1", ParentID: "root"},
			{ID: "orphan", Name: "Orphan", EnvironmentID: "e2", ParentID: "missing"},
		},
		Assets: []Asset{
			{ID: "a1", Label: "Pump", SystemIDs: []string{"child"}},
			{ID: "a2", Label: "Oven", SystemIDs: []string{"root", "child", "root"}, Series: []DataSeries{
				{Name: "temperature", Values: []Sample{{Timestamp: t0, Value: 20}}},
				{Name: "temperature", Values: []Sample{{Timestamp: t0, Value: 99}}},
			}},
		},
		Timeframe: []time.Time{t0.Add(time.Hour), t0, t0.Add(time.Hour)},
	}
}

func TestNew_IndexesAndLookups(t *testing.T) {
	reg, err := New(sampleInput(), WithID("snap-1"), WithGeneration(3))
	require.NoError(t, err)

	assert.Equal(t, "snap-1", reg.ID())
	assert.Equal(t, uint64(3), reg.Generation())

	sys, err := reg.System("child")
	require.NoError(t, err)
	assert.Equal(t, "root", sys.ParentID)

	env, err := reg.Environment("e2")
	require.NoError(t, err)
	assert.Equal(t, "Plant B", env.Name)

	systems, err := reg.SystemsOf("e1")
	require.NoError(t, err)
	assert.Len(t, systems, 2)

	assets, err := reg.AssetsOf("root")
	require.NoError(t, err)
	require.Len(t, assets, 1, "duplicate membership on one asset must index once")
	assert.Equal(t, "a2", assets[0].ID)

	children, err := reg.Children("root")
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "child", children[0].ID)
	assert.Equal(t, []string{"child"}, reg.ChildIDs("root"))
	assert.Nil(t, reg.ChildIDs("child"))
}

func TestNew_RootsIncludeDanglingParents(t *testing.T) {
	reg, err := New(sampleInput())
	require.NoError(t, err)

	var ids []string
	for _, s := range reg.Roots() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"root", "orphan"}, ids)
}

func TestLookups_NotFoundIsExplicit(t *testing.T) {
	reg, err := New(sampleInput())
	require.NoError(t, err)

	_, err = reg.System("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(err, KindSystem))
	assert.False(t, IsNotFound(err, KindAsset))

	_, err = reg.SystemsOf("nope")
	assert.True(t, IsNotFound(err, KindEnvironment))

	_, err = reg.AssetsOf("nope")
	assert.True(t, IsNotFound(err, KindSystem))

	_, err = reg.Asset("nope")
	assert.EqualError(t, err, `asset "nope" not found`)

	// Existing but empty is not an error.
	systems, err := reg.SystemsOf("e3")
	require.NoError(t, err)
	assert.Empty(t, systems)

	assets, err := reg.AssetsOf("orphan")
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestNew_RejectsDuplicateAndEmptyIDs(t *testing.T) {
	in := sampleInput()
	in.Systems = append(in.Systems, System{ID: "root"})
	_, err := New(in)
	assert.ErrorContains(t, err, `duplicate system id "root"`)

	in = sampleInput()
	in.Assets = append(in.Assets, Asset{Label: "no id"})
	_, err = New(in)
	assert.ErrorContains(t, err, "empty id")

	in = sampleInput()
	in.Environments = append(in.Environments, Environment{ID: "e1"})
	_, err = New(in)
	assert.ErrorContains(t, err, `duplicate environment id "e1"`)
}

func TestTimeframe_SortedAndDeduplicated(t *testing.T) {
	reg, err := New(sampleInput())
	require.NoError(t, err)

	tf := reg.Timeframe()
	require.Len(t, tf, 2)
	assert.True(t, tf[0].Before(tf[1]))
}

func TestAsset_SeriesNamedFirstWins(t *testing.T) {
	reg, err := New(sampleInput())
	require.NoError(t, err)

	a, err := reg.Asset("a2")
	require.NoError(t, err)
	s, ok := a.SeriesNamed("temperature")
	require.True(t, ok)
	assert.Equal(t, 20.0, s.Values[0].Value)
	assert.False(t, a.HasSeries("output"))
	assert.True(t, a.MemberOf("root"))
}

func TestNew_CopiesInput(t *testing.T) {
	in := sampleInput()
	reg, err := New(in)
	require.NoError(t, err)

	in.Systems[0].Name = "mutated"
	in.Assets[1].Series[0].Values[0].Value = -1

	sys, _ := reg.System("root")
	assert.Equal(t, "Root", sys.Name)
	a, _ := reg.Asset("a2")
	assert.Equal(t, 20.0, a.Series[0].Values[0].Value)
}

func TestStats(t *testing.T) {
	reg, err := New(sampleInput())
	require.NoError(t, err)
	assert.Equal(t, Stats{Environments: 3, Systems: 3, Assets: 2, Series: 2, Samples: 2, Timeframe: 2}, reg.Stats())
}
