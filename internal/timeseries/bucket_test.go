package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/fleetboard/internal/registry"
)

var (
	d1 = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	d2 = d1.AddDate(0, 0, 1)
)

func outputSeries() registry.DataSeries {
	return registry.DataSeries{Name: "output", Values: []registry.Sample{
		{Timestamp: d2.Add(3 * time.Hour), Value: 98},
		{Timestamp: d1.Add(1 * time.Hour), Value: 120},
		{Timestamp: d1.Add(5 * time.Hour), Value: 135},
		{Timestamp: d2.Add(9 * time.Hour), Value: 104},
		{Timestamp: d1.Add(23 * time.Hour), Value: 90},
	}}
}

func TestBucketByDay_CountsEventsInChronologicalOrder(t *testing.T) {
	b := NewBucketer(time.UTC, nil)

	got := b.BucketByDay(outputSeries(), []string{"2026-03-02", "2026-03-03"}, Count)

	require.Len(t, got, 2)
	assert.Equal(t, "2026-03-02", got[0].Key)
	assert.Equal(t, 3.0, got[0].Value)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, "March 2, 2026", got[0].Label)
	assert.Equal(t, "2026-03-03", got[1].Key)
	assert.Equal(t, 2.0, got[1].Value)
}

func TestBucketByDay_SumAddsQuantities(t *testing.T) {
	b := NewBucketer(time.UTC, nil)

	got := b.BucketByDay(outputSeries(), nil, Sum)

	require.Len(t, got, 2)
	assert.Equal(t, 345.0, got[0].Value)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, 202.0, got[1].Value)
}

func TestBucketByDay_NilAxisDerivedFromSeries(t *testing.T) {
	b := NewBucketer(nil, nil)

	got := b.BucketByDay(outputSeries(), nil, Count)
	require.Len(t, got, 2)
	assert.Equal(t, []float64{3, 2}, []float64{got[0].Value, got[1].Value})
}

func TestBucketByDay_SharedAxisKeepsEmptyDaysAndDropsOutsiders(t *testing.T) {
	b := NewBucketer(time.UTC, nil)
	axis := []string{"2026-03-01", "2026-03-02"}

	got := b.BucketByDay(outputSeries(), axis, Count)
	require.Len(t, got, 2)
	assert.Equal(t, Bucket{Key: "2026-03-01", Label: "March 1, 2026", Value: 0, Count: 0}, got[0])
	assert.Equal(t, 3.0, got[1].Value)
}

func TestBucketByDay_SumUsesValues(t *testing.T) {
	b := NewBucketer(time.UTC, nil)
	series := registry.DataSeries{Values: []registry.Sample{
		{Timestamp: d1, Value: 4},
		{Timestamp: d1.Add(time.Hour), Value: 6},
	}}

	assert.Equal(t, 10.0, b.BucketByDay(series, nil, Sum)[0].Value)
	assert.Equal(t, 2.0, b.BucketByDay(series, nil, Count)[0].Value)
	assert.Equal(t, 5.0, b.BucketByDay(series, nil, Avg)[0].Value)
	assert.Equal(t, 6.0, b.BucketByDay(series, nil, Max)[0].Value)
	assert.Equal(t, 4.0, b.BucketByDay(series, nil, Min)[0].Value)
}

func TestBucketByDay_PassThrough(t *testing.T) {
	b := NewBucketer(time.UTC, nil)
	got := b.BucketByDay(outputSeries(), []string{"2026-03-03"}, PassThrough)

	require.Len(t, got, 2)
	require.NotNil(t, got[0].Timestamp)
	assert.True(t, got[0].Timestamp.Equal(d2.Add(3*time.Hour)))
	assert.True(t, got[1].Timestamp.Equal(d2.Add(9*time.Hour)))
}

func TestBucketByDay_CanonicalKeyIgnoresDisplayLabel(t *testing.T) {
	// A formatter that collapses every day to the same label must not merge buckets.
	b := NewBucketer(time.UTC, FormatterFunc(func(time.Time, Granularity) string { return "same" }))

	got := b.BucketByDay(outputSeries(), nil, Sum)
	require.Len(t, got, 2)
	assert.Equal(t, "same", got[0].Label)
	assert.NotEqual(t, got[0].Key, got[1].Key)
}

func TestBucketByDay_LocationShiftsDayBoundaries(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	b := NewBucketer(loc, nil)

	// 23:00 UTC on d1 is already the next day two hours east.
	series := registry.DataSeries{Values: []registry.Sample{{Timestamp: d1.Add(23 * time.Hour), Value: 1}}}
	got := b.BucketByDay(series, nil, Sum)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-03-03", got[0].Key)
}

func TestBucketByDay_EmptySeries(t *testing.T) {
	b := NewBucketer(time.UTC, nil)
	assert.Empty(t, b.BucketByDay(registry.DataSeries{}, nil, Sum))

	got := b.BucketByDay(registry.DataSeries{}, []string{"2026-03-02"}, Sum)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Value)
}

func TestParseReduction(t *testing.T) {
	r, err := ParseReduction(" SUM ")
	require.NoError(t, err)
	assert.Equal(t, Sum, r)

	r, err = ParseReduction("none")
	require.NoError(t, err)
	assert.Equal(t, PassThrough, r)

	_, err = ParseReduction("median")
	assert.Error(t, err)
}
