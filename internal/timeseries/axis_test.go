package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/fleetboard/internal/registry"
)

func hourly(t *testing.T, n int) []time.Time {
	t.Helper()
	if n == 0 {
		return nil
	}
	tf, err := Span(d1, d1.Add(time.Duration(n-1)*time.Hour), time.Hour)
	require.NoError(t, err)
	require.Len(t, tf, n)
	return tf
}

func TestHourAxis_Length(t *testing.T) {
	b := NewBucketer(time.UTC, nil)
	for _, n := range []int{0, 1, 23, 24, 25, 72} {
		got := b.HourAxis(hourly(t, n))
		want := n
		if want > 24 {
			want = 24
		}
		assert.Len(t, got, want, "timeframe of %d points", n)
	}
}

func TestHourAxis_Labels(t *testing.T) {
	b := NewBucketer(time.UTC, nil)
	got := b.HourAxis(hourly(t, 30))
	assert.Equal(t, "Mar 2, 2026 12:00 AM", got[0])
	assert.Equal(t, "Mar 2, 2026 11:00 PM", got[23])
}

func TestDayAxis_NotDeduplicated(t *testing.T) {
	b := NewBucketer(time.UTC, nil)
	tf := hourly(t, 48)

	labels := b.DayAxis(tf)
	assert.Len(t, labels, 48)
	assert.Equal(t, "March 2, 2026", labels[0])
	assert.Equal(t, "March 3, 2026", labels[47])

	keys := b.DayAxisKeys(tf)
	assert.Equal(t, []string{"2026-03-02", "2026-03-03"}, keys)
	assert.Equal(t, []string{"March 2, 2026", "March 3, 2026"}, b.DayLabels(keys))
}

func TestLayoutFormatter_CustomLayouts(t *testing.T) {
	f := NewLayoutFormatter(time.UTC, "02/01 15h", "02/01/2006")
	assert.Equal(t, "02/03 05h", f.Format(d1.Add(5*time.Hour), Hour))
	assert.Equal(t, "02/03/2026", f.Format(d1, Day))
	assert.Equal(t, "hour", Hour.String())
	assert.Equal(t, "day", Day.String())
}

func TestSpan_Validation(t *testing.T) {
	_, err := Span(d1, d1, 0)
	assert.Error(t, err)

	_, err = Span(d2, d1, time.Hour)
	assert.Error(t, err)

	tf, err := Span(d1, d1, time.Hour)
	require.NoError(t, err)
	assert.Len(t, tf, 1)
}

func TestObservedTimeframe(t *testing.T) {
	assets := []registry.Asset{
		{ID: "a", Series: []registry.DataSeries{outputSeries()}},
		{ID: "b", Series: []registry.DataSeries{{Name: "temperature", Values: []registry.Sample{
			{Timestamp: d1.Add(time.Hour), Value: 20},
			{Timestamp: d1, Value: 21},
		}}}},
	}

	tf := ObservedTimeframe(assets)
	require.Len(t, tf, 6)
	assert.True(t, tf[0].Equal(d1))
	for i := 1; i < len(tf); i++ {
		assert.True(t, tf[i-1].Before(tf[i]))
	}
}
