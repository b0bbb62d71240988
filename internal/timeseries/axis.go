package timeseries

import (
	"fmt"
	"sort"
	"time"

	"github.com/localnerve/fleetboard/internal/registry"
)

// maxSpanPoints keeps a misconfigured span from allocating without bound.
const maxSpanPoints = 1 << 20

// HourAxis formats the first 24 timestamps of the timeframe. Shorter
// timeframes give a shorter axis.
func (b Bucketer) HourAxis(timeframe []time.Time) []string {
	n := len(timeframe)
	if n > HoursPerDay {
		n = HoursPerDay
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = b.formatter().Format(timeframe[i], Hour)
	}
	return out
}

// DayAxis formats every timestamp of the timeframe at day granularity.
// Consecutive timestamps on the same day repeat the label; callers that
// need distinct days use DayAxisKeys.
func (b Bucketer) DayAxis(timeframe []time.Time) []string {
	out := make([]string, len(timeframe))
	for i, t := range timeframe {
		out[i] = b.formatter().Format(t, Day)
	}
	return out
}

// DayAxisKeys lists the distinct canonical days of the timeframe in order
// of first appearance.
func (b Bucketer) DayAxisKeys(timeframe []time.Time) []string {
	keys := make([]string, len(timeframe))
	for i, t := range timeframe {
		keys[i] = b.DayKey(t)
	}
	return distinct(keys)
}

// DayLabels maps canonical keys to display labels.
func (b Bucketer) DayLabels(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = b.DayLabel(k)
	}
	return out
}

// Span builds an evenly stepped timeframe from start to end inclusive.
func Span(start, end time.Time, step time.Duration) ([]time.Time, error) {
	if step <= 0 {
		return nil, fmt.Errorf("timeframe step must be positive, got %s", step)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("timeframe end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	n := int(end.Sub(start)/step) + 1
	if n > maxSpanPoints {
		return nil, fmt.Errorf("timeframe of %d points exceeds the limit of %d", n, maxSpanPoints)
	}
	out := make([]time.Time, 0, n)
	for t := start; !t.After(end); t = t.Add(step) {
		out = append(out, t)
	}
	return out, nil
}

// ObservedTimeframe collects the distinct sample instants of every series
// of every asset, sorted.
func ObservedTimeframe(assets []registry.Asset) []time.Time {
	seen := make(map[int64]struct{})
	var out []time.Time
	for _, a := range assets {
		for _, s := range a.Series {
			for _, v := range s.Values {
				k := v.Timestamp.UnixNano()
				if _, ok := seen[k]; ok {
					continue
				}
				seen[k] = struct{}{}
				out = append(out, v.Timestamp)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
