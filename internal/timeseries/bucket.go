// bucket.go
//
// Hierarchical asset aggregation and chart data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of fleetboard.
// fleetboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// fleetboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with fleetboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package timeseries

import (
	"sort"
	"time"

	"github.com/localnerve/fleetboard/internal/registry"
)

// DayKeyLayout is the canonical, locale-independent day key.
const DayKeyLayout = "2006-01-02"

// HoursPerDay bounds the intra-day axis.
const HoursPerDay = 24

// Bucket is one reduced chart point on the day axis.
type Bucket struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Value     float64    `json:"value"`
	Count     int        `json:"count"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Bucketer groups samples into calendar buckets. Day boundaries are taken
// in Location; labels come from Formatter.
type Bucketer struct {
	Location  *time.Location
	Formatter LabelFormatter
}

// NewBucketer returns a Bucketer with defaults for nil arguments.
func NewBucketer(loc *time.Location, f LabelFormatter) Bucketer {
	if loc == nil {
		loc = time.UTC
	}
	if f == nil {
		f = NewLayoutFormatter(loc, "", "")
	}
	return Bucketer{Location: loc, Formatter: f}
}

func (b Bucketer) location() *time.Location {
	if b.Location == nil {
		return time.UTC
	}
	return b.Location
}

func (b Bucketer) formatter() LabelFormatter {
	if b.Formatter == nil {
		return NewLayoutFormatter(b.location(), "", "")
	}
	return b.Formatter
}

// DayKey is the canonical day of t.
func (b Bucketer) DayKey(t time.Time) string {
	return t.In(b.location()).Format(DayKeyLayout)
}

// DayLabel renders the display label for a canonical day key.
func (b Bucketer) DayLabel(key string) string {
	day, err := time.ParseInLocation(DayKeyLayout, key, b.location())
	if err != nil {
		return key
	}
	return b.formatter().Format(day, Day)
}

// BucketByDay reduces a series onto the shared day axis. One bucket is
// produced per axis day, empty days included, so that series built on the
// same axis line up. Samples falling on days outside the axis are dropped.
// A nil axis is derived from the series itself. PassThrough yields one
// point per sample instead, in chronological order.
func (b Bucketer) BucketByDay(series registry.DataSeries, axis []string, r Reduction) []Bucket {
	samples := append([]registry.Sample(nil), series.Values...)
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Timestamp.Before(samples[j].Timestamp) })

	if axis == nil {
		axis = make([]string, 0, len(samples))
		for _, s := range samples {
			axis = append(axis, b.DayKey(s.Timestamp))
		}
	}
	axis = distinct(axis)

	onAxis := make(map[string]struct{}, len(axis))
	for _, key := range axis {
		onAxis[key] = struct{}{}
	}

	if r == PassThrough {
		out := make([]Bucket, 0, len(samples))
		for _, s := range samples {
			key := b.DayKey(s.Timestamp)
			if _, ok := onAxis[key]; !ok {
				continue
			}
			ts := s.Timestamp
			out = append(out, Bucket{
				Key:       key,
				Label:     b.formatter().Format(ts, Day),
				Value:     s.Value,
				Count:     1,
				Timestamp: &ts,
			})
		}
		return out
	}

	grouped := make(map[string][]float64, len(axis))
	for _, s := range samples {
		key := b.DayKey(s.Timestamp)
		if _, ok := onAxis[key]; !ok {
			continue
		}
		grouped[key] = append(grouped[key], s.Value)
	}

	out := make([]Bucket, 0, len(axis))
	for _, key := range axis {
		values := grouped[key]
		out = append(out, Bucket{
			Key:   key,
			Label: b.DayLabel(key),
			Value: reduce(r, values),
			Count: len(values),
		})
	}
	return out
}

func distinct(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
