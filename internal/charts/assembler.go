// assembler.go
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

package charts

import (
	"fmt"

	"github.com/localnerve/fleetboard/internal/hierarchy"
	"github.com/localnerve/fleetboard/internal/registry"
	"github.com/localnerve/fleetboard/internal/timeseries"
)

// Assembler turns resolver and bucketing output into chart series for one
// snapshot. It holds no mutable state.
type Assembler struct {
	reg             *registry.Registry
	resolver        *hierarchy.Resolver
	bucketer        timeseries.Bucketer
	outputReduction timeseries.Reduction
	dayKeys         []string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithOutputReduction sets how machine output samples are reduced per day.
// The default counts samples.
func WithOutputReduction(r timeseries.Reduction) Option {
	return func(a *Assembler) { a.outputReduction = r }
}

// NewAssembler derives the shared day axis once from the snapshot timeframe.
func NewAssembler(resolver *hierarchy.Resolver, bucketer timeseries.Bucketer, opts ...Option) *Assembler {
	a := &Assembler{
		reg:             resolver.Registry(),
		resolver:        resolver,
		bucketer:        bucketer,
		outputReduction: timeseries.Count,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.dayKeys = bucketer.DayAxisKeys(a.reg.Timeframe())
	return a
}

// CategoryCountSeries counts per category. With no ids every entity of the
// kind is listed in snapshot order. Unknown ids fail with a not-found error.
func (a *Assembler) CategoryCountSeries(kind CategoryKind, ids []string) ([]CategoryCount, error) {
	switch kind {
	case SystemsPerEnvironment:
		if len(ids) == 0 {
			for _, env := range a.reg.Environments() {
				ids = append(ids, env.ID)
			}
		}
		out := make([]CategoryCount, 0, len(ids))
		for _, id := range ids {
			systems, err := a.reg.SystemsOf(id)
			if err != nil {
				return nil, err
			}
			out = append(out, CategoryCount{Name: id, Value: len(systems)})
		}
		return out, nil

	case AssetsPerSystem:
		if len(ids) == 0 {
			for _, sys := range a.reg.Systems() {
				ids = append(ids, sys.ID)
			}
		}
		out := make([]CategoryCount, 0, len(ids))
		for _, id := range ids {
			assets, err := a.resolver.RecursiveAssets(id)
			if err != nil {
				return nil, err
			}
			out = append(out, CategoryCount{Name: id, Value: len(assets)})
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown category kind %q", kind)
	}
}

// AssetNamesFor returns the labels of recursive assets carrying seriesName.
func (a *Assembler) AssetNamesFor(systemID, seriesName string) ([]string, error) {
	assets, err := a.resolver.RecursiveAssets(systemID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(assets))
	for _, asset := range assets {
		if asset.HasSeries(seriesName) {
			names = append(names, asset.Label)
		}
	}
	return names, nil
}

// NamedSeriesFor emits the raw samples of seriesName for every recursive
// asset of systemID that carries it.
func (a *Assembler) NamedSeriesFor(systemID, seriesName string) ([]LineSeries, error) {
	assets, err := a.resolver.RecursiveAssets(systemID)
	if err != nil {
		return nil, err
	}
	out := make([]LineSeries, 0, len(assets))
	for _, asset := range assets {
		s, ok := asset.SeriesNamed(seriesName)
		if !ok {
			continue
		}
		out = append(out, LineSeries{
			Name:    asset.Label,
			AssetID: asset.ID,
			Type:    "line",
			Points:  append([]registry.Sample(nil), s.Values...),
		})
	}
	return out, nil
}

// TemperatureSeriesFor is NamedSeriesFor over the temperature series.
func (a *Assembler) TemperatureSeriesFor(systemID string) ([]LineSeries, error) {
	return a.NamedSeriesFor(systemID, SeriesTemperature)
}

// OutputSeriesByDayFor reduces an asset's output series onto the shared day
// axis. An asset without output yields an empty list.
func (a *Assembler) OutputSeriesByDayFor(assetID string) ([]timeseries.Bucket, error) {
	asset, err := a.reg.Asset(assetID)
	if err != nil {
		return nil, err
	}
	s, ok := asset.SeriesNamed(SeriesOutput)
	if !ok {
		return []timeseries.Bucket{}, nil
	}
	return a.bucketer.BucketByDay(s, a.axis(), a.outputReduction), nil
}

// Machines lists the assets directly attached to the machine system.
func (a *Assembler) Machines(systemID string) ([]registry.Asset, error) {
	return a.reg.AssetsOf(systemID)
}

// MachineOutputSeries builds one stacked bar series per machine that has
// an output series.
func (a *Assembler) MachineOutputSeries(systemID string) ([]BarSeries, error) {
	machines, err := a.Machines(systemID)
	if err != nil {
		return nil, err
	}
	out := make([]BarSeries, 0, len(machines))
	for _, m := range machines {
		s, ok := m.SeriesNamed(SeriesOutput)
		if !ok {
			continue
		}
		out = append(out, BarSeries{
			Name:    m.Label,
			AssetID: m.ID,
			Type:    "bar",
			Stack:   "total",
			Points:  a.bucketer.BucketByDay(s, a.axis(), a.outputReduction),
		})
	}
	return out, nil
}

// HourAxis is the intra-day x-axis shared by line charts.
func (a *Assembler) HourAxis() []string {
	return a.bucketer.HourAxis(a.reg.Timeframe())
}

// DayAxis is one day label per timeframe point, not deduplicated.
func (a *Assembler) DayAxis() []string {
	return a.bucketer.DayAxis(a.reg.Timeframe())
}

// DayAxisKeys is the distinct canonical day axis.
func (a *Assembler) DayAxisKeys() []string {
	return append([]string(nil), a.dayKeys...)
}

// DayAxisLabels renders the distinct day axis for display.
func (a *Assembler) DayAxisLabels() []string {
	return a.bucketer.DayLabels(a.dayKeys)
}

// axis returns the shared day axis, or nil when the snapshot has no
// timeframe so each series derives its own.
func (a *Assembler) axis() []string {
	if len(a.dayKeys) == 0 {
		return nil
	}
	return a.dayKeys
}
