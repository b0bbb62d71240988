// registry.go
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

package registry

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Sample is one timestamped measurement or event.
type Sample struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Value     float64   `json:"value" yaml:"value"`
}

// DataSeries is a named, time-ordered sequence of samples owned by an asset.
type DataSeries struct {
	Name   string   `json:"name"`
	Values []Sample `json:"values"`
}

// Environment groups root systems. Ownership is by reference from System.
type Environment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// System is a node of the system forest. An empty ParentID means no parent.
type System struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EnvironmentID string `json:"environmentId"`
	ParentID      string `json:"parentId,omitempty"`
}

// Asset is a monitored entity. It may belong to several systems at once.
type Asset struct {
	ID        string       `json:"id"`
	Label     string       `json:"label"`
	SystemIDs []string     `json:"systemIds"`
	Series    []DataSeries `json:"series,omitempty"`
}

// SeriesNamed returns the first series carrying name.
func (a Asset) SeriesNamed(name string) (DataSeries, bool) {
	for _, s := range a.Series {
		if s.Name == name {
			return s, true
		}
	}
	return DataSeries{}, false
}

// HasSeries reports whether the asset carries a series called name.
func (a Asset) HasSeries(name string) bool {
	_, ok := a.SeriesNamed(name)
	return ok
}

// MemberOf reports direct membership in a system.
func (a Asset) MemberOf(systemID string) bool {
	for _, id := range a.SystemIDs {
		if id == systemID {
			return true
		}
	}
	return false
}

// Input is everything a loader hands over to build a snapshot.
type Input struct {
	Environments []Environment
	Systems      []System
	Assets       []Asset
	Timeframe    []time.Time
}

// Stats summarizes snapshot contents.
type Stats struct {
	Environments int `json:"environments"`
	Systems      int `json:"systems"`
	Assets       int `json:"assets"`
	Series       int `json:"series"`
	Samples      int `json:"samples"`
	Timeframe    int `json:"timeframe"`
}

// Registry is an immutable, id-indexed snapshot of the fleet.
// All indexes are built once in New; every method is safe for concurrent use.
type Registry struct {
	id         string
	generation uint64
	loadedAt   time.Time

	environments []Environment
	systems      []System
	assets       []Asset
	timeframe    []time.Time

	envIndex    map[string]int
	systemIndex map[string]int
	assetIndex  map[string]int

	systemsByEnv   map[string][]int
	children       map[string][]int
	assetsBySystem map[string][]int
	roots          []int
}

// Option customizes snapshot metadata.
type Option func(*Registry)

// WithID pins the snapshot id instead of generating one.
func WithID(id string) Option {
	return func(r *Registry) { r.id = id }
}

// WithGeneration records the store generation this snapshot belongs to.
func WithGeneration(generation uint64) Option {
	return func(r *Registry) { r.generation = generation }
}

// WithLoadedAt overrides the load timestamp.
func WithLoadedAt(t time.Time) Option {
	return func(r *Registry) { r.loadedAt = t }
}

// New validates the input and builds the lookup indexes and the
// parent-to-children adjacency.
func New(in Input, opts ...Option) (*Registry, error) {
	r := &Registry{
		id:             uuid.NewString(),
		loadedAt:       time.Now().UTC(),
		environments:   append([]Environment(nil), in.Environments...),
		systems:        append([]System(nil), in.Systems...),
		assets:         make([]Asset, 0, len(in.Assets)),
		envIndex:       make(map[string]int, len(in.Environments)),
		systemIndex:    make(map[string]int, len(in.Systems)),
		assetIndex:     make(map[string]int, len(in.Assets)),
		systemsByEnv:   make(map[string][]int),
		children:       make(map[string][]int),
		assetsBySystem: make(map[string][]int),
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, env := range r.environments {
		if env.ID == "" {
			return nil, fmt.Errorf("environment at position %d has an empty id", i)
		}
		if _, dup := r.envIndex[env.ID]; dup {
			return nil, fmt.Errorf("duplicate environment id %q", env.ID)
		}
		r.envIndex[env.ID] = i
	}

	for i, sys := range r.systems {
		if sys.ID == "" {
			return nil, fmt.Errorf("system at position %d has an empty id", i)
		}
		if _, dup := r.systemIndex[sys.ID]; dup {
			return nil, fmt.Errorf("duplicate system id %q", sys.ID)
		}
		r.systemIndex[sys.ID] = i
		r.systemsByEnv[sys.EnvironmentID] = append(r.systemsByEnv[sys.EnvironmentID], i)
	}

	// Adjacency is built after the index so forward parent references resolve.
	for i, sys := range r.systems {
		if _, ok := r.systemIndex[sys.ParentID]; sys.ParentID == "" || !ok {
			r.roots = append(r.roots, i)
			continue
		}
		r.children[sys.ParentID] = append(r.children[sys.ParentID], i)
	}

	for i, a := range in.Assets {
		if a.ID == "" {
			return nil, fmt.Errorf("asset at position %d has an empty id", i)
		}
		if _, dup := r.assetIndex[a.ID]; dup {
			return nil, fmt.Errorf("duplicate asset id %q", a.ID)
		}
		a.SystemIDs = dedupe(a.SystemIDs)
		a.Series = copySeries(a.Series)
		r.assetIndex[a.ID] = len(r.assets)
		for _, sysID := range a.SystemIDs {
			r.assetsBySystem[sysID] = append(r.assetsBySystem[sysID], len(r.assets))
		}
		r.assets = append(r.assets, a)
	}

	r.timeframe = normalizeTimeframe(in.Timeframe)

	return r, nil
}

// ID is the unique id of this snapshot.
func (r *Registry) ID() string { return r.id }

// Generation is the store generation this snapshot was loaded as.
func (r *Registry) Generation() uint64 { return r.generation }

// LoadedAt is when the snapshot was built.
func (r *Registry) LoadedAt() time.Time { return r.loadedAt }

// Environments lists environments in load order.
func (r *Registry) Environments() []Environment {
	return append([]Environment(nil), r.environments...)
}

// Systems lists systems in load order.
func (r *Registry) Systems() []System {
	return append([]System(nil), r.systems...)
}

// Assets lists assets in load order.
func (r *Registry) Assets() []Asset {
	return append([]Asset(nil), r.assets...)
}

// Environment looks up an environment by id.
func (r *Registry) Environment(id string) (Environment, error) {
	i, ok := r.envIndex[id]
	if !ok {
		return Environment{}, notFound(KindEnvironment, id)
	}
	return r.environments[i], nil
}

// System looks up a system by id.
func (r *Registry) System(id string) (System, error) {
	i, ok := r.systemIndex[id]
	if !ok {
		return System{}, notFound(KindSystem, id)
	}
	return r.systems[i], nil
}

// HasSystem reports whether id names a system in this snapshot.
func (r *Registry) HasSystem(id string) bool {
	_, ok := r.systemIndex[id]
	return ok
}

// Asset looks up an asset by id.
func (r *Registry) Asset(id string) (Asset, error) {
	i, ok := r.assetIndex[id]
	if !ok {
		return Asset{}, notFound(KindAsset, id)
	}
	return r.assets[i], nil
}

// SystemsOf returns the systems whose environment_id is envID.
func (r *Registry) SystemsOf(envID string) ([]System, error) {
	if _, ok := r.envIndex[envID]; !ok {
		return nil, notFound(KindEnvironment, envID)
	}
	return r.pickSystems(r.systemsByEnv[envID]), nil
}

// AssetsOf returns assets directly attached to systemID.
func (r *Registry) AssetsOf(systemID string) ([]Asset, error) {
	if _, ok := r.systemIndex[systemID]; !ok {
		return nil, notFound(KindSystem, systemID)
	}
	idx := r.assetsBySystem[systemID]
	out := make([]Asset, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.assets[i])
	}
	return out, nil
}

// Children returns the direct child systems of systemID.
func (r *Registry) Children(systemID string) ([]System, error) {
	if _, ok := r.systemIndex[systemID]; !ok {
		return nil, notFound(KindSystem, systemID)
	}
	return r.pickSystems(r.children[systemID]), nil
}

// ChildIDs returns the adjacency entry for systemID. Unknown ids yield nil.
func (r *Registry) ChildIDs(systemID string) []string {
	idx := r.children[systemID]
	if len(idx) == 0 {
		return nil
	}
	ids := make([]string, len(idx))
	for n, i := range idx {
		ids[n] = r.systems[i].ID
	}
	return ids
}

// Roots returns systems with no parent or with a parent that does not exist.
func (r *Registry) Roots() []System {
	return r.pickSystems(r.roots)
}

// Timeframe is the shared, ordered observation window.
func (r *Registry) Timeframe() []time.Time {
	return append([]time.Time(nil), r.timeframe...)
}

// Stats counts snapshot contents.
func (r *Registry) Stats() Stats {
	st := Stats{
		Environments: len(r.environments),
		Systems:      len(r.systems),
		Assets:       len(r.assets),
		Timeframe:    len(r.timeframe),
	}
	for _, a := range r.assets {
		st.Series += len(a.Series)
		for _, s := range a.Series {
			st.Samples += len(s.Values)
		}
	}
	return st
}

func (r *Registry) pickSystems(idx []int) []System {
	out := make([]System, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.systems[i])
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func copySeries(series []DataSeries) []DataSeries {
	if len(series) == 0 {
		return nil
	}
	out := make([]DataSeries, len(series))
	for i, s := range series {
		out[i] = DataSeries{Name: s.Name, Values: append([]Sample(nil), s.Values...)}
	}
	return out
}

// normalizeTimeframe sorts and removes duplicate instants.
func normalizeTimeframe(tf []time.Time) []time.Time {
	if len(tf) == 0 {
		return nil
	}
	out := append([]time.Time(nil), tf...)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	n := 1
	for i := 1; i < len(out); i++ {
		if !out[i].Equal(out[n-1]) {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
