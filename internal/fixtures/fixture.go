// fixture.go
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

// Package fixtures reads fleet snapshots from YAML documents.
package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/localnerve/fleetboard/data"
	"github.com/localnerve/fleetboard/internal/registry"
	"github.com/localnerve/fleetboard/internal/timeseries"
)

// Fixture is one YAML snapshot document
type Fixture struct {
	Timeframe    *Timeframe    `yaml:"timeframe,omitempty"`
	Environments []Environment `yaml:"environments"`
	Systems      []System      `yaml:"systems"`
	Assets       []Asset       `yaml:"assets"`
}

// Timeframe is an evenly stepped span. Step defaults to one hour.
type Timeframe struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
	Step  string    `yaml:"step,omitempty"`
}

type Environment struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type System struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Parent      string `yaml:"parent,omitempty"`
}

type Asset struct {
	ID      string   `yaml:"id"`
	Label   string   `yaml:"label"`
	Systems []string `yaml:"systems"`
	Series  []Series `yaml:"series,omitempty"`
}

type Series struct {
	Name   string            `yaml:"name"`
	Values []registry.Sample `yaml:"values"`
}

// ErrInvalid marks fixture validation failures
var ErrInvalid = errors.New("invalid fixture")

// Parse decodes and validates a fixture. Unknown keys are rejected.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// ParseFile reads a fixture from disk
func ParseFile(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	f, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Demo returns the embedded demo fixture
func Demo() (*Fixture, error) {
	return Parse(bytes.NewReader(data.DemoFixture))
}

// Load reads path, or the demo fixture when path is empty
func Load(path string) (*Fixture, error) {
	if path == "" {
		return Demo()
	}
	return ParseFile(path)
}

// Validate checks ids are present and unique and that every reference
// resolves. The first offending entity is named in the error.
func (f *Fixture) Validate() error {
	envs := make(map[string]struct{}, len(f.Environments))
	for i, e := range f.Environments {
		if e.ID == "" {
			return fmt.Errorf("%w: environment #%d has no id", ErrInvalid, i)
		}
		if _, dup := envs[e.ID]; dup {
			return fmt.Errorf("%w: duplicate environment %q", ErrInvalid, e.ID)
		}
		envs[e.ID] = struct{}{}
	}

	systems := make(map[string]struct{}, len(f.Systems))
	for i, s := range f.Systems {
		if s.ID == "" {
			return fmt.Errorf("%w: system #%d has no id", ErrInvalid, i)
		}
		if _, dup := systems[s.ID]; dup {
			return fmt.Errorf("%w: duplicate system %q", ErrInvalid, s.ID)
		}
		if _, ok := envs[s.Environment]; !ok {
			return fmt.Errorf("%w: system %q references unknown environment %q", ErrInvalid, s.ID, s.Environment)
		}
		systems[s.ID] = struct{}{}
	}
	for _, s := range f.Systems {
		if s.Parent == "" {
			continue
		}
		if _, ok := systems[s.Parent]; !ok {
			return fmt.Errorf("%w: system %q references unknown parent %q", ErrInvalid, s.ID, s.Parent)
		}
	}

	assets := make(map[string]struct{}, len(f.Assets))
	for i, a := range f.Assets {
		if a.ID == "" {
			return fmt.Errorf("%w: asset #%d has no id", ErrInvalid, i)
		}
		if _, dup := assets[a.ID]; dup {
			return fmt.Errorf("%w: duplicate asset %q", ErrInvalid, a.ID)
		}
		assets[a.ID] = struct{}{}
		for _, sid := range a.Systems {
			if _, ok := systems[sid]; !ok {
				return fmt.Errorf("%w: asset %q references unknown system %q", ErrInvalid, a.ID, sid)
			}
		}
		for j, s := range a.Series {
			if s.Name == "" {
				return fmt.Errorf("%w: asset %q series #%d has no name", ErrInvalid, a.ID, j)
			}
		}
	}

	if f.Timeframe != nil {
		if _, err := f.Timeframe.Points(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return nil
}

// Points expands the span
func (t *Timeframe) Points() ([]time.Time, error) {
	step := time.Hour
	if t.Step != "" {
		var err error
		if step, err = time.ParseDuration(t.Step); err != nil {
			return nil, fmt.Errorf("timeframe step: %w", err)
		}
	}
	return timeseries.Span(t.Start, t.End, step)
}

// Input converts the fixture into registry input, preserving document order
func (f *Fixture) Input() (registry.Input, error) {
	in := registry.Input{
		Environments: make([]registry.Environment, len(f.Environments)),
		Systems:      make([]registry.System, len(f.Systems)),
		Assets:       make([]registry.Asset, len(f.Assets)),
	}
	for i, e := range f.Environments {
		in.Environments[i] = registry.Environment{ID: e.ID, Name: e.Name}
	}
	for i, s := range f.Systems {
		in.Systems[i] = registry.System{ID: s.ID, Name: s.Name, EnvironmentID: s.Environment, ParentID: s.Parent}
	}
	for i, a := range f.Assets {
		asset := registry.Asset{
			ID:        a.ID,
			Label:     a.Label,
			SystemIDs: append([]string(nil), a.Systems...),
		}
		for _, s := range a.Series {
			asset.Series = append(asset.Series, registry.DataSeries{
				Name:   s.Name,
				Values: append([]registry.Sample(nil), s.Values...),
			})
		}
		in.Assets[i] = asset
	}
	if f.Timeframe != nil {
		tf, err := f.Timeframe.Points()
		if err != nil {
			return registry.Input{}, err
		}
		in.Timeframe = tf
	}
	return in, nil
}
