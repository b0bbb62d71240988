// source.go
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

package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/hints"

	"github.com/localnerve/fleetboard/internal/fixtures"
	"github.com/localnerve/fleetboard/internal/models"
	"github.com/localnerve/fleetboard/internal/registry"
)

// Source loads the raw entities of one snapshot
type Source interface {
	Name() string
	Load(ctx context.Context) (registry.Input, error)
}

// DBSource reads the snapshot from the fleet tables
type DBSource struct {
	DB *gorm.DB
}

// Name implements Source
func (s *DBSource) Name() string {
	return "database"
}

// Load reads environments, systems and assets with their series and
// system links in stored order
func (s *DBSource) Load(ctx context.Context) (registry.Input, error) {
	db := s.DB.WithContext(ctx).Session(&gorm.Session{Logger: s.DB.Logger.LogMode(logger.Silent)})
	comment := hints.CommentBefore("select", "fleetboard:snapshot")

	var envs []models.Environment
	if err := db.Clauses(comment).Order("position, environment_id").Find(&envs).Error; err != nil {
		return registry.Input{}, fmt.Errorf("failed to load environments: %w", err)
	}

	var systems []models.System
	if err := db.Clauses(comment).Order("position, system_id").Find(&systems).Error; err != nil {
		return registry.Input{}, fmt.Errorf("failed to load systems: %w", err)
	}

	var assets []models.Asset
	err := db.Clauses(comment).
		Preload("Systems", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position, system_id")
		}).
		Preload("Series", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position, series_id")
		}).
		Order("position, asset_id").
		Find(&assets).Error
	if err != nil {
		return registry.Input{}, fmt.Errorf("failed to load assets: %w", err)
	}

	return inputFromModels(envs, systems, assets), nil
}

func inputFromModels(envs []models.Environment, systems []models.System, assets []models.Asset) registry.Input {
	in := registry.Input{
		Environments: make([]registry.Environment, len(envs)),
		Systems:      make([]registry.System, len(systems)),
		Assets:       make([]registry.Asset, len(assets)),
	}
	for i, e := range envs {
		in.Environments[i] = registry.Environment{ID: e.EnvironmentID, Name: e.Name}
	}
	for i, s := range systems {
		sys := registry.System{ID: s.SystemID, Name: s.Name, EnvironmentID: s.EnvironmentID}
		if s.ParentID != nil {
			sys.ParentID = *s.ParentID
		}
		in.Systems[i] = sys
	}
	for i, a := range assets {
		asset := registry.Asset{ID: a.AssetID, Label: a.Label}
		for _, s := range a.Systems {
			asset.SystemIDs = append(asset.SystemIDs, s.SystemID)
		}
		for _, ds := range a.Series {
			values := make([]registry.Sample, len(ds.Samples))
			for j, v := range ds.Samples {
				values[j] = registry.Sample{Timestamp: v.Timestamp, Value: v.Value}
			}
			asset.Series = append(asset.Series, registry.DataSeries{Name: ds.Name, Values: values})
		}
		in.Assets[i] = asset
	}
	return in
}

// FixtureSource reads the snapshot from a YAML fixture. An empty Path
// serves the embedded demo fixture.
type FixtureSource struct {
	Path string
}

// Name implements Source
func (s *FixtureSource) Name() string {
	if s.Path == "" {
		return "fixture:demo"
	}
	return "fixture:" + s.Path
}

// Load re-reads the fixture on every call
func (s *FixtureSource) Load(ctx context.Context) (registry.Input, error) {
	if err := ctx.Err(); err != nil {
		return registry.Input{}, err
	}
	f, err := fixtures.Load(s.Path)
	if err != nil {
		return registry.Input{}, err
	}
	return f.Input()
}
