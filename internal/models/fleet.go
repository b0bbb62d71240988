// fleet.go
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

package models

import (
	"time"
)

// Environment is a deployment environment owning root systems by reference
type Environment struct {
	EnvironmentID string `gorm:"primaryKey;size:64"`
	Name          string `gorm:"size:255;not null"`
	Position      int    `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// System is a node of the system forest. ParentID is nil for roots.
type System struct {
	SystemID      string  `gorm:"primaryKey;size:64"`
	Name          string  `gorm:"size:255;not null"`
	EnvironmentID string  `gorm:"size:64;not null;index"`
	ParentID      *string `gorm:"size:64;index"`
	Position      int     `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Asset is a monitored entity attached to one or more systems
type Asset struct {
	AssetID   string       `gorm:"primaryKey;size:64"`
	Label     string       `gorm:"size:255;not null"`
	Position  int          `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Systems   []System     `gorm:"many2many:asset_systems;joinForeignKey:asset_id;joinReferences:system_id"`
	Series    []DataSeries `gorm:"foreignKey:AssetID;references:AssetID"`
}

// DataSeries is one named sample series of an asset
type DataSeries struct {
	SeriesID  uint64     `gorm:"primaryKey;autoIncrement"`
	AssetID   string     `gorm:"size:64;not null;index:idx_asset_series"`
	Name      string     `gorm:"size:128;not null;index:idx_asset_series"`
	Position  int        `gorm:"not null;default:0"`
	Samples   SampleList `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Environment
func (Environment) TableName() string {
	return "environments"
}

// TableName overrides the table name for System
func (System) TableName() string {
	return "systems"
}

// TableName overrides the table name for Asset
func (Asset) TableName() string {
	return "assets"
}

// TableName overrides the table name for DataSeries
func (DataSeries) TableName() string {
	return "data_series"
}

// All lists every model, in dependency order, for migrations
func All() []interface{} {
	return []interface{}{
		&Environment{},
		&System{},
		&Asset{},
		&DataSeries{},
	}
}
