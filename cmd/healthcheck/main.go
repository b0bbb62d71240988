// main.go
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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/localnerve/fleetboard/internal/config"
	"github.com/localnerve/fleetboard/internal/database"
	"github.com/localnerve/fleetboard/internal/logger"
	"github.com/localnerve/fleetboard/internal/services"
)

// Loads a snapshot from the configured source the way the server would,
// then prints the health result.
func main() {
	log := logger.New("warn")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", "error", err)
	}

	settings, err := services.SettingsFromConfig(cfg)
	if err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	var db *gorm.DB
	var source services.Source = &services.FixtureSource{Path: cfg.FixturePath}
	if cfg.DataSource == config.SourceDatabase {
		db, err = database.Connect(cfg, log)
		if err != nil {
			log.Fatal("failed to connect to database", "error", err)
		}
		defer database.Close(db)
		source = &services.DBSource{DB: db}
	}

	store := services.NewSnapshotStore(source, settings, log)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, _ = store.Load(ctx)

	// Perform health check
	result := services.HealthCheck(cfg, db, store, log)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal("failed to marshal health check result", "error", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
}
