package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/localnerve/fleetboard/internal/config"
	"github.com/localnerve/fleetboard/internal/database"
	"github.com/localnerve/fleetboard/internal/fixtures"
	"github.com/localnerve/fleetboard/internal/logger"
)

func main() {
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to a .env file")
	var fixturePath string
	flag.StringVar(&fixturePath, "fixture", "", "fixture to seed, defaults to FIXTURE_PATH or the demo fixture")
	var validateOnly bool
	flag.BoolVar(&validateOnly, "check", false, "validate the fixture and exit")
	flag.Parse()

	log := logger.New("info")
	defer log.Sync()

	cfg, err := config.Load(envFilename)
	if err != nil {
		log.Fatal("failed to load configuration", "error", err)
	}
	if fixturePath == "" {
		fixturePath = cfg.FixturePath
	}

	f, err := fixtures.Load(fixturePath)
	if err != nil {
		log.Fatal("invalid fixture", "error", err)
	}
	if validateOnly {
		fmt.Printf("ok: %d environments, %d systems, %d assets\n", len(f.Environments), len(f.Systems), len(f.Assets))
		return
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := fixtures.Seed(ctx, db, f); err != nil {
		log.Fatal("failed to seed", "error", err)
	}
	log.Info("seeded", "environments", len(f.Environments), "systems", len(f.Systems), "assets", len(f.Assets))
}
