package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/localnerve/fleetboard/internal/database"
	"github.com/localnerve/fleetboard/internal/fixtures"
	"github.com/localnerve/fleetboard/internal/logger"
	"github.com/localnerve/fleetboard/internal/testenv"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var fixturePath string
	flag.StringVar(&fixturePath, "seed", "", "fixture to seed, defaults to the demo fixture")
	var hostPort string
	flag.StringVar(&hostPort, "port", "", "host port to publish MariaDB on")
	flag.Parse()

	usage := `
Run a MariaDB testcontainer seeded with a fleet fixture, for local development.

Usage:

devdb [-h] [-f ENV_FILE_PATH] [-seed FIXTURE_PATH] [-port HOST_PORT]

ENV_FILE_PATH: path to the .env file (DB_IMAGE, DB_DATABASE, DB_USER, DB_PASSWORD)
FIXTURE_PATH: YAML fixture, the embedded demo fixture when omitted

example
  devdb -f /path/to/something/.env -port 3306
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logger.New("info")
	defer log.Sync()

	if envFilename != "" {
		log.Info("loading environment variables", "file", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatal("failed to load environment variables", "error", err)
		}
	} else {
		log.Info("no environment file specified, using current environment variables")
	}

	f, err := fixtures.Load(fixturePath)
	if err != nil {
		log.Fatal("failed to load fixture", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	m, err := testenv.StartMariaDB(ctx, testenv.MariaDBOptions{HostPort: hostPort})
	cancel()
	if err != nil {
		log.Fatal("failed to create test container", "error", err)
	}
	defer m.Terminate(context.Background())

	cfg := m.Config()
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to test container", "error", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}
	if err := fixtures.Seed(context.Background(), db, f); err != nil {
		log.Fatal("failed to seed fixture", "error", err)
	}
	database.Close(db)

	// Connection settings for the server
	fmt.Printf("DATA_SOURCE=database\nDB_TYPE=%s\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_USER=%s\nDB_PASSWORD=%s\n",
		cfg.DBType, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBUser, cfg.DBPassword)
	log.Info("devdb ready, interrupt to terminate", "session", m.SessionID)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-sigs
	log.Info("terminating test container", "signal", sig.String())
}
